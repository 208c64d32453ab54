package config

import (
	"time"

	"github.com/spf13/viper"
)

// Carousel showcase carousel config struct.
// DefaultWidth and MobileWidth stand in for the viewport when a request
// does not say how wide it is. MaxStreams caps open auto-advance streams.
type Carousel struct {
	Period       time.Duration
	NarrowWidth  int
	MediumWidth  int
	DefaultWidth int
	MobileWidth  int
	MaxStreams   int
}

func getCarouselConfig(v *viper.Viper) *Carousel {
	return &Carousel{
		Period:       getDurationOrDefault(v, "carousel.period", 5*time.Second),
		NarrowWidth:  getIntOrDefault(v, "carousel.narrow_width", 480),
		MediumWidth:  getIntOrDefault(v, "carousel.medium_width", 1024),
		DefaultWidth: getIntOrDefault(v, "carousel.default_width", 1280),
		MobileWidth:  getIntOrDefault(v, "carousel.mobile_width", 375),
		MaxStreams:   getIntOrDefault(v, "carousel.max_streams", 256),
	}
}
