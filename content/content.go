package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/lapisvisuals/lapis/validation/validator"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Variant selects which awards list a carousel shows.
type Variant string

const (
	VariantAwards   Variant = "awards"
	VariantHomepage Variant = "homepage"
)

// ParseVariant maps a query value to a Variant. Unknown values pick awards.
func ParseVariant(s string) Variant {
	if strings.EqualFold(s, string(VariantHomepage)) || strings.EqualFold(s, "home") {
		return VariantHomepage
	}
	return VariantAwards
}

// Award is one card of the awards carousel.
type Award struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
	Link        string `yaml:"link" json:"link"`
}

// VideoSource is a video file and its MIME type.
type VideoSource struct {
	Src  string `yaml:"src" json:"src"`
	Type string `yaml:"type" json:"type"`
}

// AnimationOptions tune the title animation of a video section.
// Durations are seconds, as authored.
type AnimationOptions struct {
	Duration         float64 `yaml:"duration" json:"duration"`
	Delay            float64 `yaml:"delay" json:"delay"`
	Cursor           bool    `yaml:"cursor" json:"cursor"`
	CursorChar       string  `yaml:"cursor_char" json:"cursorChar"`
	CursorColor      string  `yaml:"cursor_color" json:"cursorColor"`
	CursorStyle      string  `yaml:"cursor_style" json:"cursorStyle"`
	CursorBlinkSpeed float64 `yaml:"cursor_blink_speed" json:"cursorBlinkSpeed"`
	Randomize        bool    `yaml:"randomize" json:"randomize"`
	SpeedVariation   float64 `yaml:"speed_variation" json:"speedVariation"`
	PauseProbability float64 `yaml:"pause_probability" json:"pauseProbability"`
	MaxPauseDuration float64 `yaml:"max_pause_duration" json:"maxPauseDuration"`
}

// VideoSection is one full screen video block of the homepage.
type VideoSection struct {
	ID              string           `yaml:"id" json:"id"`
	Title           string           `yaml:"title" json:"title"`
	Subtitle        string           `yaml:"subtitle" json:"subtitle"`
	Video           VideoSource      `yaml:"video" json:"videoSrc"`
	MobileVideo     *VideoSource     `yaml:"mobile_video" json:"mobileSrc,omitempty"`
	TextPosition    string           `yaml:"text_position" json:"textPosition"`
	TextColor       string           `yaml:"text_color" json:"textColor"`
	BackgroundColor string           `yaml:"background_color" json:"backgroundColor"`
	TextAnimation   string           `yaml:"text_animation" json:"textAnimation"`
	Animation       AnimationOptions `yaml:"animation" json:"textAnimationOptions"`
}

// ServiceSection is one accordion entry of the services page.
type ServiceSection struct {
	Name   string   `yaml:"name" json:"name"`
	Anchor string   `yaml:"-" json:"anchor"`
	Items  []string `yaml:"items" json:"items"`
}

// Services is the services page.
type Services struct {
	Title       string           `yaml:"title" json:"title"`
	Description string           `yaml:"description" json:"description"`
	Creative    []string         `yaml:"creative" json:"creative"`
	Sections    []ServiceSection `yaml:"sections" json:"sections"`
}

// TextBlock is a titled paragraph, used by the About Us and Our Values modals.
type TextBlock struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// Link is a labelled href.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Footer is the site footer.
type Footer struct {
	Heading  string `yaml:"heading" json:"heading"`
	Blurb    string `yaml:"blurb" json:"blurb"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Email    string `yaml:"email" json:"email"`
	Services []Link `yaml:"services" json:"services"`
	Social   []Link `yaml:"social" json:"social"`
}

// Loading is the splash screen shown before the homepage.
type Loading struct {
	Text      string        `yaml:"text" json:"text"`
	CharDelay time.Duration `yaml:"char_delay" json:"charDelay"`
}

// Catalog is the static site content.
type Catalog struct {
	Awards         []Award        `yaml:"awards"`
	HomepageAwards []Award        `yaml:"homepage_awards"`
	VideoSections  []VideoSection `yaml:"video_sections"`
	Services       Services       `yaml:"services"`
	About          []TextBlock    `yaml:"about"`
	Footer         Footer         `yaml:"footer"`
	Loading        Loading        `yaml:"loading"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustLoad is Load for program start-up; it panics on a broken catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog, fills derived links and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c.fillLinks()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) fillLinks() {
	for _, list := range [][]Award{c.Awards, c.HomepageAwards} {
		for i := range list {
			if list[i].Link == "" {
				list[i].Link = "/awards/" + slug.Make(list[i].Title)
			}
		}
	}
	for i := range c.Services.Sections {
		c.Services.Sections[i].Anchor = slug.Make(c.Services.Sections[i].Name)
	}
	for i := range c.Footer.Services {
		if c.Footer.Services[i].Href == "" {
			c.Footer.Services[i].Href = "/services#" + slug.Make(c.Footer.Services[i].Label)
		}
	}
	if c.Loading.CharDelay <= 0 {
		c.Loading.CharDelay = 150 * time.Millisecond
	}
}

// Validate checks that award ids are unique per list and titles are set.
func (c *Catalog) Validate() error {
	var errs []error
	for name, list := range map[string][]Award{"awards": c.Awards, "homepage_awards": c.HomepageAwards} {
		seen := make(map[int]bool, len(list))
		for _, a := range list {
			if seen[a.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %d", name, a.ID))
			}
			seen[a.ID] = true
			if strings.TrimSpace(a.Title) == "" {
				errs = append(errs, fmt.Errorf("%s: award %d has no title", name, a.ID))
			}
		}
	}
	for _, v := range c.VideoSections {
		if v.ID == "" || v.Video.Src == "" {
			errs = append(errs, fmt.Errorf("video section %q needs an id and a source", v.ID))
			continue
		}
		if !validator.IsVideoFile(v.Video.Src) {
			errs = append(errs, fmt.Errorf("video section %q: %s is not a video", v.ID, v.Video.Src))
		}
	}
	return errors.Join(errs...)
}

// AwardsFor returns the list shown by variant.
func (c *Catalog) AwardsFor(v Variant) []Award {
	if v == VariantHomepage {
		return c.HomepageAwards
	}
	return c.Awards
}
