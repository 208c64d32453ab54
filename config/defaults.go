package config

import "github.com/spf13/viper"

// setDefaults lets the server start without any config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "lapis")
	v.SetDefault("run_mode", "release")

	v.SetDefault("server.protocol", "http")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.domain", "localhost")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.path", "logs")
	v.SetDefault("logger.desensitize", true)

	v.SetDefault("data.sqlite.path", "data/lapis.db")
	v.SetDefault("data.sqlite.max_open_conns", 1)

	v.SetDefault("auth.jwt.secret", "change-me")
	v.SetDefault("auth.jwt.expire", 24)
	v.SetDefault("auth.cookie.name", "lapis_session")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.admin.username", "admin")
	v.SetDefault("auth.admin.password", "")

	v.SetDefault("email.provider", "simulated")
	v.SetDefault("email.sender_name", "LAPIS Team")
	v.SetDefault("email.from", "hello@lapisvisuals.com")
	v.SetDefault("email.workers", 4)
	v.SetDefault("email.queue_size", 256)
	v.SetDefault("email.simulated.delay", "2s")
	v.SetDefault("email.simulated.failure_rate", 0.1)
	v.SetDefault("email.breaker.max_requests", 1)
	v.SetDefault("email.breaker.interval", "60s")
	v.SetDefault("email.breaker.timeout", "30s")
	v.SetDefault("email.breaker.failure_threshold", 5)

	v.SetDefault("carousel.period", "5000ms")
	v.SetDefault("carousel.narrow_width", 480)
	v.SetDefault("carousel.medium_width", 1024)
	v.SetDefault("carousel.default_width", 1280)
	v.SetDefault("carousel.mobile_width", 375)
	v.SetDefault("carousel.max_streams", 256)

	v.SetDefault("observes.sentry.sample_rate", 1.0)

	v.SetDefault("images.input_dir", "public/images")
	v.SetDefault("images.output_dir", "public/images/optimized")
	v.SetDefault("images.width", 1920)
	v.SetDefault("images.quality", 80)
	v.SetDefault("images.workers", 4)
}
