package config

import (
	"time"

	"github.com/spf13/viper"
)

// Email email config struct
type Email struct {
	Provider   string
	SenderName string
	From       string
	Workers    int
	QueueSize  int
	SMTP       *SMTP
	Mailgun    *Mailgun
	SendGrid   *SendGrid
	Simulated  *Simulated
	Breaker    *Breaker
}

// SMTP smtp config struct
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailgun mailgun config struct
type Mailgun struct {
	Key     string
	Domain  string
	From    string
	APIBase string
}

// SendGrid sendgrid config struct
type SendGrid struct {
	Key  string
	From string
}

// Simulated fake provider config struct
type Simulated struct {
	Delay       time.Duration
	FailureRate float64
}

// Breaker circuit breaker config struct
type Breaker struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func getEmailConfig(v *viper.Viper) *Email {
	return &Email{
		Provider:   v.GetString("email.provider"),
		SenderName: getStringOrDefault(v, "email.sender_name", "LAPIS Team"),
		From:       v.GetString("email.from"),
		Workers:    getIntOrDefault(v, "email.workers", 4),
		QueueSize:  getIntOrDefault(v, "email.queue_size", 256),
		SMTP: &SMTP{
			Host:     v.GetString("email.smtp.host"),
			Port:     getIntOrDefault(v, "email.smtp.port", 587),
			Username: v.GetString("email.smtp.username"),
			Password: v.GetString("email.smtp.password"),
			From:     v.GetString("email.smtp.from"),
		},
		Mailgun: &Mailgun{
			Key:     v.GetString("email.mailgun.key"),
			Domain:  v.GetString("email.mailgun.domain"),
			From:    v.GetString("email.mailgun.from"),
			APIBase: v.GetString("email.mailgun.api_base"),
		},
		SendGrid: &SendGrid{
			Key:  v.GetString("email.sendgrid.key"),
			From: v.GetString("email.sendgrid.from"),
		},
		Simulated: &Simulated{
			Delay:       v.GetDuration("email.simulated.delay"),
			FailureRate: v.GetFloat64("email.simulated.failure_rate"),
		},
		Breaker: &Breaker{
			MaxRequests:      getUint32OrDefault(v, "email.breaker.max_requests", 1),
			Interval:         getDurationOrDefault(v, "email.breaker.interval", time.Minute),
			Timeout:          getDurationOrDefault(v, "email.breaker.timeout", 30*time.Second),
			FailureThreshold: getUint32OrDefault(v, "email.breaker.failure_threshold", 5),
		},
	}
}
