package logger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultSensitiveFields are masked wherever they appear in a field name.
var DefaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "secret", "api_key", "apikey",
	"authorization", "cookie",
}

const fixedMask = "******"

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// Desensitizer masks sensitive values in log fields.
type Desensitizer struct {
	fields     []string
	maskEmails bool
}

// NewDesensitizer returns a desensitizer matching field names that contain
// any of fields. With maskEmails the local part of addresses inside string
// values is hidden, keeping the domain.
func NewDesensitizer(fields []string, maskEmails bool) *Desensitizer {
	lower := make([]string, 0, len(fields))
	for _, f := range fields {
		lower = append(lower, strings.ToLower(f))
	}
	return &Desensitizer{fields: lower, maskEmails: maskEmails}
}

// DesensitizeFields returns a copy of fields with sensitive data masked.
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.value(key, value, 0)
	}
	return result
}

// DesensitizeString masks email addresses in s when enabled.
func (d *Desensitizer) DesensitizeString(s string) string {
	if !d.maskEmails || s == "" {
		return s
	}
	return emailPattern.ReplaceAllString(s, "***@$1")
}

func (d *Desensitizer) value(key string, value any, depth int) any {
	if value == nil || depth > 8 {
		return value
	}
	if d.isSensitiveField(key) {
		return fixedMask
	}
	switch v := value.(type) {
	case string:
		return d.DesensitizeString(v)
	case fmt.Stringer:
		return d.DesensitizeString(v.String())
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = d.value(k, inner, depth+1)
		}
		return out
	case logrus.Fields:
		out := make(logrus.Fields, len(v))
		for k, inner := range v {
			out[k] = d.value(k, inner, depth+1)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = d.DesensitizeString(s)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, f := range d.fields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// DesensitizeHook applies a Desensitizer to every entry before it is written.
type DesensitizeHook struct {
	d *Desensitizer
}

// NewDesensitizeHook creates the hook.
func NewDesensitizeHook(fields []string, maskEmails bool) *DesensitizeHook {
	return &DesensitizeHook{d: NewDesensitizer(fields, maskEmails)}
}

// Levels returns all log levels
func (h *DesensitizeHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire masks entry data and message in place.
func (h *DesensitizeHook) Fire(entry *logrus.Entry) error {
	entry.Data = h.d.DesensitizeFields(entry.Data)
	entry.Message = h.d.DesensitizeString(entry.Message)
	return nil
}
