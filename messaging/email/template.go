package email

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/message.html
var templateFS embed.FS

var messageTmpl = template.Must(template.ParseFS(templateFS, "templates/message.html"))

// Render builds the HTML and plain text bodies for content. Newlines in
// content become line breaks in the HTML body; content is escaped.
func Render(content string) (html, text string, err error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var buf bytes.Buffer
	err = messageTmpl.ExecuteTemplate(&buf, "message.html", struct{ Lines []string }{
		Lines: strings.Split(content, "\n"),
	})
	if err != nil {
		return "", "", err
	}
	text = content + "\n\n--\nThis email was sent from LAPIS Video Production Agency\n"
	return buf.String(), text, nil
}

// Compose renders content into a ready-to-send Message.
func Compose(to, subject, content, senderName string) (*Message, error) {
	html, text, err := Render(content)
	if err != nil {
		return nil, err
	}
	return &Message{
		To:         to,
		Subject:    subject,
		SenderName: firstNonEmpty(strings.TrimSpace(senderName), DefaultSenderName),
		HTML:       html,
		Text:       text,
	}, nil
}
