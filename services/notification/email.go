package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrNoRecipient is returned when an email has no address to go to.
var ErrNoRecipient = errors.New("email has no recipient")

// Detail is one label/value row in the email's detail table.
type Detail struct {
	Label string
	Value string
}

// Email is a transactional message rendered into the shared HTML layout.
type Email struct {
	To      string
	ToName  string
	Subject string
	Heading string
	Body    string
	Details []Detail
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

const layout = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2 style="color: #1a3d6d;">{{.Heading}}</h2>
  {{if .ToName}}<p>Dear {{.ToName}},</p>{{end}}
  <p>{{.Body}}</p>
  {{if .Details}}
  <table cellpadding="6" style="border-collapse: collapse;">
    {{range .Details}}
    <tr>
      <td style="font-weight: bold; border-bottom: 1px solid #ddd;">{{.Label}}</td>
      <td style="border-bottom: 1px solid #ddd;">{{.Value}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
  <p style="font-size: 12px; color: #888;">This is an automated message. Please do not reply.</p>
</body>
</html>`

var emailTemplate = template.Must(template.New("email").Parse(layout))

// Render produces the HTML body for e. Values are escaped.
func Render(e Email) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, e); err != nil {
		return "", fmt.Errorf("render email %q: %w", e.Subject, err)
	}
	return buf.String(), nil
}
