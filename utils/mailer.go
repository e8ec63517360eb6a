package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"webgestor/models"
)

// Embedded email templates
var emailTemplates = map[string]string{
	"notification": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>{{.Title}}</h2>
    </div>

    <div class="content">
        <p>Hello{{if .Name}}, {{.Name}}{{end}},</p>
        <p>{{.Message}}</p>
        <p>Open WebGestor to see the details.</p>
    </div>

    <div class="footer">
        <p>You are receiving this because of activity on a task assigned to you.</p>
        <p>© {{.Year}} WebGestor. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// Mailer delivers notification emails over SMTP. A zero-configured mailer
// is disabled and silently drops sends.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != ""
}

// SendNotificationEmail renders and sends the notification template.
func (m *Mailer) SendNotificationEmail(toEmail, toName string, n models.Notification) error {
	if !m.Enabled() {
		return nil
	}

	tmpl, err := template.New("email").Parse(emailTemplates["notification"])
	if err != nil {
		return fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, map[string]interface{}{
		"Title":   n.Title,
		"Message": n.Message,
		"Name":    toName,
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", n.Title)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
