package mailer

import (
	"bytes"
	"embed"
	"fmt"
	ht "html/template"
	tt "text/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

const sendAttempts = 3

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

// SMTPMailer renders an embedded template and delivers it over SMTP.
type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.compose(recipient, templateFile, data)
	if err != nil {
		return err
	}

	for i := 1; i <= sendAttempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		if i < sendAttempts {
			time.Sleep(500 * time.Millisecond)
		}
	}

	return fmt.Errorf("send %s to %s: %w", templateFile, recipient, err)
}

func (m *SMTPMailer) compose(recipient, templateFile string, data any) (*mail.Message, error) {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	return msg, nil
}

func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	textTmpl, err := tt.New("").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", err
	}

	var buf bytes.Buffer

	err = textTmpl.ExecuteTemplate(&buf, "subject", data)
	if err != nil {
		return "", "", "", err
	}
	subject = buf.String()

	buf.Reset()
	err = textTmpl.ExecuteTemplate(&buf, "plainBody", data)
	if err != nil {
		return "", "", "", err
	}
	plainBody = buf.String()

	htmlTmpl, err := ht.New("").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", err
	}

	buf.Reset()
	err = htmlTmpl.ExecuteTemplate(&buf, "htmlBody", data)
	if err != nil {
		return "", "", "", err
	}
	htmlBody = buf.String()

	return subject, plainBody, htmlBody, nil
}

// NopMailer drops every message. Used when no SMTP host is configured.
type NopMailer struct{}

func (NopMailer) Send(string, string, any) error {
	return nil
}
