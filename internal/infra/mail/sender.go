package mail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/calemorrison/funnel-api/internal/entity"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// NotifyNewLead mails the site owner about a captured lead. Best-effort
// only; the caller logs the error and moves on.
func (s *EmailSender) NotifyNewLead(to string, lead *entity.Lead) error {
	data := NewLeadEmailData{
		Name:     lead.Name,
		Email:    lead.Email,
		Funnel:   lead.FunnelID,
		AdminURL: os.Getenv("ADMIN_URL"),
	}
	if lead.Phone != nil {
		data.Phone = *lead.Phone
	}
	if lead.UTMSource != nil {
		data.Source = *lead.UTMSource
	}

	tmplPath := filepath.Join("templates", "new_lead.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("email template read failed: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("email template render failed: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.FunnelID))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
