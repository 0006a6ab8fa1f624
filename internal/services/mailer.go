package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ketomate/backend/internal/config"
)

// Mailer sends transactional email through the SendGrid v3 API.
type Mailer struct {
	APIKey     string
	FromEmail  string
	HTTPClient *http.Client
	Endpoint   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		APIKey:    strings.TrimSpace(cfg.SendGridAPIKey),
		FromEmail: strings.TrimSpace(cfg.MailFromEmail),
		Endpoint:  "https://api.sendgrid.com/v3/mail/send",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendGridEmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To      []sendGridEmailAddress `json:"to"`
	Subject string                 `json:"subject"`
}

type sendGridMailSendRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridEmailAddress      `json:"from"`
	Content          []sendGridContent         `json:"content"`
}

func (m *Mailer) SendConfirmationEmail(toEmail, link string) error {
	body := fmt.Sprintf(
		"Welcome to KetoMate!\n\nConfirm your email address by opening this link:\n\n%s\n\nThe link is valid for 24 hours. If you did not create an account, you can ignore this email.\n",
		link,
	)
	return m.send(toEmail, "Confirm your KetoMate account", body)
}

func (m *Mailer) SendRecoveryEmail(toEmail, link string) error {
	body := fmt.Sprintf(
		"We received a request to reset your KetoMate password.\n\nOpen this link to choose a new password:\n\n%s\n\nThe link is valid for 1 hour. If you did not request a reset, you can ignore this email.\n",
		link,
	)
	return m.send(toEmail, "Reset your KetoMate password", body)
}

func (m *Mailer) send(toEmail, subject, plain string) error {
	if m == nil || m.APIKey == "" {
		return fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if m.FromEmail == "" {
		return fmt.Errorf("missing MAIL_FROM_EMAIL")
	}

	reqBody := sendGridMailSendRequest{
		Personalizations: []sendGridPersonalization{
			{
				To:      []sendGridEmailAddress{{Email: toEmail}},
				Subject: subject,
			},
		},
		From: sendGridEmailAddress{
			Email: m.FromEmail,
			Name:  "KetoMate",
		},
		Content: []sendGridContent{
			{Type: "text/plain", Value: plain},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// SendGrid returns 202 Accepted on success.
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid mail send http %d", resp.StatusCode)
	}
	return nil
}
