package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"accessdesk/internal/config"
)

type Service interface {
	SendReviewRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, systemName string) error
	SendDecisionEmail(ctx context.Context, toEmail, recipientName, systemName, status, message string) error
	SendGrantSummaryEmail(ctx context.Context, toEmail, recipientName, systemName, summary string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("AccessDesk <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendReviewRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, systemName string) error {
	data := struct {
		Title         string
		Name          string
		RequesterName string
		SystemName    string
		Link          string
	}{
		Title:         "Access Request Awaiting Your Review",
		Name:          recipientName,
		RequesterName: requesterName,
		SystemName:    systemName,
		Link:          fmt.Sprintf("https://%s/approvals", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Access Request Awaiting Your Review", "review_request.html", data)
}

func (s *service) SendDecisionEmail(ctx context.Context, toEmail, recipientName, systemName, status, message string) error {
	data := struct {
		Title      string
		Name       string
		SystemName string
		Status     string
		Message    string
		Link       string
	}{
		Title:      "Access Request Update",
		Name:       recipientName,
		SystemName: systemName,
		Status:     status,
		Message:    message,
		Link:       fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Access Request Update", "decision.html", data)
}

func (s *service) SendGrantSummaryEmail(ctx context.Context, toEmail, recipientName, systemName, summary string) error {
	data := struct {
		Title      string
		Name       string
		SystemName string
		Summary    string
		Link       string
	}{
		Title:      "Access Granted",
		Name:       recipientName,
		SystemName: systemName,
		Summary:    summary,
		Link:       fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Access Granted", "grant_summary.html", data)
}
