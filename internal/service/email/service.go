package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"sertifikat-identitas/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendReapplicationSummary(ctx context.Context, toEmail, fullName, applicationNumber string, reusedCount, requiredNewCount int) error
	SendApplicationStatusEmail(ctx context.Context, toEmail, fullName, applicationNumber, status string, note *string) error
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
		From:    fmt.Sprintf("Layanan Sertifikat Identitas <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Verifikasi Email - Layanan Sertifikat Identitas",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(toEmail, "Verifikasi Email - Layanan Sertifikat Identitas", "verification.html", data)
}

func (s *service) SendReapplicationSummary(ctx context.Context, toEmail, fullName, applicationNumber string, reusedCount, requiredNewCount int) error {
	data := struct {
		Title             string
		Name              string
		ApplicationNumber string
		ReusedCount       int
		RequiredNewCount  int
		Link              string
	}{
		Title:             "Permohonan Ulang Dibuat",
		Name:              fullName,
		ApplicationNumber: applicationNumber,
		ReusedCount:       reusedCount,
		RequiredNewCount:  requiredNewCount,
		Link:              fmt.Sprintf("https://%s/applications", s.config.Domain),
	}
	subject := fmt.Sprintf("Permohonan Ulang %s Dibuat", applicationNumber)
	return s.sendEmail(toEmail, subject, "reapplication.html", data)
}

func (s *service) SendApplicationStatusEmail(ctx context.Context, toEmail, fullName, applicationNumber, status string, note *string) error {
	noteText := ""
	if note != nil {
		noteText = *note
	}

	data := struct {
		Title             string
		Name              string
		ApplicationNumber string
		Status            string
		Note              string
		Link              string
	}{
		Title:             "Status Permohonan Diperbarui",
		Name:              fullName,
		ApplicationNumber: applicationNumber,
		Status:            statusLabel(status),
		Note:              noteText,
		Link:              fmt.Sprintf("https://%s/applications", s.config.Domain),
	}
	subject := fmt.Sprintf("Status Permohonan %s: %s", applicationNumber, statusLabel(status))
	return s.sendEmail(toEmail, subject, "application_status.html", data)
}

func statusLabel(status string) string {
	switch status {
	case "approved":
		return "Disetujui"
	case "rejected":
		return "Ditolak"
	case "incomplete":
		return "Belum Lengkap"
	case "pending":
		return "Sedang Diproses"
	default:
		return status
	}
}
