package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/storepulse/storeops-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailService defines the interface for sending emails
type EmailService interface {
	SendPayslip(to string, data PayslipData) error
}

// PayslipData fills the payslip template. Amounts arrive pre-formatted.
type PayslipData struct {
	EmployeeName    string
	StoreID         string
	Month           string
	BaseSalary      string
	GrossAllowances string
	OvertimePay     string
	TotalDeductions string
	NetPay          string
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// SendPayslip emails one month's payslip to the employee
func (s *emailServiceImpl) SendPayslip(to string, data PayslipData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payslip.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Payslip %s", data.Month))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payslip email: %w", err)
	}

	return nil
}
