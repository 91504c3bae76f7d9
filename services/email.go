package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadEmailTemplate loads templateName + ".html" and ".txt" from the
// templates/emails directory and executes them with data.
func loadEmailTemplate(templateName string, data interface{}) (html string, text string, err error) {
	basePath := "templates/emails"

	loadAndExec := func(ext string) (string, error) {
		path := filepath.Join(basePath, templateName+ext)
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %v", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", path, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %v", path, err)
		}
		return buf.String(), nil
	}

	htmlContent, err := loadAndExec(".html")
	if err != nil {
		return "", "", err
	}

	textContent, err := loadAndExec(".txt")
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// FacilityProvisionedEmailData contains data for the provisioning notification template
type FacilityProvisionedEmailData struct {
	FacilityName string
	BuildingName string
	TeamID       string
	ChannelID    string
}

// BuildFacilityProvisionedEmail creates the notification sent to the facility
// contact once its Teams resources exist. Falls back to a plain-text body
// when the template files are unavailable.
func BuildFacilityProvisionedEmail(facility *models.Facility) *Email {
	data := FacilityProvisionedEmailData{
		FacilityName: facility.DisplayName,
		BuildingName: facility.BuildingName,
		TeamID:       facility.TeamID,
		ChannelID:    facility.ChannelID,
	}

	email := &Email{
		To:      []string{facility.ContactEmail},
		Subject: fmt.Sprintf("Teams workspace ready for %s", facility.DisplayName),
	}

	htmlBody, textBody, err := loadEmailTemplate("facility_provisioned", data)
	if err != nil {
		log.Printf("Error loading facility_provisioned email template: %v", err)
		email.TextBody = fmt.Sprintf(
			"The Teams workspace for facility %s (%s) has been provisioned. Team: %s, channel: %s.",
			data.FacilityName, data.BuildingName, data.TeamID, data.ChannelID)
		return email
	}

	email.HTMLBody = htmlBody
	email.TextBody = textBody
	return email
}
