package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"papyrus/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer is any transport that can deliver an HTML email. Failure is the
// caller's problem to log; nothing here retries.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// Mail is the configured transport, set once in main. Tests swap in a
// recorder.
var Mail Mailer

// NewMailer picks the transport named by MAIL_BACKEND.
func NewMailer() Mailer {
	if config.AppConfig.MailBackend == "sendgrid" {
		return &SendgridMailer{
			APIKey: config.AppConfig.SendgridAPIKey,
			From:   config.AppConfig.EmailSender,
		}
	}
	return &SMTPMailer{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		From:     config.AppConfig.EmailSender,
		Password: config.AppConfig.EmailPassword,
	}
}

// SMTPMailer sends through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (m *SMTPMailer) Send(to []string, subject, htmlBody string) error {
	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Papyrus <%s>\r\n", m.From)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, to, []byte(msg)); err != nil {
		log.Printf("Error sending email via SMTP: %v", err)
		return err
	}
	return nil
}

// SendgridMailer sends through the SendGrid v3 API.
type SendgridMailer struct {
	APIKey string
	From   string
}

func (m *SendgridMailer) Send(to []string, subject, htmlBody string) error {
	from := sgmail.NewEmail("Papyrus", m.From)

	message := sgmail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	p := sgmail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(sgmail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(m.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all outgoing emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Segoe UI', Helvetica, Arial, sans-serif; background-color: #f3f4f6; margin: 0; padding: 0; }
			.container { max-width: 560px; margin: 40px auto; background: #FFFFFF; border-radius: 16px; overflow: hidden; box-shadow: 0 4px 24px rgba(0,0,0,0.08); }
			.header { background-color: #4f46e5; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 26px; letter-spacing: 1px; }
			.content { padding: 40px 32px; color: #1f2937; line-height: 1.6; }
			.content h2 { color: #1f2937; margin-top: 0; }
			.footer { background-color: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #9ca3af; border-top: 1px solid #f3f4f6; }
			.btn { display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #FFFFFF; text-decoration: none; border-radius: 12px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #fef3c7; padding: 14px 16px; border-radius: 10px; border: 1px solid #fde68a; margin: 20px 0; color: #92400e; font-size: 13px; }
			.link-box { word-break: break-all; color: #6b7280; font-size: 11px; background: #f9fafb; padding: 10px; border-radius: 8px; font-family: monospace; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PAPYRUS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Papyrus. All rights reserved.<br>
				Your shared knowledge library.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendPasswordResetEmail delivers the reset link asynchronously. A send
// failure is logged only; the stored token expires on its own.
func SendPasswordResetEmail(email, username, resetToken string) {
	resetLink := fmt.Sprintf("%s/reset-password/%s", config.AppConfig.ClientURL, resetToken)

	subject := "Reset your Papyrus password"
	body := fmt.Sprintf(`
		<p>Hi <strong>%s</strong>,</p>
		<p>You asked to reset your password.</p>
		<div class="info-box">This link is valid for <strong>7 minutes</strong> only.</div>
		<div style="text-align:center;">
			<a href="%s" class="btn">Reset my password</a>
		</div>
		<p style="margin-top:24px;font-size:12px;color:#9ca3af;">If the button does not work, copy this link:</p>
		<p class="link-box">%s</p>
		<p style="font-size:12px;color:#9ca3af;">If you did not request this, ignore this email.</p>
	`, username, resetLink, resetLink)

	go func() {
		if err := Mail.Send([]string{email}, subject, getEmailTemplate("Password reset", body)); err != nil {
			log.Printf("Error sending password reset email to %s: %v", email, err)
		}
	}()
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(email, username string) {
	subject := "Welcome to Papyrus"
	body := fmt.Sprintf(`
		<p>Hi <strong>%s</strong>,</p>
		<p>Welcome to <strong>Papyrus</strong>! Your account has been created.</p>
		<p>Upload your PDF course documents, organize them by category and share them with the world.</p>
	`, username)

	go func() {
		if err := Mail.Send([]string{email}, subject, getEmailTemplate("Welcome aboard!", body)); err != nil {
			log.Printf("Error sending welcome email to %s: %v", email, err)
		}
	}()
}

// SendCourseSharedEmail tells a grantee a course was shared with them.
func SendCourseSharedEmail(email, username, ownerName, courseTitle string) {
	subject := "A course was shared with you"
	body := fmt.Sprintf(`
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> shared the course <strong>%s</strong> with you.</p>
		<p>Log in to Papyrus to read it.</p>
	`, username, ownerName, courseTitle)

	go func() {
		if err := Mail.Send([]string{email}, subject, getEmailTemplate("New shared course", body)); err != nil {
			log.Printf("Error sending share notification to %s: %v", email, err)
		}
	}()
}
