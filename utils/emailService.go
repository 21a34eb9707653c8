package utils

import (
	"feedbackapi/config"
	"feedbackapi/models"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail delivers an HTML mail through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Feedback Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C34; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C34; line-height: 1.6; }
			.content h2 { color: #1A3C34; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #66BB6A; margin: 20px 0; }
			.badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; background-color: #66BB6A; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>FEEDBACK PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this because you administer the feedback portal.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendFeedbackNotification mails a submission summary to the configured
// admin address. Best effort: failures are logged, never surfaced to the
// submitter. A no-op when ADMIN_EMAIL is unset.
func SendFeedbackNotification(feedback models.Feedback) {
	adminEmail := config.AppConfig.AdminEmail
	if adminEmail == "" {
		return
	}

	followUp := "has not consented"
	if feedback.FollowUp {
		followUp = "has consented"
	}

	body := fmt.Sprintf(`
		<p>New feedback was just submitted.</p>
		<div class="info-box">
			<p><strong>Name:</strong> %s<br>
			<strong>Email:</strong> %s<br>
			<strong>Date of experience:</strong> %s<br>
			<strong>Overall rating:</strong> %.2f / 5</p>
		</div>
		<p>The customer <span class="badge">%s</span> to a follow-up.</p>
		<p>Log in to the dashboard to review and publish it.</p>`,
		feedback.Name,
		feedback.Email,
		feedback.DateOfExperience.Format("2006-01-02"),
		feedback.AverageRating(),
		followUp,
	)

	subject := fmt.Sprintf("New feedback from %s", feedback.Name)
	_ = SendEmail([]string{adminEmail}, subject, getEmailTemplate("New Feedback Received", body))
}
