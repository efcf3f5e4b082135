package auth

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendEmail delivers plain-text mail through the configured SMTP
// relay. Without credentials it logs that the mail was dropped; the
// body is never written to the log, it may carry a code.
func SendEmail(toEmail, subject, body string) error {
	from := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	if from == "" || pass == "" {
		log.Printf("SMTP not configured; dropping mail to %s (%s)", toEmail, subject)
		return nil
	}
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s\r\n", toEmail, subject, body))

	a := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, a, from, []string{toEmail}, msg)
}

func sendOTPEmail(toEmail, code string) error {
	body := "Your verification code is: " + code + "\n\nIt expires in 5 minutes."
	return SendEmail(toEmail, "Email Verification", body)
}

func sendResetEmail(toEmail, code string) error {
	body := "We received a request to reset your password.\n\nYour code: " + code + "\n\nIt is valid for 10 minutes. If you didn't request this, ignore this email."
	return SendEmail(toEmail, "Password Reset Request", body)
}

func sendWelcomeEmail(toEmail, name string) error {
	body := "Welcome aboard, " + name + "!\n\nStart planning your journeys, invite friends, and manage your trips in one place.\n\nHappy travels."
	return SendEmail(toEmail, "Welcome to GlobeTrotter!", body)
}
