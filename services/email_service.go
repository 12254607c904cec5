// File: /services/email_service.go
package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"sees-api/config"
	"sees-api/models"
)

// EmailService sends transactional mail. All sends are best-effort; callers
// log failures and never fail the request over them.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendRegistrationConfirmation confirms a successful event registration
func (es *EmailService) SendRegistrationConfirmation(email, name, eventTitle string, eventDate time.Time) error {
	body := fmt.Sprintf(`
		<h2>You're registered!</h2>
		<p>Hi %s,</p>
		<p>Your registration for <strong>%s</strong> on %s is confirmed.</p>
		<p>See you there!</p>
		<p>— The SEES team</p>
	`, name, eventTitle, eventDate.Format("Monday, 2 January 2006 at 15:04"))

	return es.send(email, "Registration confirmed: "+eventTitle, body)
}

// SendPaymentReceipt sends a receipt for a completed payment. Registration
// fees are non-refundable; the receipt says so.
func (es *EmailService) SendPaymentReceipt(email, name string, payment *models.Payment, eventTitle string) error {
	body := fmt.Sprintf(`
		<h2>Payment receipt</h2>
		<p>Hi %s,</p>
		<p>We received your payment of <strong>$%.2f</strong> (%s) for <strong>%s</strong>.</p>
		<p>Card ending in %s &middot; Reference %s</p>
		<p>This payment is non-refundable.</p>
		<p>— The SEES team</p>
	`, name, payment.Amount, payment.PaymentType, eventTitle, payment.CardLast4, payment.ID)

	return es.send(email, "Your SEES payment receipt", body)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
