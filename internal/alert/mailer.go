package alert

import (
	"gopkg.in/gomail.v2"

	"github.com/lslops/checklist-management/internal"
)

// SMTPMailer sends alert mail through an SMTP relay. With starttls the
// connection opens in plaintext and upgrades on the submission port;
// disabling it means the relay expects implicit TLS on connect.
type SMTPMailer struct {
	cfg internal.SMTPConfig
}

func NewSMTPMailer(cfg internal.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer().DialAndSend(msg)
}

func (m *SMTPMailer) dialer() *gomail.Dialer {
	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	dialer.SSL = !m.cfg.StartTLS
	return dialer
}
