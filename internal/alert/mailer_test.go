package alert

import (
	"github.com/lslops/checklist-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SMTPMailer", func() {
	It("should open in plaintext and upgrade when starttls is on", func() {
		m := NewSMTPMailer(internal.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			From:     "alerts@example.com",
			StartTLS: true,
		})

		Expect(m.dialer().SSL).To(BeFalse())
	})

	It("should use implicit TLS on connect when starttls is off", func() {
		m := NewSMTPMailer(internal.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     465,
			From:     "alerts@example.com",
			StartTLS: false,
		})

		Expect(m.dialer().SSL).To(BeTrue())
	})
})
