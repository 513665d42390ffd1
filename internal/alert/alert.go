package alert

import "time"

// Alert is the audit record of one non-compliance notification: one row per
// recipient, written after the mail went out.
type Alert struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	InstanceID int64     `json:"instance_id"`
	Recipient  string    `json:"recipient"`
	SentAt     time.Time `json:"sent_at"`
}

func (Alert) TableName() string {
	return "alerts"
}

type RepositoryAPI interface {
	Create(a *Alert) error
	GetByInstance(instanceID int64) ([]*Alert, error)
}

// RecipientRepositoryAPI resolves who gets told about a non-compliant
// checklist: the sector manager plus every coordinator account.
type RecipientRepositoryAPI interface {
	SectorManagerEmail(sectorID int64) (string, error)
	CoordinatorEmails() ([]string, error)
}

// MailerAPI sends one notification mail.
type MailerAPI interface {
	Send(to, subject, body string) error
}
