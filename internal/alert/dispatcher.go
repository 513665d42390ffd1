package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lslops/checklist-management/internal/core/events"
)

// Dispatcher turns a non-compliance event into mail plus audit rows. A mail
// failure is logged and skips the audit row for that recipient; it never
// propagates back to the checklist workflow.
type Dispatcher struct {
	repo       RepositoryAPI
	recipients RecipientRepositoryAPI
	mailer     MailerAPI
	logger     *slog.Logger
}

func NewDispatcher(repo RepositoryAPI, recipients RecipientRepositoryAPI, mailer MailerAPI, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:       repo,
		recipients: recipients,
		mailer:     mailer,
		logger:     logger,
	}
}

// SubscribeTo registers the dispatcher on the in-process bus. Used when no
// message broker is configured.
func (d *Dispatcher) SubscribeTo(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeChecklistNonCompliant, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.ChecklistNonCompliantEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}
		return d.Dispatch(ctx, e)
	})
}

// Dispatch resolves the recipient set and notifies each one.
func (d *Dispatcher) Dispatch(ctx context.Context, e *events.ChecklistNonCompliantEvent) error {
	recipients, err := d.resolveRecipients(e.SectorID)
	if err != nil {
		d.logger.Error("failed to resolve alert recipients",
			"error", err,
			"checklist_id", e.InstanceID,
			"sector_id", e.SectorID)
		return err
	}
	if len(recipients) == 0 {
		d.logger.Warn("non-compliance alert has no recipients",
			"checklist_id", e.InstanceID,
			"sector_id", e.SectorID)
		return nil
	}

	subject := fmt.Sprintf("Non-compliant checklist: %s", e.TemplateName)
	body := fmt.Sprintf(
		"Checklist %s (%s) was completed with non-compliant answers.\n\n"+
			"Please review it in the checklist system and take corrective action.",
		e.ExternalID, e.TemplateName)

	for _, recipient := range recipients {
		if err := d.mailer.Send(recipient, subject, body); err != nil {
			d.logger.Error("failed to send alert mail",
				"error", err,
				"checklist_id", e.InstanceID,
				"recipient", recipient)
			continue
		}

		if err := d.repo.Create(&Alert{
			InstanceID: e.InstanceID,
			Recipient:  recipient,
			SentAt:     time.Now(),
		}); err != nil {
			d.logger.Error("failed to record alert",
				"error", err,
				"checklist_id", e.InstanceID,
				"recipient", recipient)
			continue
		}

		d.logger.Info("non-compliance alert sent",
			"checklist_id", e.InstanceID,
			"recipient", recipient)
	}

	return nil
}

// resolveRecipients returns the sector manager (when the sector has one)
// plus every coordinator, deduplicated.
func (d *Dispatcher) resolveRecipients(sectorID int64) ([]string, error) {
	seen := make(map[string]bool)
	var recipients []string

	manager, err := d.recipients.SectorManagerEmail(sectorID)
	if err != nil {
		return nil, err
	}
	if manager != "" {
		seen[manager] = true
		recipients = append(recipients, manager)
	}

	coordinators, err := d.recipients.CoordinatorEmails()
	if err != nil {
		return nil, err
	}
	for _, email := range coordinators {
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		recipients = append(recipients, email)
	}

	return recipients, nil
}
