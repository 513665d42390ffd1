package alert_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/lslops/checklist-management/internal/alert"
	"github.com/lslops/checklist-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAlertDispatcher(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Alert Dispatcher Suite")
}

// MockAlertRepository implements alert.RepositoryAPI for testing
type MockAlertRepository struct {
	alerts     []*alert.Alert
	shouldFail bool
	failError  error
}

func (m *MockAlertRepository) Create(a *alert.Alert) error {
	if m.shouldFail {
		return m.failError
	}
	m.alerts = append(m.alerts, a)
	return nil
}

func (m *MockAlertRepository) GetByInstance(instanceID int64) ([]*alert.Alert, error) {
	var result []*alert.Alert
	for _, a := range m.alerts {
		if a.InstanceID == instanceID {
			result = append(result, a)
		}
	}
	return result, nil
}

// MockRecipients implements alert.RecipientRepositoryAPI for testing
type MockRecipients struct {
	managerEmail      string
	coordinatorEmails []string
	shouldFail        bool
	failError         error
}

func (m *MockRecipients) SectorManagerEmail(sectorID int64) (string, error) {
	if m.shouldFail {
		return "", m.failError
	}
	return m.managerEmail, nil
}

func (m *MockRecipients) CoordinatorEmails() ([]string, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.coordinatorEmails, nil
}

// MockMailer implements alert.MailerAPI for testing
type MockMailer struct {
	sent    []string
	failFor map[string]error
}

func (m *MockMailer) Send(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

var _ = Describe("Alert Dispatcher", func() {
	var (
		repo       *MockAlertRepository
		recipients *MockRecipients
		mailer     *MockMailer
		dispatcher *alert.Dispatcher
		event      *events.ChecklistNonCompliantEvent
		ctx        context.Context
	)

	BeforeEach(func() {
		repo = &MockAlertRepository{}
		recipients = &MockRecipients{
			managerEmail:      "manager@plant.example",
			coordinatorEmails: []string{"coord1@plant.example", "coord2@plant.example"},
		}
		mailer = &MockMailer{failFor: map[string]error{}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher = alert.NewDispatcher(repo, recipients, mailer, logger)
		event = events.NewChecklistNonCompliantEvent(100, "ext-100", "Daily Training Checklist", 3, 7)
		ctx = context.Background()
	})

	It("should mail the sector manager and every coordinator", func() {
		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(mailer.sent).To(ConsistOf(
			"manager@plant.example",
			"coord1@plant.example",
			"coord2@plant.example",
		))
	})

	It("should write one audit row per notified recipient", func() {
		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(repo.alerts).To(HaveLen(3))
		for _, a := range repo.alerts {
			Expect(a.InstanceID).To(Equal(int64(100)))
			Expect(a.SentAt).NotTo(BeZero())
		}
	})

	It("should deduplicate a manager who is also a coordinator", func() {
		recipients.coordinatorEmails = []string{"manager@plant.example", "coord1@plant.example"}

		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(mailer.sent).To(ConsistOf("manager@plant.example", "coord1@plant.example"))
	})

	It("should skip the audit row for a recipient whose mail failed", func() {
		mailer.failFor["coord1@plant.example"] = errors.New("smtp timeout")

		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(mailer.sent).To(ConsistOf("manager@plant.example", "coord2@plant.example"))
		Expect(repo.alerts).To(HaveLen(2))
	})

	It("should continue when the sector has no manager", func() {
		recipients.managerEmail = ""

		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(mailer.sent).To(ConsistOf("coord1@plant.example", "coord2@plant.example"))
	})

	It("should do nothing when there are no recipients at all", func() {
		recipients.managerEmail = ""
		recipients.coordinatorEmails = nil

		err := dispatcher.Dispatch(ctx, event)

		Expect(err).NotTo(HaveOccurred())
		Expect(mailer.sent).To(BeEmpty())
		Expect(repo.alerts).To(BeEmpty())
	})

	It("should propagate a recipient lookup failure", func() {
		recipients.shouldFail = true
		recipients.failError = errors.New("database error")

		err := dispatcher.Dispatch(ctx, event)

		Expect(err).To(MatchError(ContainSubstring("database error")))
		Expect(mailer.sent).To(BeEmpty())
	})
})
