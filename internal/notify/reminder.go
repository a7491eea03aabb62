// internal/notify/reminder.go
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// Notifier delivers a reminder to whoever reviews orders. The HTTP
// front-end plugs its own transport in here.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes reminders to the log. Default when no transport is
// wired up.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	log.Info().Str("reminder", text).Msg("order deadline reminder")
	return nil
}

// DeadlineReminder periodically checks supplier order deadlines and
// notifies a configured lead time before each one, on eligible delivery
// days only, at most once per supplier per day.
type DeadlineReminder struct {
	suppliers repository.SupplierRepository
	notifier  Notifier
	loc       *time.Location
	lead      time.Duration
	interval  time.Duration

	sent map[string]string // supplier -> last notified date
	now  func() time.Time
}

func NewDeadlineReminder(suppliers repository.SupplierRepository, notifier Notifier, loc *time.Location, lead, interval time.Duration) *DeadlineReminder {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DeadlineReminder{
		suppliers: suppliers,
		notifier:  notifier,
		loc:       loc,
		lead:      lead,
		interval:  interval,
		sent:      make(map[string]string),
		now:       time.Now,
	}
}

// Run ticks until the context is cancelled. It is advisory: a missed tick
// is dropped, never replayed.
func (r *DeadlineReminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Dur("lead", r.lead).Msg("deadline reminder started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("deadline reminder stopped")
			return
		case <-ticker.C:
			if err := r.check(ctx); err != nil {
				log.Error().Err(err).Msg("deadline check failed")
			}
		}
	}
}

// check is one sweep over supplier policies.
func (r *DeadlineReminder) check(ctx context.Context) error {
	policies, err := r.suppliers.GetPolicies(ctx)
	if err != nil {
		return err
	}

	now := r.now().In(r.loc)
	today := now.Format("2006-01-02")

	for _, policy := range policies {
		if !policy.DeliversOn(now) {
			continue
		}
		if r.sent[policy.Name] == today {
			continue
		}

		reminderAt := policy.Deadline.On(now, r.loc).Add(-r.lead)
		if now.Before(reminderAt) || !now.Before(policy.Deadline.On(now, r.loc)) {
			continue
		}

		text := fmt.Sprintf("Order deadline for %s in %d minutes (%s)",
			policy.Name, int(r.lead.Minutes()), policy.Deadline)
		if err := r.notifier.Notify(ctx, text); err != nil {
			log.Error().Err(err).Str("supplier", policy.Name).Msg("reminder delivery failed")
			continue
		}
		r.sent[policy.Name] = today
	}

	return nil
}
