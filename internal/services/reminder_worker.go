package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"workshopmailer/internal/models"
	"workshopmailer/internal/roster"
)

// How long after the workshop start the "starting now" notice is still worth
// sending.
const startingNowWindow = 10 * time.Minute

const tickTimeout = 30 * time.Second

// TickStats summarizes one worker pass.
type TickStats struct {
	Candidates int `json:"candidates"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// ReminderWorker polls the roster on a fixed interval and sends whichever
// emails each candidate is due. Delivery is at-least-once: records are
// written only after a successful send.
type ReminderWorker struct {
	fetcher  roster.Fetcher
	emails   *EmailService
	store    SentStore
	interval time.Duration
	lead     time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewReminderWorker(fetcher roster.Fetcher, emails *EmailService, store SentStore, interval, lead time.Duration) *ReminderWorker {
	return &ReminderWorker{
		fetcher:  fetcher,
		emails:   emails,
		store:    store,
		interval: interval,
		lead:     lead,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (w *ReminderWorker) Start() {
	go w.run()
}

func (w *ReminderWorker) Stop() {
	close(w.stop)
}

func (w *ReminderWorker) run() {
	// First pass immediately so a restart doesn't wait a full interval.
	if _, err := w.RunOnce(context.Background()); err != nil {
		log.Printf("Roster poll failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.RunOnce(context.Background()); err != nil {
				log.Printf("Roster poll failed: %v", err)
			}
		case <-w.stop:
			return
		}
	}
}

// RunOnce performs a single pass over the roster. A fetch failure aborts the
// pass; send failures for individual candidates are logged and the pass
// continues.
func (w *ReminderWorker) RunOnce(ctx context.Context) (TickStats, error) {
	ctx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()

	now := w.now()

	candidates, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return TickStats{}, err
	}

	stats := TickStats{Candidates: len(candidates)}
	for _, candidate := range candidates {
		for _, kind := range dueKinds(candidate, now, w.lead) {
			sent, err := w.store.AlreadySent(candidate.Email, kind)
			if err != nil {
				log.Printf("Failed to check sent records for %s: %v", candidate.Email, err)
				stats.Failed++
				continue
			}
			if sent {
				continue
			}
			w.sendAndRecord(candidate, kind, now, &stats)
		}
	}
	return stats, nil
}

// dueKinds returns the emails a candidate is due at the given instant.
// Confirmation is always due once; the one-hour reminder only inside
// [workshop_time-lead, workshop_time); the starting-now notice inside
// [workshop_time, workshop_time+10m).
func dueKinds(c models.Candidate, now time.Time, lead time.Duration) []models.ReminderKind {
	kinds := []models.ReminderKind{models.KindConfirmation}

	until := c.WorkshopTime.Sub(now)
	if until > 0 && until <= lead {
		kinds = append(kinds, models.KindOneHourReminder)
	}

	since := now.Sub(c.WorkshopTime)
	if since >= 0 && since < startingNowWindow {
		kinds = append(kinds, models.KindStartingNow)
	}

	return kinds
}

func (w *ReminderWorker) sendAndRecord(candidate models.Candidate, kind models.ReminderKind, now time.Time, stats *TickStats) {
	subject, err := w.emails.Send(kind, candidate)
	w.logAttempt(candidate, kind, subject, err)
	if err != nil {
		log.Printf("Failed to send %s to %s: %v", kind, candidate.Email, err)
		stats.Failed++
		return
	}
	stats.Sent++

	if err := w.store.Record(candidate.Email, kind, now); err != nil {
		// The send already succeeded; a failed record write only risks a
		// duplicate on the next tick.
		log.Printf("Failed to record %s for %s: %v", kind, candidate.Email, err)
		return
	}
	log.Printf("Sent %s to %s", kind, candidate.Email)
}

func (w *ReminderWorker) logAttempt(candidate models.Candidate, kind models.ReminderKind, subject string, sendErr error) {
	snapshot, _ := json.Marshal(candidate)
	entry := &models.EmailLog{
		Email:     candidate.Email,
		Kind:      kind,
		Subject:   subject,
		Status:    models.EmailStatusSent,
		Candidate: snapshot,
	}
	if sendErr != nil {
		entry.Status = models.EmailStatusFailed
		entry.Error = sendErr.Error()
	}
	if err := w.store.LogAttempt(entry); err != nil {
		log.Printf("Failed to write email log for %s: %v", candidate.Email, err)
	}
}
