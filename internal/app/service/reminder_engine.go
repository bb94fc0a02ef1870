package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// DefaultReminderInterval keeps reminders firing within seconds of their
// scheduled time.
const DefaultReminderInterval = 10 * time.Second

// ReminderEngine polls the task collection and fires at-most-once-per-day
// alerts for tasks whose reminder time has arrived. A single shared looping
// alert covers all due tasks; it stops only on StopAll or when no task
// remains due. The fired ledger resets when the engine observes a calendar
// day rollover on its own polling cycle.
type ReminderEngine struct {
	source   func() []domain.Task
	alerter  ports.Alerter
	notifier ports.Notifier
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	day    string
	fired  map[string]struct{}
	active map[string]string // task id -> reminder value currently alerting
}

var _ ports.ReminderController = (*ReminderEngine)(nil)

func NewReminderEngine(source func() []domain.Task, alerter ports.Alerter, notifier ports.Notifier, interval time.Duration) *ReminderEngine {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &ReminderEngine{
		source:   source,
		alerter:  alerter,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		fired:    make(map[string]struct{}),
		active:   make(map[string]string),
	}
}

// Run polls until the context is cancelled. An immediate check precedes the
// first tick.
func (r *ReminderEngine) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Check()
	for {
		select {
		case <-ctx.Done():
			r.alerter.Stop()
			return
		case <-ticker.C:
			r.Check()
		}
	}
}

// Check runs one polling pass over the current task snapshot.
func (r *ReminderEngine) Check() {
	now := r.now()
	day := now.Format("2006-01-02")
	tasks := r.source()

	r.mu.Lock()
	if r.day != day {
		// Day rollover: clear the fired ledger so reminders re-arm.
		r.day = day
		r.fired = make(map[string]struct{})
		r.active = make(map[string]string)
	}

	// Drop due entries whose task vanished or whose reminder was edited.
	current := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.Reminder != nil {
			current[t.ID] = t.Reminder.Format(time.RFC3339)
		}
	}
	for id, rem := range r.active {
		if cur, ok := current[id]; !ok || cur != rem {
			delete(r.active, id)
		}
	}

	var firing []domain.Task
	for _, t := range tasks {
		if t.Reminder == nil {
			continue
		}
		rem := *t.Reminder
		if now.Before(rem) || !sameDay(rem, now) {
			continue
		}
		key := t.ID + "|" + rem.Format(time.RFC3339) + "|" + day
		if _, done := r.fired[key]; done {
			continue
		}
		r.fired[key] = struct{}{}
		r.active[t.ID] = rem.Format(time.RFC3339)
		firing = append(firing, t)
	}
	hasActive := len(r.active) > 0
	r.mu.Unlock()

	if len(firing) > 0 {
		r.alerter.Start()
		for _, t := range firing {
			zap.L().Info("reminder due", zap.String("task_id", t.ID), zap.String("title", t.Title))
			r.notifier.Notify("Task Reminder", t.Title)
		}
	}
	if !hasActive {
		r.alerter.Stop()
	}
}

// StopAll acknowledges every currently due task and halts the alert loop.
// Acknowledged reminders stay in the fired ledger, so they cannot re-fire
// until the next day.
func (r *ReminderEngine) StopAll() {
	r.mu.Lock()
	r.active = make(map[string]string)
	r.mu.Unlock()
	r.alerter.Stop()
}

// Active returns the ids of tasks currently in the due state.
func (r *ReminderEngine) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	return ids
}

func (r *ReminderEngine) HasActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active) > 0
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
