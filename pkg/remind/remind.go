// Package remind schedules a daily desktop nudge about open tasks.
package remind

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// TaskSource exposes the tasks a reminder needs to count.
type TaskSource interface {
	Tasks() []record.Task
}

// Notifier delivers one reminder. The default sends a desktop
// notification.
type Notifier func(title, body string) error

// Reminder fires once a day at a fixed local time.
type Reminder struct {
	source TaskSource
	notify Notifier
	now    func() time.Time
	cron   *cron.Cron
}

// Option tweaks a Reminder.
type Option func(*Reminder)

// WithNotifier replaces the desktop notification, for tests.
func WithNotifier(n Notifier) Option {
	return func(r *Reminder) { r.notify = n }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reminder) { r.now = now }
}

// New builds a Reminder over the given task source.
func New(source TaskSource, opts ...Option) *Reminder {
	r := &Reminder{
		source: source,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
		now: time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start schedules the daily reminder at the given "HH:MM" local time
// and begins the scheduler. Stop with Stop.
func (r *Reminder) Start(at string) error {
	spec, err := cronSpec(at)
	if err != nil {
		return err
	}
	r.cron = cron.New()
	if _, err := r.cron.AddFunc(spec, r.Fire); err != nil {
		return fmt.Errorf("remind: schedule %q: %w", at, err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduler. Safe to call when never started.
func (r *Reminder) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Fire sends the reminder immediately. Days with nothing pending stay
// quiet.
func (r *Reminder) Fire() {
	pending := r.pendingToday()
	if pending == 0 {
		return
	}
	body := fmt.Sprintf("You have %d open tasks for today.", pending)
	if pending == 1 {
		body = "You have 1 open task for today."
	}
	if err := r.notify("Momentum", body); err != nil {
		log.Printf("remind: notification failed: %v", err)
	}
}

func (r *Reminder) pendingToday() int {
	today := record.DayOf(r.now())
	n := 0
	for _, t := range r.source.Tasks() {
		if t.On == today && !t.Completed {
			n++
		}
	}
	return n
}

// cronSpec turns "HH:MM" into a daily cron expression.
func cronSpec(at string) (string, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("remind: bad time %q, want HH:MM", at)
	}
	var hour, min int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &min); err != nil {
		return "", fmt.Errorf("remind: bad time %q, want HH:MM", at)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return "", fmt.Errorf("remind: time %q out of range", at)
	}
	return fmt.Sprintf("%d %d * * *", min, hour), nil
}
