// Package alert holds the shared reminder alert state exposed to front
// ends. The actual sound loop runs client-side; this adapter only tracks
// whether it should be playing and logs transitions.
package alert

import (
	"sync"

	"go.uber.org/zap"

	"taskdeck/internal/core/ports"
)

// Loop is the single shared alert. Start while playing is a no-op.
type Loop struct {
	mu      sync.Mutex
	playing bool
}

var _ ports.Alerter = (*Loop)(nil)

func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.playing {
		return
	}
	l.playing = true
	zap.L().Info("reminder alert started")
}

func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.playing {
		return
	}
	l.playing = false
	zap.L().Info("reminder alert stopped")
}

// Playing reports whether the alert loop should currently be audible.
func (l *Loop) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playing
}

// LogNotifier is the best-effort notification fallback used when no system
// notification channel is wired up: it never fails, it only logs.
type LogNotifier struct{}

var _ ports.Notifier = LogNotifier{}

func (LogNotifier) Notify(title, body string) {
	zap.L().Info("notification", zap.String("title", title), zap.String("body", body))
}
