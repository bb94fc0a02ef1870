package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// SessionLifecycle tracks authentication state and ties the sync engine's
// data to it: a full load on sign-in, an immediate clear on sign-out.
// Pending optimistic mutations are discarded with the clear.
type SessionLifecycle struct {
	store  ports.RemoteStore
	engine *SyncEngine

	mu      sync.Mutex
	state   domain.SessionState
	session *domain.Session
}

func NewSessionLifecycle(store ports.RemoteStore, engine *SyncEngine) *SessionLifecycle {
	return &SessionLifecycle{
		store:  store,
		engine: engine,
		state:  domain.SessionUnknown,
	}
}

var _ ports.SessionManager = (*SessionLifecycle)(nil)

// SignIn authenticates against the remote store and runs the sign-in
// transition, including the initial data load.
func (l *SessionLifecycle) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := l.store.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := l.HandleChange(ctx, session); err != nil {
		return session, err
	}
	return session, nil
}

// Start hydrates the engine from the persisted snapshot, then performs the
// initial session check. When the remote store is unreachable the snapshot
// stays in place so the last synced state remains readable.
func (l *SessionLifecycle) Start(ctx context.Context) error {
	if err := l.engine.Restore(ctx); err != nil {
		zap.L().Warn("failed to restore local snapshot", zap.Error(err))
	}

	session, err := l.store.Session(ctx)
	if err != nil {
		zap.L().Warn("initial session check failed", zap.Error(err))
		return err
	}
	return l.HandleChange(ctx, session)
}

// HandleChange applies an observed session transition. An authenticated
// session triggers a full load; a lost session clears local state.
func (l *SessionLifecycle) HandleChange(ctx context.Context, session *domain.Session) error {
	l.mu.Lock()
	l.session = session
	if session == nil {
		l.state = domain.SessionUnauthenticated
		l.mu.Unlock()
		l.engine.Clear()
		return nil
	}
	l.state = domain.SessionAuthenticated
	l.mu.Unlock()

	l.engine.SetSession(session)
	if err := l.engine.Load(ctx); err != nil {
		zap.L().Error("failed to load data after sign-in", zap.Error(err))
		return err
	}
	return nil
}

// SignOut invalidates the remote session and clears local state regardless
// of the remote outcome. Redirecting is the front end's job.
func (l *SessionLifecycle) SignOut(ctx context.Context) error {
	err := l.store.SignOut(ctx)

	l.mu.Lock()
	l.session = nil
	l.state = domain.SessionUnauthenticated
	l.mu.Unlock()

	l.engine.Clear()
	return err
}

func (l *SessionLifecycle) State() domain.SessionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *SessionLifecycle) Session() *domain.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}
