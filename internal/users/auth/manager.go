// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/hortus/internal/platform/apperr"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// errTokenExpired is the restore failure for a JWT already past its expiry.
var errTokenExpired = errors.New("auth: stored token has expired")

// # Session Manager

// Manager is the sole authority for session state transitions.
//
// # Concurrency
//
// Readers take a snapshot through [Manager.Session] and never observe a
// partially applied transition. Network calls run outside the lock.
//
// Operations are not mutually excluded; the UI is expected to run one at a
// time. Each operation takes a monotonically increasing id, and its final
// write (memory and store) is dropped when a newer operation has started
// since, so a late Restore cannot clobber a Login that finished first.
//
// Transitions and their store writes are serialized by mu. Readers go
// through an atomically published snapshot and never wait on store I/O.
type Manager struct {
	mu       sync.Mutex
	state    Session
	seq      uint64
	snapshot atomic.Pointer[Session]

	store     Store
	gateway   Gateway
	inspector *sec.TokenInspector
	logger    *slog.Logger
}

// NewManager constructs a [Manager] in the Uninitialized state.
func NewManager(store Store, gateway Gateway, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	manager := &Manager{
		state:     Session{Status: StatusUninitialized, IsLoading: true},
		store:     store,
		gateway:   gateway,
		inspector: sec.NewTokenInspector(),
		logger:    logger,
	}
	manager.publish()
	return manager
}

// Session returns a snapshot of the current state.
func (manager *Manager) Session() Session {
	snapshot := *manager.snapshot.Load()
	snapshot.User = snapshot.User.clone()
	return snapshot
}

/*
Restore rebuilds the session from the store and validates it against the API.

It is called once by the composition root at startup.

Returns:
  - Outcome: Authenticated when the API confirmed the stored token. Anonymous
    otherwise, tagged KindSessionInvalidated when the token was rejected or
    KindStorageCorruption when the stored entries were unusable.
*/
func (manager *Manager) Restore(ctx context.Context) Outcome {
	op := manager.begin(StatusRestoring)

	// ── 1. Read the persisted entries ─────────────────────────────────────
	token, tokenErr := manager.store.LoadToken(ctx)
	user, userErr := manager.store.LoadUser(ctx)
	if err := errors.Join(tokenErr, userErr); err != nil {
		manager.logger.WarnContext(ctx, "session_store_unreadable", slog.Any("error", err))
		return manager.finish(op, func() {
			manager.signOut("")
		}, Outcome{Status: StatusAnonymous, Kind: KindStorageCorruption, Err: err})
	}

	// ── 2. Nothing cached ─────────────────────────────────────────────────
	if token == "" && user == nil {
		return manager.finish(op, func() {
			manager.signOut("")
		}, Outcome{Status: StatusAnonymous})
	}

	// ── 3. Half a session is no session ───────────────────────────────────
	if token == "" || user == nil {
		manager.logger.WarnContext(ctx, "session_store_partial",
			slog.Bool("has_token", token != ""),
			slog.Bool("has_user", user != nil),
		)
		return manager.finish(op, func() {
			manager.clearStore(ctx)
			manager.signOut("")
		}, Outcome{Status: StatusAnonymous, Kind: KindStorageCorruption})
	}

	// ── 4. Validate against the API ───────────────────────────────────────
	var fresh *User
	var err error
	if manager.inspector.IsExpired(token) {
		err = errTokenExpired
	} else {
		fresh, err = manager.gateway.FetchCurrentUser(ctx)
		if err == nil && fresh == nil {
			err = errMalformedAuthResponse
		}
	}

	if err != nil {
		manager.logger.InfoContext(ctx, "session_restore_rejected",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		failure := &Error{Kind: KindSessionInvalidated, Message: MsgSessionExpired, Cause: err}
		return manager.finish(op, func() {
			manager.clearStore(ctx)
			manager.signOut(MsgSessionExpired)
		}, Outcome{Status: StatusAnonymous, Kind: KindSessionInvalidated, Err: failure})
	}

	// ── 5. Adopt the fresh profile with the cached token ──────────────────
	return manager.finish(op, func() {
		if err := manager.store.Save(ctx, fresh, token); err != nil {
			manager.logger.WarnContext(ctx, "session_writeback_failed", slog.Any("error", err))
		}
		manager.adopt(fresh.clone(), token)
	}, Outcome{Status: StatusAuthenticated})
}

/*
Login signs the operator in.

Returns:
  - error: nil on success; an [*Error] of KindTransientAuth carrying the same
    message now recorded on the session; [ErrSuperseded] if a newer operation
    took over
*/
func (manager *Manager) Login(ctx context.Context, credentials Credentials) error {
	return manager.authenticate(ctx, StatusLoggingIn, MsgLoginFailed, func() (*AuthResponse, error) {
		return manager.gateway.Login(ctx, credentials)
	})
}

/*
Register creates an account and signs the operator in with it.

The contract is the same as [Manager.Login].
*/
func (manager *Manager) Register(ctx context.Context, input RegisterInput) error {
	return manager.authenticate(ctx, StatusRegistering, MsgRegisterFailed, func() (*AuthResponse, error) {
		return manager.gateway.Register(ctx, input)
	})
}

/*
Logout signs the operator out.

The API is told first whenever a token is held in memory or persisted, so
a logout racing the startup restore still revokes the stored token. Its
failure is logged and tagged but never prevents the local sign-out.
Calling Logout while already anonymous is a no-op that ends in the same state.
*/
func (manager *Manager) Logout(ctx context.Context) Outcome {
	hadToken := manager.Session().HasToken()
	if !hadToken {
		stored, err := manager.store.LoadToken(ctx)
		hadToken = err == nil && stored != ""
	}
	op := manager.begin(StatusLoggingOut)

	outcome := Outcome{Status: StatusAnonymous}
	if hadToken {
		if err := manager.gateway.Logout(ctx); err != nil {
			manager.logger.WarnContext(ctx, "logout_remote_failed", slog.Any("error", err))
			outcome.Kind = KindLogoutRemote
			outcome.Err = &Error{Kind: KindLogoutRemote, Message: err.Error(), Cause: err}
		}
	}

	return manager.finish(op, func() {
		manager.clearStore(ctx)
		manager.signOut("")
	}, outcome)
}

/*
Invalidate ends a session the API has just rejected with 401.

It is the transport's reaction to an unauthorized response. When an
operation is in flight the operation owns the outcome and nothing happens
here. Otherwise the store is cleared, any in-flight result is discarded,
and the session becomes Anonymous.
*/
func (manager *Manager) Invalidate(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.state.IsLoading {
		manager.logger.DebugContext(ctx, "session_invalidate_deferred",
			slog.String("status", manager.state.Status.String()),
		)
		return
	}

	manager.seq++
	wasAuthenticated := manager.state.IsAuthenticated
	manager.clearStore(ctx)

	message := ""
	if wasAuthenticated {
		message = MsgSessionExpired
	}
	manager.signOut(message)
	manager.publish()

	manager.logger.WarnContext(ctx, "session_invalidated", slog.Bool("was_authenticated", wasAuthenticated))
}

// # Internal Transitions

// begin starts an operation and returns its id.
func (manager *Manager) begin(status Status) uint64 {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.seq++
	manager.state.Status = status
	manager.state.IsLoading = true
	manager.state.Error = ""
	manager.publish()
	return manager.seq
}

// commit applies write under the lock if op is still the latest operation.
func (manager *Manager) commit(op uint64, write func()) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if op != manager.seq {
		return false
	}
	write()
	manager.publish()
	return true
}

// finish commits write and returns outcome, or a superseded outcome.
func (manager *Manager) finish(op uint64, write func(), outcome Outcome) Outcome {
	if manager.commit(op, write) {
		return outcome
	}
	return Outcome{Status: manager.Session().Status, Kind: KindSuperseded, Err: ErrSuperseded}
}

// authenticate runs the shared Login and Register flow.
func (manager *Manager) authenticate(ctx context.Context, status Status, fallback string, call func() (*AuthResponse, error)) error {
	op := manager.begin(status)

	// ── 1. Ask the API ────────────────────────────────────────────────────
	response, err := call()
	if err == nil && (response == nil || response.User == nil || response.Token == "") {
		err = errMalformedAuthResponse
	}

	// ── 2. Record a failure and hand it back ──────────────────────────────
	if err != nil {
		message := apperr.ServerMessage(err)
		if message == "" {
			message = fallback
		}
		manager.logger.InfoContext(ctx, "auth_attempt_failed",
			slog.String("operation", status.String()),
			slog.Any("error", err),
		)

		failure := &Error{Kind: KindTransientAuth, Message: message, Cause: err}
		manager.commit(op, func() {
			manager.settle(message)
		})
		return failure
	}

	// ── 3. Persist, then adopt ────────────────────────────────────────────
	var failure error
	committed := manager.commit(op, func() {
		if err := manager.store.Save(ctx, response.User, response.Token); err != nil {
			manager.logger.ErrorContext(ctx, "session_persist_failed", slog.Any("error", err))
			manager.clearStore(ctx)
			manager.signOut(MsgPersistFailed)
			failure = &Error{Kind: KindTransientAuth, Message: MsgPersistFailed, Cause: err}
			return
		}
		manager.adopt(response.User.clone(), response.Token)
	})
	if !committed {
		return ErrSuperseded
	}
	return failure
}

// publish makes the current state visible to [Manager.Session]. Caller holds the lock.
func (manager *Manager) publish() {
	snapshot := manager.state
	snapshot.User = snapshot.User.clone()
	manager.snapshot.Store(&snapshot)
}

// adopt sets an authenticated state. Caller holds the lock.
func (manager *Manager) adopt(user *User, token string) {
	manager.state = Session{
		User:            user,
		Token:           token,
		IsAuthenticated: true,
		Status:          StatusAuthenticated,
	}
}

// signOut sets an anonymous state with an optional message. Caller holds the lock.
func (manager *Manager) signOut(message string) {
	manager.state = Session{
		Error:  message,
		Status: StatusAnonymous,
	}
}

// settle ends a failed attempt without touching the held credentials.
// Caller holds the lock.
func (manager *Manager) settle(message string) {
	manager.state.IsLoading = false
	manager.state.Error = message
	manager.state.IsAuthenticated = manager.state.User != nil && manager.state.Token != ""
	if manager.state.IsAuthenticated {
		manager.state.Status = StatusAuthenticated
	} else {
		manager.state.Status = StatusAnonymous
	}
}

// clearStore empties the store, logging failures. Caller holds the lock.
func (manager *Manager) clearStore(ctx context.Context) {
	if err := manager.store.Clear(ctx); err != nil {
		manager.logger.ErrorContext(ctx, "session_clear_failed", slog.Any("error", err))
	}
}
