package client

import (
	"context"
	"errors"
	"sync"
)

type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var ErrNotAuthenticated = errors.New("not authenticated")

// SessionManager owns the client-side session: the current bearer
// token and the resolved user. It is a three-state machine
// (initializing, anonymous, authenticated); any API call rejected
// with a 401 drops the session back to anonymous. All methods are
// safe for concurrent use.
type SessionManager struct {
	api   *Client
	store TokenStore

	mu    sync.Mutex // held across state reads/writes only, never across network calls
	state State
	user  *User
	token string
	// gen is bumped on every transition; a network call started
	// under an older gen has its result discarded on arrival.
	gen uint64
}

func NewSessionManager(api *Client, store TokenStore) *SessionManager {
	return &SessionManager{
		api:   api,
		store: store,
		state: StateInitializing,
	}
}

// Initialize resolves a previously stored token, if any, by calling
// the "who am I" endpoint. On success the session becomes
// authenticated; on any failure the stale token is discarded and the
// session becomes anonymous. Consumers must treat the initializing
// state as loading and render nothing protected during it.
func (m *SessionManager) Initialize(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		m.transition(StateAnonymous, nil, "")
		return err
	}
	if token == "" {
		m.transition(StateAnonymous, nil, "")
		return nil
	}

	m.mu.Lock()
	startGen := m.gen
	m.mu.Unlock()

	// The lock is not held across the network call; a concurrent
	// Logout or Login bumps gen and this result is then discarded.
	user, err := m.api.GetMe(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != startGen {
		return nil
	}
	if err != nil {
		_ = m.store.Clear()
		m.setLocked(StateAnonymous, nil, "")
		return nil
	}
	m.setLocked(StateAuthenticated, user, token)
	return nil
}

// Login authenticates with the server and, on success, stores the
// returned token and moves the session to authenticated.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// Register creates an account; the server issues a token on
// registration, so a successful register logs the session in.
func (m *SessionManager) Register(ctx context.Context, name, email, password string) error {
	resp, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// Logout discards the token and the resolved user.
func (m *SessionManager) Logout() error {
	err := m.store.Clear()
	m.transition(StateAnonymous, nil, "")
	return err
}

func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the resolved user, or nil unless authenticated.
func (m *SessionManager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Tasks lists the caller's tasks.
func (m *SessionManager) Tasks(ctx context.Context) ([]Task, error) {
	token, err := m.currentToken()
	if err != nil {
		return nil, err
	}
	tasks, err := m.api.GetTasks(ctx, token)
	if err != nil {
		return nil, m.checkAuthFailure(err, token)
	}
	return tasks, nil
}

// AddTask creates a task with the given text.
func (m *SessionManager) AddTask(ctx context.Context, text string) (*Task, error) {
	token, err := m.currentToken()
	if err != nil {
		return nil, err
	}
	task, err := m.api.CreateTask(ctx, token, text)
	if err != nil {
		return nil, m.checkAuthFailure(err, token)
	}
	return task, nil
}

// UpdateTask replaces the text of one of the caller's tasks.
func (m *SessionManager) UpdateTask(ctx context.Context, taskID, text string) (*Task, error) {
	token, err := m.currentToken()
	if err != nil {
		return nil, err
	}
	task, err := m.api.UpdateTask(ctx, token, taskID, text)
	if err != nil {
		return nil, m.checkAuthFailure(err, token)
	}
	return task, nil
}

// RemoveTask deletes one of the caller's tasks.
func (m *SessionManager) RemoveTask(ctx context.Context, taskID string) error {
	token, err := m.currentToken()
	if err != nil {
		return err
	}
	err = m.api.DeleteTask(ctx, token, taskID)
	if err != nil {
		return m.checkAuthFailure(err, token)
	}
	return nil
}

func (m *SessionManager) adopt(resp *AuthResponse) error {
	err := m.store.Save(resp.Token)
	if err != nil {
		return err
	}
	m.transition(StateAuthenticated, &User{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	}, resp.Token)
	return nil
}

func (m *SessionManager) currentToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return "", ErrNotAuthenticated
	}
	return m.token, nil
}

// checkAuthFailure invalidates the session when the server rejected
// the token. The token comparison makes repeated rejections of the
// same token idempotent: the first one wins, later ones (and
// rejections of an already replaced token) change nothing.
func (m *SessionManager) checkAuthFailure(err error, usedToken string) error {
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticated && m.token == usedToken {
		_ = m.store.Clear()
		m.setLocked(StateAnonymous, nil, "")
	}
	return err
}

func (m *SessionManager) transition(state State, user *User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(state, user, token)
}

func (m *SessionManager) setLocked(state State, user *User, token string) {
	m.state = state
	m.user = user
	m.token = token
	m.gen++
}
