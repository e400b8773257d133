// Package session keeps the operator's login state for the console.
//
// The session is stored under two fixed keys, "token" and "user", the same
// way the browser console persisted it. It is written at login, cleared at
// logout and read on every authenticated backend call through Reader.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

var (
	ErrNoSession   = errors.New("no_session")
	ErrEmptyToken  = errors.New("empty_token")
	ErrInvalidUser = errors.New("invalid_session_user")
)

// User is the operator identity returned by the backend at login.
type User struct {
	ID          int64  `json:"id"`
	AccountName string `json:"accountName"`
	NickName    string `json:"nickName,omitempty"`
	RoleType    string `json:"roleType,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store persists string values under fixed keys. Put writes every key of
// values in one call.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Reader is the narrow read-only view handed to the HTTP client.
type Reader interface {
	Token() string
	UserID() string
}

// Manager owns the session. Writes go through to the store; reads are served
// from the last loaded value so outbound requests never touch the store.
type Manager struct {
	store   Store
	current atomic.Pointer[Session]
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads the persisted session into memory. A missing session is not an error.
func (m *Manager) Load(ctx context.Context) error {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	if !ok || token == "" {
		m.current.Store(nil)
		return nil
	}

	s := &Session{Token: token}
	raw, ok, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load session user: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
	}
	m.current.Store(s)
	return nil
}

// Get returns the current session or ErrNoSession.
func (m *Manager) Get() (Session, error) {
	s := m.current.Load()
	if s == nil || s.Token == "" {
		return Session{}, ErrNoSession
	}
	return *s, nil
}

// Set persists a fresh session (login).
func (m *Manager) Set(ctx context.Context, s Session) error {
	if s.Token == "" {
		return ErrEmptyToken
	}
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := m.store.Put(ctx, map[string]string{KeyToken: s.Token, KeyUser: string(userJSON)}); err != nil {
		// 일부 키만 쓰였을 수 있으니 메모리에 있는 세션으로 되돌린다.
		if rerr := m.restore(ctx); rerr != nil {
			return fmt.Errorf("persist session: %w (restore: %v)", err, rerr)
		}
		return fmt.Errorf("persist session: %w", err)
	}
	m.current.Store(&s)
	return nil
}

// Clear removes the session (logout). The in-memory session is dropped only
// after the store delete succeeds.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.current.Store(nil)
	return nil
}

// restore writes the in-memory session back to the store.
func (m *Manager) restore(ctx context.Context) error {
	prev := m.current.Load()
	if prev == nil {
		return m.store.Delete(ctx, KeyToken, KeyUser)
	}
	userJSON, err := json.Marshal(prev.User)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, map[string]string{KeyToken: prev.Token, KeyUser: string(userJSON)})
}

// Present reports whether a token exists. Validity is the backend's concern.
func (m *Manager) Present() bool {
	s := m.current.Load()
	return s != nil && s.Token != ""
}

func (m *Manager) Token() string {
	if s := m.current.Load(); s != nil {
		return s.Token
	}
	return ""
}

func (m *Manager) UserID() string {
	s := m.current.Load()
	if s == nil || s.User.ID == 0 {
		return ""
	}
	return strconv.FormatInt(s.User.ID, 10)
}
