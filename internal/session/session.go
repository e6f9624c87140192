// Package session 管理登入狀態：LoggedOut → LoggedIn(account) → LoggedOut。
// 每次成功登入建立一個 Session（含排序開關與到期時間），由 adapter 明確傳遞，
// 取代全域的「目前帳戶」變數。
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSession      = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

// Session 為單次登入的狀態。
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Sorted    bool      `json:"sorted"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 回傳 now 是否已超過到期時間。
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Manager 保存所有進行中的 Session。
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager 建立 Manager；ttl 為每次登入的有效時間。
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// TTL 回傳 session 有效時間。
func (m *Manager) TTL() time.Duration { return m.ttl }

// Begin 為 username 建立新 Session，排序開關預設關閉。
func (m *Manager) Begin(username string) Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return *s
}

// lookup 取出仍有效的 Session；已過期者順便移除。呼叫端必須持有 mu。
func (m *Manager) lookup(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if s.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Get 回傳 Session 的拷貝。
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// ToggleSort 反轉排序開關並回傳新值。
func (m *Manager) ToggleSort(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	s.Sorted = !s.Sorted
	return s.Sorted, nil
}

// End 結束單一 Session（登出）。不存在時不做任何事。
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// EndAll 結束 username 的所有 Session，於帳戶結清後呼叫；回傳結束的數量。
func (m *Manager) EndAll(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Username == username {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Active 回傳尚未過期的 Session 數量，並清除已過期者。
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
	return len(m.sessions)
}
