package session

import (
	"errors"
	"testing"
	"time"
)

// clock 讓測試可以手動推進時間。
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestManager(ttl time.Duration) (*Manager, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(ttl)
	m.now = c.now
	return m, c
}

func TestBeginAndGet(t *testing.T) {
	m, _ := newTestManager(5 * time.Minute)
	s := m.Begin("js")
	if s.ID == "" || s.Username != "js" || s.Sorted {
		t.Fatalf("session=%+v", s)
	}
	if got := s.ExpiresAt.Sub(s.IssuedAt); got != 5*time.Minute {
		t.Fatalf("ttl=%v want=5m", got)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "js" {
		t.Fatalf("username=%q", got.Username)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestToggleSort(t *testing.T) {
	m, _ := newTestManager(time.Minute)
	s := m.Begin("jd")
	for i, want := range []bool{true, false, true} {
		got, err := m.ToggleSort(s.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("toggle #%d=%v want=%v", i, got, want)
		}
	}
	cur, _ := m.Get(s.ID)
	if !cur.Sorted {
		t.Fatal("sorted flag not stored")
	}
}

func TestExpiry(t *testing.T) {
	m, c := newTestManager(time.Minute)
	s := m.Begin("ss")
	c.t = c.t.Add(59 * time.Second)
	if _, err := m.Get(s.ID); err != nil {
		t.Fatalf("before expiry err=%v", err)
	}
	c.t = c.t.Add(time.Second)
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
	// 過期後即被移除
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestEndAndEndAll(t *testing.T) {
	m, _ := newTestManager(time.Minute)
	a := m.Begin("jd")
	b := m.Begin("jd")
	c := m.Begin("js")

	m.End(a.ID)
	if _, err := m.Get(a.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("ended session still present: %v", err)
	}
	if n := m.EndAll("jd"); n != 1 {
		t.Fatalf("EndAll=%d want=1", n)
	}
	if _, err := m.Get(b.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("jd session still present: %v", err)
	}
	if _, err := m.Get(c.ID); err != nil {
		t.Fatalf("js session should survive: %v", err)
	}
	if n := m.Active(); n != 1 {
		t.Fatalf("Active=%d want=1", n)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	iss := NewIssuer("0123456789abcdef0123456789abcdef")
	s := Session{
		ID:        "sid-1",
		Username:  "stw",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	tok, err := iss.Issue(s)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID != "sid-1" || claims.Subject != "stw" {
		t.Fatalf("claims=%+v", claims)
	}

	other := NewIssuer("another-secret-another-secret-xx")
	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign secret: want ErrInvalidToken, got %v", err)
	}
	if _, err := iss.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	iss := NewIssuer("0123456789abcdef0123456789abcdef")
	past := time.Now().Add(-time.Hour)
	tok, err := iss.Issue(Session{ID: "x", Username: "js", IssuedAt: past, ExpiresAt: past.Add(time.Minute)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
