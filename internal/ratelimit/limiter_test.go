package ratelimit

import (
	"testing"
	"time"
)

func TestFixedWindow_AllowsUpToLimit(t *testing.T) {
	l := NewFixedWindow()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	l.nowF = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if r := l.Allow("k", 5, time.Minute); !r.OK {
			t.Fatalf("call %d rejected, want allowed", i+1)
		}
	}
	r := l.Allow("k", 5, time.Minute)
	if r.OK {
		t.Fatal("6th call allowed, want rejected")
	}
	if r.RetryAfterSeconds != 60 {
		t.Errorf("RetryAfterSeconds = %d, want 60", r.RetryAfterSeconds)
	}
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	l := NewFixedWindow()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	l.nowF = func() time.Time { return now }

	for i := 0; i < 6; i++ {
		l.Allow("k", 5, time.Minute)
	}

	now = now.Add(time.Minute)
	if r := l.Allow("k", 5, time.Minute); !r.OK {
		t.Error("call after window elapsed rejected, want allowed")
	}
}

func TestFixedWindow_RetryAfterShrinks(t *testing.T) {
	l := NewFixedWindow()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	l.nowF = func() time.Time { return now }

	l.Allow("k", 1, time.Minute)
	now = now.Add(45 * time.Second)
	r := l.Allow("k", 1, time.Minute)
	if r.OK {
		t.Fatal("over-limit call allowed, want rejected")
	}
	if r.RetryAfterSeconds != 15 {
		t.Errorf("RetryAfterSeconds = %d, want 15", r.RetryAfterSeconds)
	}
}

func TestFixedWindow_RetryAfterFloorIsOne(t *testing.T) {
	l := NewFixedWindow()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	l.nowF = func() time.Time { return now }

	l.Allow("k", 1, time.Minute)
	now = now.Add(time.Minute - time.Millisecond)
	r := l.Allow("k", 1, time.Minute)
	if r.OK {
		t.Fatal("over-limit call allowed, want rejected")
	}
	if r.RetryAfterSeconds != 1 {
		t.Errorf("RetryAfterSeconds = %d, want 1", r.RetryAfterSeconds)
	}
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	l := NewFixedWindow()

	l.Allow("a", 1, time.Minute)
	if r := l.Allow("a", 1, time.Minute); r.OK {
		t.Error("second call for a allowed, want rejected")
	}
	if r := l.Allow("b", 1, time.Minute); !r.OK {
		t.Error("first call for b rejected, want allowed")
	}
}
