package timing

import (
	"testing"
	"time"
)

func TestRealTimeProviderMonotonic(t *testing.T) {
	provider := NewRealTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if now := mock.Now(); !now.Equal(start) {
		t.Fatalf("Expected initial time %v, got %v", start, now)
	}

	mock.Advance(time.Second)
	mock.Advance(500 * time.Millisecond)
	if got, want := mock.Now(), start.Add(1500*time.Millisecond); !got.Equal(want) {
		t.Errorf("Expected %v after advances, got %v", want, got)
	}

	later := start.Add(time.Hour)
	mock.SetTime(later)
	if now := mock.Now(); !now.Equal(later) {
		t.Errorf("Expected %v after SetTime, got %v", later, now)
	}
}
