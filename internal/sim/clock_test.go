package sim

import "testing"

func TestClockStartsAtOpen(t *testing.T) {
	c := NewClock(6, 18)
	if c.Hour != 6 {
		t.Fatalf("expected clock to open at 6, got %v", c.Hour)
	}
	if c.DaysElapsed != 0 {
		t.Fatalf("expected 0 days elapsed, got %d", c.DaysElapsed)
	}
}

func TestClockAdvanceMonotonic(t *testing.T) {
	c := NewClock(6, 18)
	prev := c.Hour
	for i := 0; i < 200; i++ {
		c.Advance(1)
		if c.Hour < prev {
			t.Fatalf("clock went backwards: %v -> %v", prev, c.Hour)
		}
		if c.Hour > c.CloseHour {
			t.Fatalf("clock exceeded close hour: %v", c.Hour)
		}
		prev = c.Hour
	}
}

func TestClockFreezesExactlyAtClose(t *testing.T) {
	c := NewClock(6, 18)
	c.Hour = 17.98

	ended := c.Advance(5)
	if !ended {
		t.Fatalf("expected day to end")
	}
	if c.Hour != 18.0 {
		t.Fatalf("expected hour frozen at 18.0, got %v", c.Hour)
	}
}

func TestClockAdvanceAfterCloseStaysFrozen(t *testing.T) {
	c := NewClock(6, 18)
	c.Hour = 18.0

	if !c.Advance(10) {
		t.Fatalf("expected dayEnded while at close")
	}
	if c.Hour != 18.0 {
		t.Fatalf("expected hour to stay 18.0, got %v", c.Hour)
	}
}

func TestClockStartNextDay(t *testing.T) {
	c := NewClock(6, 18)
	c.Hour = 18.0

	c.StartNextDay()
	if c.Hour != 6 {
		t.Fatalf("expected hour reset to 6, got %v", c.Hour)
	}
	if c.DaysElapsed != 1 {
		t.Fatalf("expected 1 day elapsed, got %d", c.DaysElapsed)
	}
}
