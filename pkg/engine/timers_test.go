package engine

import "testing"

func TestTimers_FireInDueOrder(t *testing.T) {
	var timers Timers
	var fired []string
	timers.After(0.5, func() { fired = append(fired, "b") })
	timers.After(0.25, func() { fired = append(fired, "a") })
	timers.After(0.5, func() { fired = append(fired, "c") })
	timers.After(2, func() { fired = append(fired, "late") })

	if n := timers.Advance(0.25); n != 1 {
		t.Fatalf("Advance(0.25) ran %d callbacks, want 1", n)
	}
	if n := timers.Advance(0.5); n != 2 {
		t.Fatalf("Advance(0.5) ran %d callbacks, want 2", n)
	}

	want := []string{"a", "b", "c"}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired = %v, want %v", fired, want)
			break
		}
	}
	if timers.Len() != 1 {
		t.Errorf("Len() = %d, want 1", timers.Len())
	}
	if timers.Now() != 0.75 {
		t.Errorf("Now() = %v, want 0.75", timers.Now())
	}
}

func TestTimers_CancelAndRemaining(t *testing.T) {
	var timers Timers
	ran := false
	id := timers.After(1, func() { ran = true })

	timers.Advance(0.25)
	if rem, ok := timers.Remaining(id); !ok || rem != 0.75 {
		t.Errorf("Remaining() = %v, %v, want 0.75, true", rem, ok)
	}
	if !timers.Cancel(id) {
		t.Fatal("Cancel() = false for pending timer")
	}
	if timers.Cancel(id) {
		t.Error("second Cancel() = true")
	}
	timers.Advance(5)
	if ran {
		t.Error("cancelled timer ran")
	}
	if _, ok := timers.Remaining(id); ok {
		t.Error("Remaining() found a cancelled timer")
	}
}

func TestTimers_ScheduleFromCallback(t *testing.T) {
	var timers Timers
	count := 0
	var tick func()
	tick = func() {
		count++
		timers.After(0, tick)
	}
	timers.After(0, tick)

	timers.Advance(0)
	timers.Advance(0)
	if count != 2 {
		t.Errorf("count = %d, want 2 (one per Advance)", count)
	}
}

func TestTimers_Clear(t *testing.T) {
	var timers Timers
	ran := false
	timers.After(0.1, func() { ran = true })
	timers.Clear()
	timers.Advance(1)
	if ran || timers.Len() != 0 {
		t.Error("Clear() left a pending timer")
	}
}
