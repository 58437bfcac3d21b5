package model

import "testing"

func TestTimeSlots_CoverFullDay(t *testing.T) {
	if len(TimeSlots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(TimeSlots))
	}

	seen := map[string]bool{}
	for _, s := range TimeSlots {
		if seen[s] {
			t.Errorf("duplicate slot %q", s)
		}
		seen[s] = true
	}
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, s := range TimeSlots {
		if !IsValidTimeSlot(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "09:00 - 10:00", "09:00 AM-10:00 AM", "25:00 PM - 26:00 PM"}
	for _, s := range invalid {
		if IsValidTimeSlot(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
