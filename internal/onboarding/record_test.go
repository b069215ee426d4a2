package onboarding

import (
	"errors"
	"slices"
	"testing"
)

func TestToggle(t *testing.T) {
	start := []string{"Marketing", "Science"}

	added := Toggle(start, "Technology")
	if !slices.Equal(added, []string{"Marketing", "Science", "Technology"}) {
		t.Fatalf("add: %v", added)
	}
	restored := Toggle(added, "Technology")
	if !slices.Equal(restored, start) {
		t.Fatalf("toggle twice: %v, want %v", restored, start)
	}
	removed := Toggle(start, "Marketing")
	if !slices.Equal(removed, []string{"Science"}) {
		t.Fatalf("remove: %v", removed)
	}
	if !slices.Equal(start, []string{"Marketing", "Science"}) {
		t.Fatalf("input mutated: %v", start)
	}
}

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord()
	if rec.ContentTone != ToneProfessional || rec.ContentFrequency != FrequencyWeekly {
		t.Fatalf("defaults: tone=%s frequency=%s", rec.ContentTone, rec.ContentFrequency)
	}
	if rec.ContentGoals == nil || rec.TopicsOfInterest == nil {
		t.Fatalf("multi-selects should start empty, not nil")
	}
}

func TestParseEnums(t *testing.T) {
	if tone, err := ParseTone(" Casual "); err != nil || tone != ToneCasual {
		t.Fatalf("ParseTone: %v %v", tone, err)
	}
	if _, err := ParseTone("sarcastic"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("ParseTone(sarcastic) err=%v", err)
	}
	if f, err := ParseFrequency("monthly"); err != nil || f != FrequencyMonthly {
		t.Fatalf("ParseFrequency: %v %v", f, err)
	}
	if _, err := ParseFrequency("hourly"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("ParseFrequency(hourly) err=%v", err)
	}
}
