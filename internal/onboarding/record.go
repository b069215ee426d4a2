package onboarding

import (
	"fmt"
	"slices"
	"strings"
)

type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneFriendly      Tone = "friendly"
	ToneAuthoritative Tone = "authoritative"
	ToneCreative      Tone = "creative"
)

var Tones = []Tone{ToneProfessional, ToneCasual, ToneFriendly, ToneAuthoritative, ToneCreative}

func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Tones, t) {
		return "", fmt.Errorf("%w: tone %q", ErrInvalidOption, s)
	}
	return t, nil
}

type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyOccasional Frequency = "occasional"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOccasional}

func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Frequencies, f) {
		return "", fmt.Errorf("%w: frequency %q", ErrInvalidOption, s)
	}
	return f, nil
}

var Goals = []string{
	"Marketing & Brand Awareness",
	"Educational Content",
	"Product Documentation",
	"Social Media Posts",
	"Blog Articles",
	"Technical Writing",
	"Creative Writing",
	"Business Reports",
}

var Topics = []string{
	"Technology",
	"Marketing",
	"Finance",
	"Healthcare",
	"Education",
	"E-commerce",
	"Entertainment",
	"Travel",
	"Food & Lifestyle",
	"Sports",
	"Science",
	"Art & Design",
}

// Record is everything the wizard collects. It is persisted once, on submit.
type Record struct {
	FullName         string    `json:"full_name"`
	CompanyName      string    `json:"company_name"`
	Role             string    `json:"role"`
	Industry         string    `json:"industry"`
	ContentGoals     []string  `json:"content_goals"`
	TargetAudience   string    `json:"target_audience"`
	ContentTone      Tone      `json:"content_tone"`
	TopicsOfInterest []string  `json:"topics_of_interest"`
	ContentFrequency Frequency `json:"content_frequency"`
}

func NewRecord() Record {
	return Record{
		ContentGoals:     []string{},
		TopicsOfInterest: []string{},
		ContentTone:      ToneProfessional,
		ContentFrequency: FrequencyWeekly,
	}
}

func (r Record) clone() Record {
	r.ContentGoals = slices.Clone(r.ContentGoals)
	r.TopicsOfInterest = slices.Clone(r.TopicsOfInterest)
	return r
}

// Toggle removes item from list if present, otherwise appends it.
// Order of the remaining items is preserved.
func Toggle(list []string, item string) []string {
	if i := slices.Index(list, item); i >= 0 {
		out := make([]string, 0, len(list)-1)
		out = append(out, list[:i]...)
		return append(out, list[i+1:]...)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}
