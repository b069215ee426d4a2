package onboarding

import (
	"fmt"
	"strings"
)

type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
	Step4
)

const stepCount = 4

func (s Step) String() string {
	return fmt.Sprintf("step%d", int(s))
}

func (s Step) valid() bool { return s >= Step1 && s <= Step4 }

// stepValidators[s-1] decides whether step s may be left forward.
var stepValidators = [stepCount]func(Record) bool{
	func(r Record) bool { return strings.TrimSpace(r.FullName) != "" },
	func(r Record) bool { return len(r.ContentGoals) > 0 },
	func(r Record) bool {
		return strings.TrimSpace(r.TargetAudience) != "" && len(r.TopicsOfInterest) > 0
	},
	func(Record) bool { return true },
}

// IsStepValid reports whether rec satisfies step s's predicate.
func IsStepValid(s Step, rec Record) bool {
	if !s.valid() {
		return false
	}
	return stepValidators[s-1](rec)
}

// Field names a user-editable part of the record.
type Field string

const (
	FieldFullName         Field = "full_name"
	FieldCompanyName      Field = "company_name"
	FieldRole             Field = "role"
	FieldIndustry         Field = "industry"
	FieldContentGoals     Field = "content_goals"
	FieldTargetAudience   Field = "target_audience"
	FieldContentTone      Field = "content_tone"
	FieldTopicsOfInterest Field = "topics_of_interest"
	FieldContentFrequency Field = "content_frequency"
)

var fieldOwner = map[Field]Step{
	FieldFullName:         Step1,
	FieldCompanyName:      Step1,
	FieldRole:             Step1,
	FieldIndustry:         Step1,
	FieldContentGoals:     Step2,
	FieldTargetAudience:   Step3,
	FieldContentTone:      Step3,
	FieldTopicsOfInterest: Step3,
	FieldContentFrequency: Step4,
}

// OwnerOf returns the step whose form edits f.
func OwnerOf(f Field) (Step, bool) {
	s, ok := fieldOwner[f]
	return s, ok
}
