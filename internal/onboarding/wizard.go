package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

const DashboardPath = "/dashboard"

var (
	ErrStepInvalid      = errors.New("onboarding: current step is incomplete")
	ErrFieldNotEditable = errors.New("onboarding: field belongs to another step")
	ErrUnknownField     = errors.New("onboarding: unknown field")
	ErrInvalidOption    = errors.New("onboarding: invalid option")
	ErrNotFinalStep     = errors.New("onboarding: submit is only allowed from the last step")
	ErrAlreadySubmitted = errors.New("onboarding: already submitted")
)

// Persister stores a finished record for a user.
type Persister interface {
	SaveOnboarding(ctx context.Context, rec Record) error
}

type PersisterFunc func(ctx context.Context, rec Record) error

func (fn PersisterFunc) SaveOnboarding(ctx context.Context, rec Record) error { return fn(ctx, rec) }

// Patch carries free-text and enum edits. Nil fields are left untouched.
type Patch struct {
	FullName         *string `json:"full_name,omitempty"`
	CompanyName      *string `json:"company_name,omitempty"`
	Role             *string `json:"role,omitempty"`
	Industry         *string `json:"industry,omitempty"`
	TargetAudience   *string `json:"target_audience,omitempty"`
	ContentTone      *string `json:"content_tone,omitempty"`
	ContentFrequency *string `json:"content_frequency,omitempty"`
}

func (p Patch) fields() []Field {
	var out []Field
	if p.FullName != nil {
		out = append(out, FieldFullName)
	}
	if p.CompanyName != nil {
		out = append(out, FieldCompanyName)
	}
	if p.Role != nil {
		out = append(out, FieldRole)
	}
	if p.Industry != nil {
		out = append(out, FieldIndustry)
	}
	if p.TargetAudience != nil {
		out = append(out, FieldTargetAudience)
	}
	if p.ContentTone != nil {
		out = append(out, FieldContentTone)
	}
	if p.ContentFrequency != nil {
		out = append(out, FieldContentFrequency)
	}
	return out
}

type SubmitResult struct {
	Redirect  string `json:"redirect"`
	Persisted bool   `json:"persisted"`
}

// Snapshot is a consistent view of a wizard for display.
type Snapshot struct {
	Step       Step   `json:"step"`
	TotalSteps int    `json:"total_steps"`
	StepValid  bool   `json:"step_valid"`
	Submitted  bool   `json:"submitted"`
	Record     Record `json:"record"`
}

// Wizard is the 4-step form. Edits are accepted only for fields owned by the
// active step, and Next refuses to leave a step whose predicate fails, so
// every step is valid by the time Step4 is reached.
type Wizard struct {
	mu        sync.Mutex
	step      Step
	rec       Record
	submitted bool
	log       *logger.Logger
}

func NewWizard(log *logger.Logger) *Wizard {
	if log == nil {
		log = logger.Nop()
	}
	return &Wizard{step: Step1, rec: NewRecord(), log: log}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Record() Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rec.clone()
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Step:       w.step,
		TotalSteps: stepCount,
		StepValid:  IsStepValid(w.step, w.rec),
		Submitted:  w.submitted,
		Record:     w.rec.clone(),
	}
}

// Next advances one step when the current step is valid. On the last step it
// is a no-op.
func (w *Wizard) Next() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return w.step, ErrAlreadySubmitted
	}
	if !IsStepValid(w.step, w.rec) {
		return w.step, ErrStepInvalid
	}
	if w.step < Step4 {
		w.step++
	}
	return w.step, nil
}

// Back moves one step back. On the first step it is a no-op.
func (w *Wizard) Back() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return w.step, ErrAlreadySubmitted
	}
	if w.step > Step1 {
		w.step--
	}
	return w.step, nil
}

// Apply sets the patched fields. The whole patch is rejected if any field is
// owned by another step or carries an unknown enum value.
func (w *Wizard) Apply(p Patch) error {
	var (
		tone Tone
		freq Frequency
		err  error
	)
	if p.ContentTone != nil {
		if tone, err = ParseTone(*p.ContentTone); err != nil {
			return err
		}
	}
	if p.ContentFrequency != nil {
		if freq, err = ParseFrequency(*p.ContentFrequency); err != nil {
			return err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return ErrAlreadySubmitted
	}
	for _, f := range p.fields() {
		if err := w.checkOwnerLocked(f); err != nil {
			return err
		}
	}

	if p.FullName != nil {
		w.rec.FullName = *p.FullName
	}
	if p.CompanyName != nil {
		w.rec.CompanyName = *p.CompanyName
	}
	if p.Role != nil {
		w.rec.Role = *p.Role
	}
	if p.Industry != nil {
		w.rec.Industry = *p.Industry
	}
	if p.TargetAudience != nil {
		w.rec.TargetAudience = *p.TargetAudience
	}
	if p.ContentTone != nil {
		w.rec.ContentTone = tone
	}
	if p.ContentFrequency != nil {
		w.rec.ContentFrequency = freq
	}
	return nil
}

// ToggleItem flips item in the goals or topics multi-select and returns the
// new selection.
func (w *Wizard) ToggleItem(field Field, item string) ([]string, error) {
	var catalog []string
	switch field {
	case FieldContentGoals:
		catalog = Goals
	case FieldTopicsOfInterest:
		catalog = Topics
	default:
		return nil, fmt.Errorf("%w: %q is not a multi-select", ErrUnknownField, field)
	}
	if !slices.Contains(catalog, item) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOption, item)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return nil, ErrAlreadySubmitted
	}
	if err := w.checkOwnerLocked(field); err != nil {
		return nil, err
	}
	if field == FieldContentGoals {
		w.rec.ContentGoals = Toggle(w.rec.ContentGoals, item)
		return slices.Clone(w.rec.ContentGoals), nil
	}
	w.rec.TopicsOfInterest = Toggle(w.rec.TopicsOfInterest, item)
	return slices.Clone(w.rec.TopicsOfInterest), nil
}

func (w *Wizard) checkOwnerLocked(f Field) error {
	owner, ok := OwnerOf(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if owner != w.step {
		return fmt.Errorf("%w: %s is edited on %s", ErrFieldNotEditable, f, owner)
	}
	return nil
}

// Submit hands the record to p exactly once, from the last step. A
// persistence failure is logged and the wizard still completes.
func (w *Wizard) Submit(ctx context.Context, p Persister) (SubmitResult, error) {
	w.mu.Lock()
	if w.submitted {
		w.mu.Unlock()
		return SubmitResult{}, ErrAlreadySubmitted
	}
	if w.step != Step4 {
		w.mu.Unlock()
		return SubmitResult{}, ErrNotFinalStep
	}
	w.submitted = true
	rec := w.rec.clone()
	w.mu.Unlock()

	res := SubmitResult{Redirect: DashboardPath}
	if p == nil {
		w.log.Warn("No onboarding persister configured, skipping save")
		return res, nil
	}
	if err := p.SaveOnboarding(ctx, rec); err != nil {
		w.log.Warn("Onboarding save failed, continuing", "error", err)
		return res, nil
	}
	res.Persisted = true
	return res, nil
}
