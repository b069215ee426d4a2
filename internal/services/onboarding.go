package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/onboarding"
	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

var ErrNoOnboardingSession = errors.New("no onboarding session; start one first")

type OnboardingStatus struct {
	Completed bool `json:"completed"`
	// Checked is false when the lookup failed and the caller was let through.
	Checked bool `json:"checked"`
}

type OnboardingService interface {
	Status(ctx context.Context, userID uuid.UUID) OnboardingStatus
	Start(ctx context.Context, userID uuid.UUID) onboarding.Snapshot
	Get(ctx context.Context, userID uuid.UUID) (onboarding.Snapshot, error)
	Apply(ctx context.Context, userID uuid.UUID, p onboarding.Patch) (onboarding.Snapshot, error)
	Toggle(ctx context.Context, userID uuid.UUID, field onboarding.Field, item string) (onboarding.Snapshot, error)
	Next(ctx context.Context, userID uuid.UUID) (onboarding.Snapshot, error)
	Back(ctx context.Context, userID uuid.UUID) (onboarding.Snapshot, error)
	Submit(ctx context.Context, userID uuid.UUID) (onboarding.SubmitResult, error)
}

// onboardingService keeps one in-memory wizard per user. Sessions are not
// persisted; a restart drops unfinished wizards.
type onboardingService struct {
	log      *logger.Logger
	profiles ProfileService
	avatars  AvatarService
	emit     SSEEmitter

	mu       sync.Mutex
	sessions map[uuid.UUID]*onboarding.Wizard
}

func NewOnboardingService(log *logger.Logger, profiles ProfileService, avatars AvatarService, emit SSEEmitter) OnboardingService {
	return &onboardingService{
		log:      log.With("service", "OnboardingService"),
		profiles: profiles,
		avatars:  avatars,
		emit:     emitterOrNop(emit),
		sessions: make(map[uuid.UUID]*onboarding.Wizard),
	}
}

// Status lets the user through when the lookup fails.
func (s *onboardingService) Status(ctx context.Context, userID uuid.UUID) OnboardingStatus {
	done, err := s.profiles.OnboardingCompleted(ctx, userID)
	if err != nil {
		s.log.Warn("Onboarding check failed, skipping", "user_id", userID, "error", err)
		return OnboardingStatus{Completed: true, Checked: false}
	}
	return OnboardingStatus{Completed: done, Checked: true}
}

func (s *onboardingService) Start(_ context.Context, userID uuid.UUID) onboarding.Snapshot {
	w := onboarding.NewWizard(s.log.With("user_id", userID))
	s.mu.Lock()
	s.sessions[userID] = w
	s.mu.Unlock()
	return w.Snapshot()
}

func (s *onboardingService) wizard(userID uuid.UUID) (*onboarding.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.sessions[userID]
	if !ok {
		return nil, apierr.NotFound("onboarding_not_started", ErrNoOnboardingSession)
	}
	return w, nil
}

func (s *onboardingService) Get(_ context.Context, userID uuid.UUID) (onboarding.Snapshot, error) {
	w, err := s.wizard(userID)
	if err != nil {
		return onboarding.Snapshot{}, err
	}
	return w.Snapshot(), nil
}

func (s *onboardingService) Apply(_ context.Context, userID uuid.UUID, p onboarding.Patch) (onboarding.Snapshot, error) {
	w, err := s.wizard(userID)
	if err != nil {
		return onboarding.Snapshot{}, err
	}
	if err := w.Apply(p); err != nil {
		return onboarding.Snapshot{}, wizardError(err)
	}
	return w.Snapshot(), nil
}

func (s *onboardingService) Toggle(_ context.Context, userID uuid.UUID, field onboarding.Field, item string) (onboarding.Snapshot, error) {
	w, err := s.wizard(userID)
	if err != nil {
		return onboarding.Snapshot{}, err
	}
	if _, err := w.ToggleItem(field, item); err != nil {
		return onboarding.Snapshot{}, wizardError(err)
	}
	return w.Snapshot(), nil
}

func (s *onboardingService) Next(ctx context.Context, userID uuid.UUID) (onboarding.Snapshot, error) {
	return s.move(ctx, userID, (*onboarding.Wizard).Next)
}

func (s *onboardingService) Back(ctx context.Context, userID uuid.UUID) (onboarding.Snapshot, error) {
	return s.move(ctx, userID, (*onboarding.Wizard).Back)
}

func (s *onboardingService) move(ctx context.Context, userID uuid.UUID, fn func(*onboarding.Wizard) (onboarding.Step, error)) (onboarding.Snapshot, error) {
	w, err := s.wizard(userID)
	if err != nil {
		return onboarding.Snapshot{}, err
	}
	before := w.Step()
	step, err := fn(w)
	if err != nil {
		return onboarding.Snapshot{}, wizardError(err)
	}
	if step != before {
		emitToUser(ctx, s.emit, userID, realtime.SSEEventOnboardingStepChanged, map[string]any{"step": step})
	}
	return w.Snapshot(), nil
}

func (s *onboardingService) Submit(ctx context.Context, userID uuid.UUID) (onboarding.SubmitResult, error) {
	w, err := s.wizard(userID)
	if err != nil {
		return onboarding.SubmitResult{}, err
	}
	persister := onboarding.PersisterFunc(func(ctx context.Context, rec onboarding.Record) error {
		if err := s.profiles.SaveOnboarding(ctx, userID, rec); err != nil {
			return err
		}
		if s.avatars != nil {
			if err := s.avatars.EnsureInitialsAvatar(ctx, userID, rec.FullName); err != nil {
				s.log.Warn("Initials avatar failed (ignored)", "user_id", userID, "error", err)
			}
		}
		return nil
	})
	res, err := w.Submit(ctx, persister)
	if err != nil {
		return onboarding.SubmitResult{}, wizardError(err)
	}
	emitToUser(ctx, s.emit, userID, realtime.SSEEventOnboardingCompleted, res)
	return res, nil
}

func wizardError(err error) error {
	switch {
	case errors.Is(err, onboarding.ErrStepInvalid):
		return apierr.Conflict("step_invalid", err)
	case errors.Is(err, onboarding.ErrNotFinalStep):
		return apierr.Conflict("not_final_step", err)
	case errors.Is(err, onboarding.ErrAlreadySubmitted):
		return apierr.Conflict("already_submitted", err)
	case errors.Is(err, onboarding.ErrFieldNotEditable):
		return apierr.New(http.StatusUnprocessableEntity, "field_not_editable", err)
	case errors.Is(err, onboarding.ErrUnknownField), errors.Is(err, onboarding.ErrInvalidOption):
		return apierr.BadRequest("invalid_field", err)
	default:
		return fmt.Errorf("onboarding: %w", err)
	}
}
