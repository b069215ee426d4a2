package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/data/repos/testutil"
	"github.com/yungbote/brandcraft-backend/internal/onboarding"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

func strPtr(s string) *string { return &s }

func TestOnboardingServiceFullFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, env.db, "flow@example.com")
	profiles := env.profileService()
	svc := NewOnboardingService(env.log, profiles, nil, env.emit)

	if _, err := svc.Get(ctx, u.ID); err == nil {
		t.Fatalf("Get before Start should fail")
	}
	if st := svc.Status(ctx, u.ID); st.Completed || !st.Checked {
		t.Fatalf("status before onboarding=%+v", st)
	}

	snap := svc.Start(ctx, u.ID)
	if snap.Step != onboarding.Step1 || snap.StepValid {
		t.Fatalf("start snapshot=%+v", snap)
	}

	_, err := svc.Next(ctx, u.ID)
	wantStatus(t, err, http.StatusConflict, "step_invalid")

	_, err = svc.Apply(ctx, u.ID, onboarding.Patch{TargetAudience: strPtr("engineers")})
	wantStatus(t, err, http.StatusUnprocessableEntity, "field_not_editable")

	steps := []func() error{
		func() error {
			_, err := svc.Apply(ctx, u.ID, onboarding.Patch{FullName: strPtr("Jane Doe"), CompanyName: strPtr("Acme")})
			return err
		},
		func() error { _, err := svc.Next(ctx, u.ID); return err },
		func() error {
			_, err := svc.Toggle(ctx, u.ID, onboarding.FieldContentGoals, "Educational Content")
			return err
		},
		func() error { _, err := svc.Next(ctx, u.ID); return err },
		func() error {
			_, err := svc.Apply(ctx, u.ID, onboarding.Patch{TargetAudience: strPtr("engineers"), ContentTone: strPtr("casual")})
			return err
		},
		func() error {
			_, err := svc.Toggle(ctx, u.ID, onboarding.FieldTopicsOfInterest, "Technology")
			return err
		},
		func() error { _, err := svc.Next(ctx, u.ID); return err },
		func() error {
			_, err := svc.Apply(ctx, u.ID, onboarding.Patch{ContentFrequency: strPtr("daily")})
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	res, err := svc.Submit(ctx, u.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Redirect != onboarding.DashboardPath || !res.Persisted {
		t.Fatalf("submit result=%+v", res)
	}
	_, err = svc.Submit(ctx, u.ID)
	wantStatus(t, err, http.StatusConflict, "already_submitted")

	prof, err := env.profiles.GetByUserID(dbctx.New(ctx), u.ID)
	if err != nil || prof == nil {
		t.Fatalf("profile: %v %v", prof, err)
	}
	if prof.FullName != "Jane Doe" || prof.CompanyName != "Acme" || !prof.OnboardingCompleted {
		t.Fatalf("profile=%+v", prof)
	}
	resp, err := env.responses.GetByUserID(dbctx.New(ctx), u.ID)
	if err != nil || resp == nil {
		t.Fatalf("responses: %v %v", resp, err)
	}
	if resp.ContentTone != "casual" || resp.ContentFrequency != "daily" || resp.TargetAudience != "engineers" {
		t.Fatalf("responses=%+v", resp)
	}
	if len(resp.TopicsOfInterest) != 1 || resp.TopicsOfInterest[0] != "Technology" {
		t.Fatalf("topics=%v", resp.TopicsOfInterest)
	}
	if st := svc.Status(ctx, u.ID); !st.Completed {
		t.Fatalf("status after submit=%+v", st)
	}

	var stepEvents, completed int
	for _, ev := range env.emit.events() {
		switch ev {
		case realtime.SSEEventOnboardingStepChanged:
			stepEvents++
		case realtime.SSEEventOnboardingCompleted:
			completed++
		}
	}
	if stepEvents != 3 || completed != 1 {
		t.Fatalf("step events=%d completed=%d", stepEvents, completed)
	}
}

type failingProfiles struct {
	ProfileService
	saveErr   error
	statusErr error
}

func (f failingProfiles) SaveOnboarding(context.Context, uuid.UUID, onboarding.Record) error {
	return f.saveErr
}

func (f failingProfiles) OnboardingCompleted(context.Context, uuid.UUID) (bool, error) {
	return false, f.statusErr
}

func driveToFinalStep(t *testing.T, svc OnboardingService, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	svc.Start(ctx, userID)
	mustOK := func(_ onboarding.Snapshot, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("drive: %v", err)
		}
	}
	mustOK(svc.Apply(ctx, userID, onboarding.Patch{FullName: strPtr("Jane")}))
	mustOK(svc.Next(ctx, userID))
	mustOK(svc.Toggle(ctx, userID, onboarding.FieldContentGoals, "Blog Articles"))
	mustOK(svc.Next(ctx, userID))
	mustOK(svc.Apply(ctx, userID, onboarding.Patch{TargetAudience: strPtr("founders")}))
	mustOK(svc.Toggle(ctx, userID, onboarding.FieldTopicsOfInterest, "Marketing"))
	mustOK(svc.Next(ctx, userID))
}

func TestOnboardingSubmitPersistFailureStillRedirects(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOnboardingService(env.log, failingProfiles{saveErr: errors.New("db down")}, nil, env.emit)
	userID := uuid.New()
	driveToFinalStep(t, svc, userID)

	res, err := svc.Submit(context.Background(), userID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Redirect != onboarding.DashboardPath || res.Persisted {
		t.Fatalf("result=%+v", res)
	}
}

func TestOnboardingStatusLetsThroughOnError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOnboardingService(env.log, failingProfiles{statusErr: errors.New("db down")}, nil, nil)
	st := svc.Status(context.Background(), uuid.New())
	if !st.Completed || st.Checked {
		t.Fatalf("status=%+v, want let-through", st)
	}
}

func TestOnboardingToggleRejectsUnknownOption(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOnboardingService(env.log, env.profileService(), nil, nil)
	userID := uuid.New()
	ctx := context.Background()
	svc.Start(ctx, userID)
	_, err := svc.Toggle(ctx, userID, onboarding.FieldContentGoals, "Astrology")
	wantStatus(t, err, http.StatusBadRequest, "invalid_field")
}
