package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/brandcraft-backend/internal/data/repos"
	"github.com/yungbote/brandcraft-backend/internal/data/repos/testutil"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}

func (e *recordingEmitter) events() []realtime.SSEEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]realtime.SSEEvent, 0, len(e.msgs))
	for _, m := range e.msgs {
		out = append(out, m.Event)
	}
	return out
}

func (e *recordingEmitter) toasts() []Toast {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Toast
	for _, m := range e.msgs {
		if t, ok := m.Data.(Toast); ok {
			out = append(out, t)
		}
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	profiles  repos.UserProfileRepo
	responses repos.OnboardingResponseRepo
	gens      repos.GenerationRepo
	emit      *recordingEmitter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:        db,
		log:       log,
		users:     repos.NewUserRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		profiles:  repos.NewUserProfileRepo(db, log),
		responses: repos.NewOnboardingResponseRepo(db, log),
		gens:      repos.NewGenerationRepo(db, log),
		emit:      &recordingEmitter{},
	}
}

func (e *testEnv) profileService() ProfileService {
	return NewProfileService(e.db, e.log, e.users, e.profiles, e.responses, e.emit)
}

func newTestEnvLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return testutil.Logger(t)
}

func ctxDBC(ctx context.Context) dbctx.Context { return dbctx.New(ctx) }
