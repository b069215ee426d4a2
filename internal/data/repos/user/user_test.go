package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.New(context.Background())
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{Email: "userrepo@example.com", Password: "hash"}
	if _, err := repo.Create(dbc, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatalf("Create did not assign an id")
	}

	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(dbc, []string{u.Email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if ok, err := repo.EmailExists(dbc, u.Email); err != nil || !ok {
		t.Fatalf("EmailExists: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.EmailExists(dbc, "nobody@example.com"); err != nil || ok {
		t.Fatalf("EmailExists(missing): ok=%v err=%v", ok, err)
	}
	if _, err := repo.Create(dbc, []*types.User{{Email: u.Email, Password: "x"}}); err == nil {
		t.Fatalf("duplicate email accepted")
	}
}

func TestUserProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewUserProfileRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, db, "profile@example.com")

	if row, err := repo.GetByUserID(dbc, u.ID); err != nil || row != nil {
		t.Fatalf("GetByUserID before insert: row=%v err=%v", row, err)
	}

	if err := repo.UpsertOnboarding(dbc, &types.UserProfile{UserID: u.ID, FullName: "Ada", Role: "CTO"}); err != nil {
		t.Fatalf("UpsertOnboarding: %v", err)
	}
	if err := repo.UpdateAvatarFields(dbc, u.ID, "avatars/a.png", "https://cdn/a.png"); err != nil {
		t.Fatalf("UpdateAvatarFields: %v", err)
	}
	// A second onboarding upsert updates answers without touching the avatar.
	if err := repo.UpsertOnboarding(dbc, &types.UserProfile{UserID: u.ID, FullName: "Ada Lovelace", Industry: "Computing"}); err != nil {
		t.Fatalf("UpsertOnboarding again: %v", err)
	}

	row, err := repo.GetByUserID(dbc, u.ID)
	if err != nil || row == nil {
		t.Fatalf("GetByUserID: row=%v err=%v", row, err)
	}
	if row.FullName != "Ada Lovelace" || row.Industry != "Computing" || row.Role != "" || !row.OnboardingCompleted {
		t.Fatalf("profile=%+v", row)
	}
	if row.AvatarURL != "https://cdn/a.png" {
		t.Fatalf("avatar lost: %+v", row)
	}

	var count int64
	db.Model(&types.UserProfile{}).Where("user_id = ?", u.ID).Count(&count)
	if count != 1 {
		t.Fatalf("rows=%d, want 1", count)
	}
}

func TestUserProfileRepoUpdateFieldsCreatesRow(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewUserProfileRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, db, "fresh@example.com")

	if err := repo.UpdateFields(dbctx.New(ctx), u.ID, map[string]any{"company_name": "Acme"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	row, err := repo.GetByUserID(dbctx.New(ctx), u.ID)
	if err != nil || row == nil || row.CompanyName != "Acme" || row.OnboardingCompleted {
		t.Fatalf("row=%+v err=%v", row, err)
	}
}

func TestOnboardingResponseRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewOnboardingResponseRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, db, "responses@example.com")

	first := &types.OnboardingResponse{
		UserID:           u.ID,
		ContentGoals:     []string{"Blog Articles"},
		TargetAudience:   "engineers",
		ContentTone:      "casual",
		TopicsOfInterest: []string{"Technology", "Science"},
		ContentFrequency: "daily",
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second := &types.OnboardingResponse{
		UserID:           u.ID,
		TargetAudience:   "founders",
		ContentTone:      "creative",
		TopicsOfInterest: []string{"Finance"},
		ContentFrequency: "monthly",
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	row, err := repo.GetByUserID(dbc, u.ID)
	if err != nil || row == nil {
		t.Fatalf("GetByUserID: row=%v err=%v", row, err)
	}
	if row.TargetAudience != "founders" || row.ContentTone != "creative" || row.ContentFrequency != "monthly" {
		t.Fatalf("row=%+v", row)
	}
	if len(row.ContentGoals) != 0 || len(row.TopicsOfInterest) != 1 || row.TopicsOfInterest[0] != "Finance" {
		t.Fatalf("lists=%v %v", row.ContentGoals, row.TopicsOfInterest)
	}

	if missing, err := repo.GetByUserID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByUserID(missing): row=%v err=%v", missing, err)
	}
}
