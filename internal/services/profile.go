package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/brandcraft-backend/internal/data/repos"
	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/onboarding"
	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

type ProfileInfo struct {
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
	Industry    string `json:"industry"`
	AvatarURL   string `json:"avatar_url"`
}

type Preferences struct {
	ContentGoals     []string `json:"content_goals"`
	TargetAudience   string   `json:"target_audience"`
	ContentTone      string   `json:"content_tone"`
	TopicsOfInterest []string `json:"topics_of_interest"`
	ContentFrequency string   `json:"content_frequency"`
}

type ProfileView struct {
	UserID              uuid.UUID   `json:"user_id"`
	Email               string      `json:"email"`
	OnboardingCompleted bool        `json:"onboarding_completed"`
	Profile             ProfileInfo `json:"profile"`
	Preferences         Preferences `json:"preferences"`
}

type ProfileUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Industry    *string `json:"industry,omitempty"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*ProfileView, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs Preferences) (*ProfileView, error)
	// SaveOnboarding writes a submitted wizard record to both tables in one
	// transaction.
	SaveOnboarding(ctx context.Context, userID uuid.UUID, rec onboarding.Record) error
	// OnboardingCompleted reports whether the user finished the wizard.
	OnboardingCompleted(ctx context.Context, userID uuid.UUID) (bool, error)
}

type profileService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	profileRepo  repos.UserProfileRepo
	responseRepo repos.OnboardingResponseRepo
	emit         SSEEmitter
}

func NewProfileService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	profileRepo repos.UserProfileRepo,
	responseRepo repos.OnboardingResponseRepo,
	emit SSEEmitter,
) ProfileService {
	return &profileService{
		db:           db,
		log:          log.With("service", "ProfileService"),
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		responseRepo: responseRepo,
		emit:         emitterOrNop(emit),
	}
}

// defaultPreferences mirrors what the profile page shows for a user who
// never answered the wizard.
func defaultPreferences() Preferences {
	return Preferences{
		ContentGoals:     []string{},
		ContentTone:      string(onboarding.ToneProfessional),
		TopicsOfInterest: []string{},
		ContentFrequency: string(onboarding.FrequencyWeekly),
	}
}

func (ps *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	dbc := dbctx.New(ctx)
	users, err := ps.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found"))
	}
	view := &ProfileView{UserID: userID, Email: users[0].Email, Preferences: defaultPreferences()}

	profile, err := ps.profileRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile != nil {
		view.OnboardingCompleted = profile.OnboardingCompleted
		view.Profile = ProfileInfo{
			FullName:    profile.FullName,
			CompanyName: profile.CompanyName,
			Role:        profile.Role,
			Industry:    profile.Industry,
			AvatarURL:   profile.AvatarURL,
		}
	}

	resp, err := ps.responseRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if resp != nil {
		view.Preferences = preferencesFromRow(resp)
	}
	return view, nil
}

func preferencesFromRow(row *types.OnboardingResponse) Preferences {
	p := defaultPreferences()
	if len(row.ContentGoals) > 0 {
		p.ContentGoals = slices.Clone([]string(row.ContentGoals))
	}
	if len(row.TopicsOfInterest) > 0 {
		p.TopicsOfInterest = slices.Clone([]string(row.TopicsOfInterest))
	}
	p.TargetAudience = row.TargetAudience
	if row.ContentTone != "" {
		p.ContentTone = row.ContentTone
	}
	if row.ContentFrequency != "" {
		p.ContentFrequency = row.ContentFrequency
	}
	return p
}

func (ps *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*ProfileView, error) {
	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("full_name", upd.FullName)
	set("company_name", upd.CompanyName)
	set("role", upd.Role)
	set("industry", upd.Industry)
	if len(updates) == 0 {
		return ps.GetProfile(ctx, userID)
	}
	if err := ps.profileRepo.UpdateFields(dbctx.New(ctx), userID, updates); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	view, err := ps.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	emitToUser(ctx, ps.emit, userID, realtime.SSEEventProfileUpdated, view.Profile)
	return view, nil
}

func (ps *profileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs Preferences) (*ProfileView, error) {
	row, err := preferencesRow(userID, prefs)
	if err != nil {
		return nil, apierr.BadRequest("invalid_preferences", err)
	}
	if err := ps.responseRepo.Upsert(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	view, err := ps.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	emitToUser(ctx, ps.emit, userID, realtime.SSEEventProfileUpdated, view.Preferences)
	return view, nil
}

// preferencesRow validates prefs against the same catalogs the wizard uses.
func preferencesRow(userID uuid.UUID, prefs Preferences) (*types.OnboardingResponse, error) {
	tone, err := onboarding.ParseTone(prefs.ContentTone)
	if err != nil {
		return nil, err
	}
	freq, err := onboarding.ParseFrequency(prefs.ContentFrequency)
	if err != nil {
		return nil, err
	}
	goals, err := catalogSubset(prefs.ContentGoals, onboarding.Goals)
	if err != nil {
		return nil, err
	}
	topics, err := catalogSubset(prefs.TopicsOfInterest, onboarding.Topics)
	if err != nil {
		return nil, err
	}
	return &types.OnboardingResponse{
		UserID:           userID,
		ContentGoals:     datatypes.JSONSlice[string](goals),
		TargetAudience:   strings.TrimSpace(prefs.TargetAudience),
		ContentTone:      string(tone),
		TopicsOfInterest: datatypes.JSONSlice[string](topics),
		ContentFrequency: string(freq),
	}, nil
}

// catalogSubset drops duplicates, keeps order and rejects unknown items.
func catalogSubset(items, catalog []string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(catalog, it) {
			return nil, fmt.Errorf("%w: %q", onboarding.ErrInvalidOption, it)
		}
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (ps *profileService) SaveOnboarding(ctx context.Context, userID uuid.UUID, rec onboarding.Record) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := ps.profileRepo.UpsertOnboarding(dbc, &types.UserProfile{
			UserID:      userID,
			FullName:    strings.TrimSpace(rec.FullName),
			CompanyName: strings.TrimSpace(rec.CompanyName),
			Role:        strings.TrimSpace(rec.Role),
			Industry:    strings.TrimSpace(rec.Industry),
		}); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if err := ps.responseRepo.Upsert(dbc, &types.OnboardingResponse{
			UserID:           userID,
			ContentGoals:     datatypes.JSONSlice[string](slices.Clone(rec.ContentGoals)),
			TargetAudience:   strings.TrimSpace(rec.TargetAudience),
			ContentTone:      string(rec.ContentTone),
			TopicsOfInterest: datatypes.JSONSlice[string](slices.Clone(rec.TopicsOfInterest)),
			ContentFrequency: string(rec.ContentFrequency),
		}); err != nil {
			return fmt.Errorf("save onboarding responses: %w", err)
		}
		return nil
	})
}

func (ps *profileService) OnboardingCompleted(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := ps.profileRepo.GetByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.OnboardingCompleted, nil
}
