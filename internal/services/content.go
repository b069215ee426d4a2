package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/brandcraft-backend/internal/data/repos"
	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/domain/content"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/httpx"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/platform/openai"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

const (
	contentSystemPrompt = "You are a professional content creator specializing in personal branding. Always respond with valid JSON only, no additional text."
	contentTemperature  = 0.8
)

const contentPromptTemplate = `The user has provided the following topics of interest during onboarding: %s

Step 1: Generate ONE concise subtopic derived from these topics (do not create unrelated topics).

Step 2: Using that subtopic, generate platform-specific content for:

1. Instagram – carousel-style text (3–5 slides, short, punchy, educational, slightly emotional to increase engagement)
2. X (Twitter) – concise, scroll-stopping tweet with curiosity or value hook
3. LinkedIn – slightly longer, professional, value-driven post (paragraph form)

Step 3: For each platform, include a short CTA for the user to take action (optional but encouraged).

Do NOT include hashtags or emojis unless they clarify. Keep the tone professional, relatable, and consistent with personal branding.

Output only valid JSON in the exact format:

{
  "main_topic": "<one of the user's provided topics>",
  "generated_topic": "<concise subtopic related to main_topic>",
  "platforms": {
    "instagram": {
      "post_type": "instagram_carousel",
      "content": ["Slide 1: ...","Slide 2: ...","Slide 3: ..."],
      "cta": "..."
    },
    "x": {
      "post_type": "x_tweet",
      "content": "...",
      "cta": "..."
    },
    "linkedin": {
      "post_type": "linkedin_post",
      "content": "...",
      "cta": "..."
    }
  }
}`

func buildContentPrompt(topics []string) string {
	return fmt.Sprintf(contentPromptTemplate, strings.Join(topics, ", "))
}

type TextDraft struct {
	content.TextPost
	content.TextStats
}

type GenerationView struct {
	ID             uuid.UUID            `json:"id"`
	MainTopic      string               `json:"main_topic"`
	GeneratedTopic string               `json:"generated_topic"`
	Model          string               `json:"model"`
	CreatedAt      time.Time            `json:"created_at"`
	Instagram      content.CarouselPost `json:"instagram"`
	X              TextDraft            `json:"x"`
	LinkedIn       TextDraft            `json:"linkedin"`
}

type ContentService interface {
	Generate(ctx context.Context, userID uuid.UUID) (*GenerationView, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*GenerationView, error)
	Get(ctx context.Context, userID, generationID uuid.UUID) (*GenerationView, error)
	// Load returns the stored document behind a generation.
	Load(ctx context.Context, userID, generationID uuid.UUID) (*content.GeneratedContent, error)
}

type contentService struct {
	log          *logger.Logger
	llm          openai.Client
	genRepo      repos.GenerationRepo
	responseRepo repos.OnboardingResponseRepo
	emit         SSEEmitter
	metrics      *observability.Metrics
}

// NewContentService accepts a nil llm; Generate then reports the service as
// unavailable while stored drafts stay readable.
func NewContentService(
	log *logger.Logger,
	llm openai.Client,
	genRepo repos.GenerationRepo,
	responseRepo repos.OnboardingResponseRepo,
	emit SSEEmitter,
	metrics *observability.Metrics,
) ContentService {
	return &contentService{
		log:          log.With("service", "ContentService"),
		llm:          llm,
		genRepo:      genRepo,
		responseRepo: responseRepo,
		emit:         emitterOrNop(emit),
		metrics:      metrics,
	}
}

func (cs *contentService) Generate(ctx context.Context, userID uuid.UUID) (*GenerationView, error) {
	if cs.llm == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "llm_unavailable",
			fmt.Errorf("%w: content generation is not configured", openai.ErrMissingAPIKey))
	}
	prefs, err := cs.responseRepo.GetByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if prefs == nil || len(prefs.TopicsOfInterest) == 0 {
		return nil, apierr.BadRequest("no_topics", errors.New("no topics of interest; complete onboarding first"))
	}

	start := time.Now()
	raw, err := cs.llm.ChatJSON(ctx, contentSystemPrompt, buildContentPrompt(prefs.TopicsOfInterest), contentTemperature)
	cs.metrics.ObserveLLMRequest(cs.llm.Model(), llmStatus(err), time.Since(start))
	if err != nil {
		cs.log.Warn("Content generation failed", "user_id", userID, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "generation_failed", err)
	}

	var doc content.GeneratedContent
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "generation_invalid", fmt.Errorf("decode model output: %w", err))
	}
	if err := doc.Validate(); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "generation_invalid", err)
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode generated content: %w", err)
	}

	row := &types.Generation{
		UserID:         userID,
		MainTopic:      doc.MainTopic,
		GeneratedTopic: doc.GeneratedTopic,
		Model:          cs.llm.Model(),
		Content:        datatypes.JSON(normalized),
	}
	if _, err := cs.genRepo.Create(dbctx.New(ctx), []*types.Generation{row}); err != nil {
		return nil, fmt.Errorf("save generation: %w", err)
	}
	view := newGenerationView(row, doc)
	emitToUser(ctx, cs.emit, userID, realtime.SSEEventGenerationCreated, map[string]any{
		"id":              view.ID,
		"generated_topic": view.GeneratedTopic,
	})
	return view, nil
}

func llmStatus(err error) string {
	if err == nil {
		return "ok"
	}
	if code := httpx.HTTPStatusCode(err); code > 0 {
		return strconv.Itoa(code)
	}
	return "error"
}

func (cs *contentService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*GenerationView, error) {
	rows, err := cs.genRepo.ListByUser(dbctx.New(ctx), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	out := make([]*GenerationView, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeGeneration(row)
		if err != nil {
			cs.log.Warn("Skipping unreadable generation", "generation_id", row.ID, "error", err)
			continue
		}
		out = append(out, newGenerationView(row, doc))
	}
	return out, nil
}

func (cs *contentService) Get(ctx context.Context, userID, generationID uuid.UUID) (*GenerationView, error) {
	row, doc, err := cs.load(ctx, userID, generationID)
	if err != nil {
		return nil, err
	}
	return newGenerationView(row, doc), nil
}

func (cs *contentService) Load(ctx context.Context, userID, generationID uuid.UUID) (*content.GeneratedContent, error) {
	_, doc, err := cs.load(ctx, userID, generationID)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (cs *contentService) load(ctx context.Context, userID, generationID uuid.UUID) (*types.Generation, content.GeneratedContent, error) {
	row, err := cs.genRepo.GetForUser(dbctx.New(ctx), userID, generationID)
	if err != nil {
		return nil, content.GeneratedContent{}, fmt.Errorf("get generation: %w", err)
	}
	if row == nil {
		return nil, content.GeneratedContent{}, apierr.NotFound("generation_not_found", errors.New("generation not found"))
	}
	doc, err := decodeGeneration(row)
	if err != nil {
		return nil, content.GeneratedContent{}, err
	}
	return row, doc, nil
}

func decodeGeneration(row *types.Generation) (content.GeneratedContent, error) {
	var doc content.GeneratedContent
	if err := json.Unmarshal(row.Content, &doc); err != nil {
		return doc, fmt.Errorf("decode generation %s: %w", row.ID, err)
	}
	return doc, nil
}

func newGenerationView(row *types.Generation, doc content.GeneratedContent) *GenerationView {
	return &GenerationView{
		ID:             row.ID,
		MainTopic:      doc.MainTopic,
		GeneratedTopic: doc.GeneratedTopic,
		Model:          row.Model,
		CreatedAt:      row.CreatedAt,
		Instagram:      doc.Platforms.Instagram,
		X:              TextDraft{TextPost: doc.Platforms.X, TextStats: content.StatsFor(doc.Platforms.X.Content, content.XMaxCharacters)},
		LinkedIn:       TextDraft{TextPost: doc.Platforms.LinkedIn, TextStats: content.StatsFor(doc.Platforms.LinkedIn.Content, content.LinkedInMaxCharacters)},
	}
}
