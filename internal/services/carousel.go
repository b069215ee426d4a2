package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/carousel"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

const (
	ExportKindSingle  = "single"
	ExportKindArchive = "archive"
)

type CarouselState struct {
	GenerationID uuid.UUID `json:"generation_id"`
	Topic        string    `json:"topic"`
	Slides       []string  `json:"slides"`
	Current      int       `json:"current"`
	Total        int       `json:"total"`
	Archiving    bool      `json:"archiving"`
}

type CarouselService interface {
	State(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error)
	Next(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error)
	Previous(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error)
	// JumpTo ignores out-of-range indexes, like the exporter does.
	JumpTo(ctx context.Context, userID, generationID uuid.UUID, index int) (*CarouselState, error)
	// DownloadSlide delivers slide index (0-based) through saver.
	DownloadSlide(ctx context.Context, userID, generationID uuid.UUID, index int, saver carousel.Saver) (carousel.Outcome, error)
	DownloadAll(ctx context.Context, userID, generationID uuid.UUID, saver carousel.Saver) (carousel.Outcome, error)
}

const (
	DefaultCarouselIdleTTL   = 30 * time.Minute
	DefaultCarouselMaxActive = 1024

	carouselSweepInterval = time.Minute
)

type CarouselServiceOptions struct {
	Rasterizer carousel.Rasterizer
	Nav        NavStore
	SlideDelay time.Duration
	Metrics    *observability.Metrics
	// IdleTTL drops exporters unused for this long. MaxActive caps how many
	// are kept; the least recently used go first. An exporter that is
	// building an archive is never dropped.
	IdleTTL   time.Duration
	MaxActive int
}

type carouselKey struct {
	userID       uuid.UUID
	generationID uuid.UUID
}

func (k carouselKey) String() string {
	return k.userID.String() + ":" + k.generationID.String()
}

type exporterEntry struct {
	exp      *carousel.Exporter
	lastUsed time.Time
}

// carouselService keeps one exporter per (user, generation) so the in-flight
// archive flag and the current slide survive between requests. Idle exporters
// are dropped; the NavStore reopens a rebuilt one at the saved slide.
type carouselService struct {
	log       *logger.Logger
	contents  ContentService
	emit      SSEEmitter
	raster    carousel.Rasterizer
	nav       NavStore
	delay     time.Duration
	metrics   *observability.Metrics
	idleTTL   time.Duration
	maxActive int
	now       func() time.Time

	mu        sync.Mutex
	exporters map[carouselKey]*exporterEntry
	lastSweep time.Time
}

func NewCarouselService(log *logger.Logger, contents ContentService, emit SSEEmitter, opts CarouselServiceOptions) CarouselService {
	nav := opts.Nav
	if nav == nil {
		nav = NewMemoryNavStore()
	}
	idleTTL := opts.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultCarouselIdleTTL
	}
	maxActive := opts.MaxActive
	if maxActive <= 0 {
		maxActive = DefaultCarouselMaxActive
	}
	return &carouselService{
		log:       log.With("service", "CarouselService"),
		contents:  contents,
		emit:      emitterOrNop(emit),
		raster:    opts.Rasterizer,
		nav:       nav,
		delay:     opts.SlideDelay,
		metrics:   opts.Metrics,
		idleTTL:   idleTTL,
		maxActive: maxActive,
		now:       time.Now,
		exporters: make(map[carouselKey]*exporterEntry),
	}
}

func (s *carouselService) exporter(ctx context.Context, userID, generationID uuid.UUID) (*carousel.Exporter, error) {
	key := carouselKey{userID: userID, generationID: generationID}
	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	if ent, ok := s.exporters[key]; ok {
		ent.lastUsed = now
		s.mu.Unlock()
		return ent.exp, nil
	}
	s.mu.Unlock()

	doc, err := s.contents.Load(ctx, userID, generationID)
	if err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(doc.GeneratedTopic)
	if topic == "" {
		topic = strings.TrimSpace(doc.MainTopic)
	}
	e, err := carousel.NewExporter(carousel.Options{
		Topic:      topic,
		Slides:     doc.Platforms.Instagram.Content,
		Rasterizer: s.raster,
		Notifier:   NewUserToastNotifier(s.emit, userID, s.metrics),
		Log:        s.log.With("user_id", userID, "generation_id", generationID),
		SlideDelay: s.delay,
	})
	if err != nil {
		return nil, err
	}
	if idx, ok, err := s.nav.Load(ctx, key.String()); err != nil {
		s.log.Warn("Nav state load failed", "key", key.String(), "error", err)
	} else if ok {
		e.JumpTo(idx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now = s.now()
	if existing, ok := s.exporters[key]; ok {
		existing.lastUsed = now
		return existing.exp, nil
	}
	s.exporters[key] = &exporterEntry{exp: e, lastUsed: now}
	s.trimLocked(key)
	return e, nil
}

// sweepLocked drops idle exporters, at most once per sweep interval.
func (s *carouselService) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < carouselSweepInterval {
		return
	}
	s.lastSweep = now
	for key, ent := range s.exporters {
		if now.Sub(ent.lastUsed) >= s.idleTTL && !ent.exp.Archiving() {
			delete(s.exporters, key)
		}
	}
}

// trimLocked evicts least recently used exporters other than keep until the
// cap holds or only archiving ones are left.
func (s *carouselService) trimLocked(keep carouselKey) {
	for len(s.exporters) > s.maxActive {
		var (
			oldestKey carouselKey
			oldest    *exporterEntry
		)
		for key, ent := range s.exporters {
			if key == keep || ent.exp.Archiving() {
				continue
			}
			if oldest == nil || ent.lastUsed.Before(oldest.lastUsed) {
				oldestKey, oldest = key, ent
			}
		}
		if oldest == nil {
			return
		}
		delete(s.exporters, oldestKey)
	}
}

func (s *carouselService) active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exporters)
}

func stateOf(generationID uuid.UUID, e *carousel.Exporter) *CarouselState {
	return &CarouselState{
		GenerationID: generationID,
		Topic:        e.Topic(),
		Slides:       e.Slides(),
		Current:      e.Current(),
		Total:        e.Len(),
		Archiving:    e.Archiving(),
	}
}

func (s *carouselService) State(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error) {
	e, err := s.exporter(ctx, userID, generationID)
	if err != nil {
		return nil, err
	}
	return stateOf(generationID, e), nil
}

func (s *carouselService) Next(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error) {
	return s.navigate(ctx, userID, generationID, func(e *carousel.Exporter) { e.Next() })
}

func (s *carouselService) Previous(ctx context.Context, userID, generationID uuid.UUID) (*CarouselState, error) {
	return s.navigate(ctx, userID, generationID, func(e *carousel.Exporter) { e.Previous() })
}

func (s *carouselService) JumpTo(ctx context.Context, userID, generationID uuid.UUID, index int) (*CarouselState, error) {
	return s.navigate(ctx, userID, generationID, func(e *carousel.Exporter) { e.JumpTo(index) })
}

func (s *carouselService) navigate(ctx context.Context, userID, generationID uuid.UUID, move func(*carousel.Exporter)) (*CarouselState, error) {
	e, err := s.exporter(ctx, userID, generationID)
	if err != nil {
		return nil, err
	}
	before := e.Current()
	move(e)
	st := stateOf(generationID, e)
	if st.Current != before {
		key := carouselKey{userID: userID, generationID: generationID}
		if err := s.nav.Save(ctx, key.String(), st.Current); err != nil {
			s.log.Warn("Nav state save failed", "key", key.String(), "error", err)
		}
		emitToUser(ctx, s.emit, userID, realtime.SSEEventCarouselNavigated, map[string]any{
			"generation_id": generationID,
			"current":       st.Current,
		})
	}
	return st, nil
}

func (s *carouselService) DownloadSlide(ctx context.Context, userID, generationID uuid.UUID, index int, saver carousel.Saver) (carousel.Outcome, error) {
	e, err := s.exporter(ctx, userID, generationID)
	if err != nil {
		return "", err
	}
	start := time.Now()
	out := e.DownloadSingle(ctx, index, saver)
	s.metrics.ObserveExport(ExportKindSingle, string(out), time.Since(start))
	return out, nil
}

func (s *carouselService) DownloadAll(ctx context.Context, userID, generationID uuid.UUID, saver carousel.Saver) (carousel.Outcome, error) {
	e, err := s.exporter(ctx, userID, generationID)
	if err != nil {
		return "", err
	}
	start := time.Now()
	out := e.DownloadAllAsArchive(ctx, saver)
	s.metrics.ObserveExport(ExportKindArchive, string(out), time.Since(start))
	return out, nil
}
