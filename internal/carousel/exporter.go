package carousel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

// DefaultSlideDelay paces the batch export between slides. It is a repaint
// allowance carried over from the browser renderer, not a rasterizer limit.
const DefaultSlideDelay = 500 * time.Millisecond

var ErrSlideUnavailable = errors.New("carousel: slide unavailable")

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	// OutcomeSkipped: the requested slide does not exist; nothing happened.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeBusy: an archive export is already running; nothing happened.
	OutcomeBusy Outcome = "busy"
)

type Options struct {
	Topic      string
	Slides     []string
	Rasterizer Rasterizer
	Spool      Spool
	Notifier   Notifier
	Log        *logger.Logger

	// SlideDelay of zero means DefaultSlideDelay; negative disables the pause.
	SlideDelay time.Duration
	Sleep      func(time.Duration)
	Now        func() time.Time
}

// Exporter renders a deck's slides to PNG and delivers them one by one or as
// a zip archive. Public download operations never return errors or panic;
// they report an Outcome and notify the user.
type Exporter struct {
	deck   *Deck
	topic  string
	raster Rasterizer
	spool  Spool
	notify Notifier
	log    *logger.Logger
	delay  time.Duration
	sleep  func(time.Duration)
	now    func() time.Time

	renderMu  sync.Mutex
	archiving atomic.Bool
}

func NewExporter(opts Options) (*Exporter, error) {
	if opts.Rasterizer == nil {
		return nil, fmt.Errorf("carousel: rasterizer required")
	}
	e := &Exporter{
		deck:   NewDeck(opts.Slides),
		topic:  opts.Topic,
		raster: opts.Rasterizer,
		spool:  opts.Spool,
		notify: opts.Notifier,
		log:    opts.Log,
		delay:  opts.SlideDelay,
		sleep:  opts.Sleep,
		now:    opts.Now,
	}
	if e.spool == nil {
		e.spool = NewMemorySpool()
	}
	if e.notify == nil {
		e.notify = NopNotifier()
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	switch {
	case e.delay == 0:
		e.delay = DefaultSlideDelay
	case e.delay < 0:
		e.delay = 0
	}
	if e.sleep == nil {
		e.sleep = time.Sleep
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

func (e *Exporter) Topic() string    { return e.topic }
func (e *Exporter) Slides() []string { return e.deck.Slides() }
func (e *Exporter) Len() int         { return e.deck.Len() }
func (e *Exporter) Current() int     { return e.deck.Current() }
func (e *Exporter) Next() int        { return e.deck.Next() }
func (e *Exporter) Previous() int    { return e.deck.Previous() }
func (e *Exporter) JumpTo(i int) bool {
	return e.deck.JumpTo(i)
}

func (e *Exporter) display(i int) (Display, bool) { return e.deck.Display(i) }

// Archiving reports whether DownloadAllAsArchive is currently running.
func (e *Exporter) Archiving() bool { return e.archiving.Load() }

// RenderSlide rasterizes slide index. The slide is forced visible and
// top-most for the capture and restored on every exit path. Captures are
// serialized per exporter.
func (e *Exporter) RenderSlide(ctx context.Context, index int) ([]byte, error) {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	release, ok := e.deck.forceVisible(index)
	defer release()
	if !ok {
		return nil, ErrSlideUnavailable
	}
	frame, ok := e.deck.frame(index)
	if !ok {
		return nil, ErrSlideUnavailable
	}
	return e.rasterize(ctx, frame)
}

func (e *Exporter) rasterize(ctx context.Context, f Frame) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("rasterize slide %d: panic: %v", f.Index, r)
		}
	}()
	data, err = e.raster.Rasterize(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("rasterize slide %d: %w", f.Index, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("rasterize slide %d: empty image", f.Index)
	}
	return data, nil
}

// DownloadSingle renders slide index and saves it as <topic>-slide-<n>.png.
func (e *Exporter) DownloadSingle(ctx context.Context, index int, saver Saver) (outcome Outcome) {
	defer e.recoverInto(ctx, &outcome, "Failed to download slide")

	data, err := e.RenderSlide(ctx, index)
	if errors.Is(err, ErrSlideUnavailable) {
		return OutcomeSkipped
	}
	if err != nil {
		e.log.Error("Error downloading slide", "index", index, "error", err)
		e.notify.Error(ctx, "Failed to download slide")
		return OutcomeFailure
	}
	if err := e.deliver(ctx, saver, SlideFilename(e.topic, index), "image/png", data); err != nil {
		e.log.Error("Error saving slide", "index", index, "error", err)
		e.notify.Error(ctx, "Failed to download slide")
		return OutcomeFailure
	}
	e.notify.Success(ctx, fmt.Sprintf("Slide %d downloaded!", index+1))
	return OutcomeSuccess
}

// DownloadAllAsArchive renders every slide in order, pausing between slides,
// and saves one zip. Slides that fail to render are left out. A call made
// while another archive export runs is a no-op.
func (e *Exporter) DownloadAllAsArchive(ctx context.Context, saver Saver) (outcome Outcome) {
	if !e.archiving.CompareAndSwap(false, true) {
		return OutcomeBusy
	}
	defer e.archiving.Store(false)
	defer e.recoverInto(ctx, &outcome, "Failed to download slides")

	e.notify.Info(ctx, "Downloading all slides...")

	n := e.deck.Len()
	entries := make([]archiveEntry, 0, n)
	for i := 0; i < n; i++ {
		data, err := e.RenderSlide(ctx, i)
		if err != nil {
			e.log.Warn("Slide omitted from archive", "index", i, "error", err)
		} else {
			entries = append(entries, archiveEntry{name: archiveEntryName(e.topic, i), data: data})
		}
		if i < n-1 && e.delay > 0 {
			e.sleep(e.delay)
		}
	}

	archive, err := buildArchive(entries, e.now())
	if err != nil {
		e.log.Error("Error building carousel archive", "error", err)
		e.notify.Error(ctx, "Failed to download slides")
		return OutcomeFailure
	}
	if err := e.deliver(ctx, saver, ArchiveFilename(e.topic), "application/zip", archive); err != nil {
		e.log.Error("Error saving carousel archive", "error", err)
		e.notify.Error(ctx, "Failed to download slides")
		return OutcomeFailure
	}
	e.log.Debug("Carousel archive saved", "slides", len(entries), "total", n)
	e.notify.Success(ctx, fmt.Sprintf("%d slides downloaded!", len(entries)))
	return OutcomeSuccess
}

// deliver spools data, hands it to saver and revokes the handle right after.
func (e *Exporter) deliver(ctx context.Context, saver Saver, filename, contentType string, data []byte) error {
	if saver == nil {
		return fmt.Errorf("carousel: saver required")
	}
	url, err := e.spool.Create(data, contentType)
	if err != nil {
		return fmt.Errorf("spool %s: %w", filename, err)
	}
	defer e.spool.Revoke(url)

	r, ct, err := e.spool.Open(url)
	if err != nil {
		return err
	}
	return saver.Save(ctx, filename, ct, r)
}

func (e *Exporter) recoverInto(ctx context.Context, outcome *Outcome, msg string) {
	if r := recover(); r != nil {
		e.log.Error("Carousel export panicked", "panic", fmt.Sprint(r))
		e.notify.Error(ctx, msg)
		*outcome = OutcomeFailure
	}
}
