package carousel

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"
)

type savedFile struct {
	name        string
	contentType string
	data        []byte
}

type recordingSaver struct {
	mu    sync.Mutex
	files []savedFile
	err   error
}

func (s *recordingSaver) Save(_ context.Context, filename, contentType string, r io.Reader) error {
	if s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, savedFile{name: filename, contentType: contentType, data: b})
	return nil
}

func (s *recordingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) add(kind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, kind+":"+msg)
}
func (n *recordingNotifier) Info(_ context.Context, msg string)    { n.add("info", msg) }
func (n *recordingNotifier) Success(_ context.Context, msg string) { n.add("success", msg) }
func (n *recordingNotifier) Error(_ context.Context, msg string)   { n.add("error", msg) }

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// fakeRaster returns "png-<index>" and fails for any index in failAt.
func fakeRaster(failAt ...int) RasterizerFunc {
	return func(_ context.Context, f Frame) ([]byte, error) {
		for _, k := range failAt {
			if f.Index == k {
				return nil, fmt.Errorf("render failed")
			}
		}
		return []byte(fmt.Sprintf("png-%d", f.Index)), nil
	}
}

func newTestExporter(t *testing.T, slides []string, r Rasterizer, n Notifier) (*Exporter, *MemorySpool) {
	t.Helper()
	spool := NewMemorySpool()
	e, err := NewExporter(Options{
		Topic:      "Remote Work",
		Slides:     slides,
		Rasterizer: r,
		Spool:      spool,
		Notifier:   n,
		Sleep:      func(time.Duration) {},
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	return e, spool
}

func zipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		b, _ := io.ReadAll(rc)
		_ = rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestRenderSlideForcesVisibilityAndRestores(t *testing.T) {
	var seen Frame
	r := RasterizerFunc(func(_ context.Context, f Frame) ([]byte, error) {
		seen = f
		return []byte("ok"), nil
	})
	e, _ := newTestExporter(t, []string{"a", "b", "c"}, r, nil)

	if _, err := e.RenderSlide(context.Background(), 2); err != nil {
		t.Fatalf("RenderSlide: %v", err)
	}
	if seen.Index != 2 || seen.Opacity != 1 || seen.Layer != topLayer || seen.Text != "c" {
		t.Fatalf("frame=%+v, want visible top-most slide 2", seen)
	}
	if disp, _ := e.display(2); disp.Visible || disp.Layer != baseLayer {
		t.Fatalf("slide 2 stuck after capture: %+v", disp)
	}
}

func TestRenderSlideRestoresAfterFailureAndPanic(t *testing.T) {
	calls := 0
	r := RasterizerFunc(func(_ context.Context, f Frame) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		panic("canvas exploded")
	})
	e, _ := newTestExporter(t, []string{"a", "b"}, r, nil)

	for i := 0; i < 2; i++ {
		if _, err := e.RenderSlide(context.Background(), 1); err == nil {
			t.Fatalf("attempt %d: expected error", i)
		}
		if disp, _ := e.display(1); disp.Visible || disp.Layer != baseLayer {
			t.Fatalf("attempt %d: slide stuck forced: %+v", i, disp)
		}
	}
}

func TestRenderSlideUnavailable(t *testing.T) {
	e, _ := newTestExporter(t, []string{"a"}, fakeRaster(), nil)
	if _, err := e.RenderSlide(context.Background(), 5); !errors.Is(err, ErrSlideUnavailable) {
		t.Fatalf("err=%v, want ErrSlideUnavailable", err)
	}
}

func TestDownloadSingle(t *testing.T) {
	notes := &recordingNotifier{}
	e, spool := newTestExporter(t, []string{"a", "b", "c"}, fakeRaster(), notes)
	saver := &recordingSaver{}

	if got := e.DownloadSingle(context.Background(), 1, saver); got != OutcomeSuccess {
		t.Fatalf("outcome=%s", got)
	}
	if len(saver.files) != 1 {
		t.Fatalf("saved %d files", len(saver.files))
	}
	f := saver.files[0]
	if f.name != "Remote-Work-slide-2.png" || f.contentType != "image/png" || string(f.data) != "png-1" {
		t.Fatalf("saved=%+v", f)
	}
	if spool.Len() != 0 {
		t.Fatalf("spool leaked %d handles", spool.Len())
	}
	if got := notes.all(); len(got) != 1 || got[0] != "success:Slide 2 downloaded!" {
		t.Fatalf("notifications=%v", got)
	}
}

func TestDownloadSingleFailures(t *testing.T) {
	t.Run("render_failure", func(t *testing.T) {
		notes := &recordingNotifier{}
		e, spool := newTestExporter(t, []string{"a"}, fakeRaster(0), notes)
		saver := &recordingSaver{}
		if got := e.DownloadSingle(context.Background(), 0, saver); got != OutcomeFailure {
			t.Fatalf("outcome=%s", got)
		}
		if saver.count() != 0 || spool.Len() != 0 {
			t.Fatalf("saved=%d spool=%d", saver.count(), spool.Len())
		}
		if got := notes.all(); len(got) != 1 || got[0] != "error:Failed to download slide" {
			t.Fatalf("notifications=%v", got)
		}
	})
	t.Run("save_failure_revokes_handle", func(t *testing.T) {
		e, spool := newTestExporter(t, []string{"a"}, fakeRaster(), nil)
		saver := &recordingSaver{err: errors.New("disk full")}
		if got := e.DownloadSingle(context.Background(), 0, saver); got != OutcomeFailure {
			t.Fatalf("outcome=%s", got)
		}
		if spool.Len() != 0 {
			t.Fatalf("spool leaked %d handles", spool.Len())
		}
	})
	t.Run("missing_slide_is_silent", func(t *testing.T) {
		notes := &recordingNotifier{}
		e, _ := newTestExporter(t, []string{"a"}, fakeRaster(), notes)
		if got := e.DownloadSingle(context.Background(), 3, &recordingSaver{}); got != OutcomeSkipped {
			t.Fatalf("outcome=%s", got)
		}
		if got := notes.all(); len(got) != 0 {
			t.Fatalf("notifications=%v", got)
		}
	})
}

func TestDownloadAllAsArchive(t *testing.T) {
	notes := &recordingNotifier{}
	e, spool := newTestExporter(t, []string{"a", "b", "c"}, fakeRaster(), notes)
	saver := &recordingSaver{}

	if got := e.DownloadAllAsArchive(context.Background(), saver); got != OutcomeSuccess {
		t.Fatalf("outcome=%s", got)
	}
	if saver.count() != 1 {
		t.Fatalf("saved %d files, want one archive", saver.count())
	}
	f := saver.files[0]
	if f.name != "Remote-Work-carousel.zip" || f.contentType != "application/zip" {
		t.Fatalf("archive=%s %s", f.name, f.contentType)
	}
	entries := zipEntries(t, f.data)
	want := map[string]string{
		"Remote Work/slide-1.png": "png-0",
		"Remote Work/slide-2.png": "png-1",
		"Remote Work/slide-3.png": "png-2",
	}
	if len(entries) != len(want) {
		t.Fatalf("entries=%v", entries)
	}
	for name, body := range want {
		if entries[name] != body {
			t.Fatalf("entry %s=%q, want %q", name, entries[name], body)
		}
	}
	if spool.Len() != 0 || e.Archiving() {
		t.Fatalf("spool=%d archiving=%v", spool.Len(), e.Archiving())
	}
	got := notes.all()
	if len(got) != 2 || got[0] != "info:Downloading all slides..." || got[1] != "success:3 slides downloaded!" {
		t.Fatalf("notifications=%v", got)
	}
}

func TestDownloadAllAsArchiveOmitsFailedSlides(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k < n; k++ {
			e, _ := newTestExporter(t, make([]string, n), fakeRaster(k), nil)
			saver := &recordingSaver{}
			if got := e.DownloadAllAsArchive(context.Background(), saver); got != OutcomeSuccess {
				t.Fatalf("n=%d k=%d outcome=%s", n, k, got)
			}
			entries := zipEntries(t, saver.files[0].data)
			if len(entries) != n-1 {
				t.Fatalf("n=%d k=%d entries=%d, want %d", n, k, len(entries), n-1)
			}
			if _, ok := entries[fmt.Sprintf("Remote Work/slide-%d.png", k+1)]; ok {
				t.Fatalf("n=%d k=%d failed slide present", n, k)
			}
		}
	}
}

func TestDownloadAllAsArchiveSerializesWithDelay(t *testing.T) {
	var mu sync.Mutex
	var events []string
	r := RasterizerFunc(func(_ context.Context, f Frame) ([]byte, error) {
		mu.Lock()
		events = append(events, fmt.Sprintf("render-%d", f.Index))
		mu.Unlock()
		return []byte("x"), nil
	})
	e, err := NewExporter(Options{
		Topic:      "t",
		Slides:     []string{"a", "b", "c"},
		Rasterizer: r,
		SlideDelay: 250 * time.Millisecond,
		Sleep: func(d time.Duration) {
			mu.Lock()
			events = append(events, "sleep-"+d.String())
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	e.DownloadAllAsArchive(context.Background(), &recordingSaver{})

	want := []string{"render-0", "sleep-250ms", "render-1", "sleep-250ms", "render-2"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Fatalf("events=%v, want %v", events, want)
	}
}

func TestDownloadAllAsArchiveReentrancyIsNoop(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	var once sync.Once
	r := RasterizerFunc(func(_ context.Context, f Frame) ([]byte, error) {
		once.Do(func() {
			close(entered)
			<-unblock
		})
		return []byte("x"), nil
	})
	notes := &recordingNotifier{}
	e, _ := newTestExporter(t, []string{"a", "b"}, r, notes)
	saver := &recordingSaver{}

	done := make(chan Outcome, 1)
	go func() { done <- e.DownloadAllAsArchive(context.Background(), saver) }()
	<-entered

	if !e.Archiving() {
		t.Fatalf("flag not set while running")
	}
	if got := e.DownloadAllAsArchive(context.Background(), saver); got != OutcomeBusy {
		t.Fatalf("second call outcome=%s, want busy", got)
	}
	close(unblock)

	if got := <-done; got != OutcomeSuccess {
		t.Fatalf("first call outcome=%s", got)
	}
	if saver.count() != 1 {
		t.Fatalf("saved %d archives, want 1", saver.count())
	}
	if e.Archiving() {
		t.Fatalf("flag not reset after success")
	}
	infos := 0
	for _, m := range notes.all() {
		if m == "info:Downloading all slides..." {
			infos++
		}
	}
	if infos != 1 {
		t.Fatalf("busy call should not notify, infos=%d", infos)
	}
}

func TestDownloadAllAsArchiveFlagResetsAfterFailure(t *testing.T) {
	notes := &recordingNotifier{}
	e, spool := newTestExporter(t, []string{"a", "b"}, fakeRaster(), notes)
	failing := &recordingSaver{err: errors.New("client went away")}

	if got := e.DownloadAllAsArchive(context.Background(), failing); got != OutcomeFailure {
		t.Fatalf("outcome=%s", got)
	}
	if e.Archiving() || spool.Len() != 0 {
		t.Fatalf("archiving=%v spool=%d after failure", e.Archiving(), spool.Len())
	}
	msgs := notes.all()
	sort.Strings(msgs)
	if msgs[0] != "error:Failed to download slides" {
		t.Fatalf("notifications=%v", msgs)
	}

	ok := &recordingSaver{}
	if got := e.DownloadAllAsArchive(context.Background(), ok); got != OutcomeSuccess {
		t.Fatalf("retry outcome=%s", got)
	}
}

func TestNewExporterRequiresRasterizer(t *testing.T) {
	if _, err := NewExporter(Options{Slides: []string{"a"}}); err == nil {
		t.Fatalf("expected error without rasterizer")
	}
}
