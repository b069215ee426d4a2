package carousel

import (
	"bytes"
	"context"
	"image/png"
	"testing"
)

func TestGGRasterizerDrawsSquarePNG(t *testing.T) {
	r, err := NewGGRasterizer(GGRasterizerOptions{Size: 216})
	if err != nil {
		t.Fatalf("NewGGRasterizer: %v", err)
	}
	data, err := r.Rasterize(context.Background(), Frame{Index: 0, Text: "Slide 1: Ship small, ship often", Opacity: 1, Layer: topLayer})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 216 || b.Dy() != 216 {
		t.Fatalf("bounds=%v, want 216x216", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Fatalf("corner is transparent, want gradient background")
	}
}

func TestGGRasterizerHiddenFrameIsTransparent(t *testing.T) {
	r, err := NewGGRasterizer(GGRasterizerOptions{Size: 64})
	if err != nil {
		t.Fatalf("NewGGRasterizer: %v", err)
	}
	data, err := r.Rasterize(context.Background(), Frame{Index: 3, Text: "hidden", Opacity: 0})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, pt := range [][2]int{{0, 0}, {32, 32}, {63, 63}} {
		if _, _, _, a := img.At(pt[0], pt[1]).RGBA(); a != 0 {
			t.Fatalf("pixel %v alpha=%d, want 0", pt, a)
		}
	}
}

func TestGGRasterizerCanceledContext(t *testing.T) {
	r, err := NewGGRasterizer(GGRasterizerOptions{Size: 32, Concurrency: 1})
	if err != nil {
		t.Fatalf("NewGGRasterizer: %v", err)
	}
	// Hold the only slot so Acquire has to wait on the context.
	if err := r.sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer r.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Rasterize(ctx, Frame{Opacity: 1}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestGGRasterizerBadFontPath(t *testing.T) {
	if _, err := NewGGRasterizer(GGRasterizerOptions{FontPath: "/does/not/exist.ttf"}); err == nil {
		t.Fatalf("expected error for missing font")
	}
}
