package carousel

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultCanvasSize        = 1080
	DefaultRenderConcurrency = 4

	textLineSpacing = 1.625
	shadowOffset    = 3.0
)

var (
	slidePrefixRE  = regexp.MustCompile(`(?i)^\s*slide\s+\d+:\s*`)
	fontSizeLadder = []float64{60, 52, 44, 36, 30}
)

// StripSlidePrefix removes a leading "Slide N:" label emitted by the generator.
func StripSlidePrefix(s string) string {
	return strings.TrimSpace(slidePrefixRE.ReplaceAllString(s, ""))
}

type GGRasterizerOptions struct {
	Size        int
	Palette     Palette
	FontPath    string
	Concurrency int64
}

// GGRasterizer draws slides as square PNGs: gradient background, centred
// word-wrapped white text with a drop shadow. Frame opacity scales every
// alpha, so a hidden slide comes out fully transparent.
type GGRasterizer struct {
	size    int
	palette Palette
	font    *truetype.Font
	sem     *semaphore.Weighted
}

func NewGGRasterizer(opts GGRasterizerOptions) (*GGRasterizer, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultCanvasSize
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	conc := opts.Concurrency
	if conc <= 0 {
		conc = DefaultRenderConcurrency
	}

	fontBytes := gobold.TTF
	if p := strings.TrimSpace(opts.FontPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read slide font: %w", err)
		}
		fontBytes = b
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse slide font: %w", err)
	}

	return &GGRasterizer{
		size:    size,
		palette: palette,
		font:    parsed,
		sem:     semaphore.NewWeighted(conc),
	}, nil
}

func (r *GGRasterizer) Rasterize(ctx context.Context, f Frame) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	size := float64(r.size)
	dc := gg.NewContext(r.size, r.size)

	if f.Opacity > 0 {
		grad := r.palette.For(f.Index)
		from, err := parseHexColor(grad.From)
		if err != nil {
			return nil, err
		}
		to, err := parseHexColor(grad.To)
		if err != nil {
			return nil, err
		}
		bg := gg.NewLinearGradient(0, 0, size, size)
		bg.AddColorStop(0, withOpacity(from, f.Opacity))
		bg.AddColorStop(1, withOpacity(to, f.Opacity))
		dc.SetFillStyle(bg)
		dc.DrawRectangle(0, 0, size, size)
		dc.Fill()

		r.drawText(dc, StripSlidePrefix(f.Text), f.Opacity)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *GGRasterizer) drawText(dc *gg.Context, text string, opacity float64) {
	if text == "" {
		return
	}
	size := float64(r.size)
	padding := size * 0.11
	width := size - 2*padding

	// Shrink until the wrapped block fits inside the padded box.
	var face font.Face
	for _, pt := range fontSizeLadder {
		if face != nil {
			_ = face.Close()
		}
		face = truetype.NewFace(r.font, &truetype.Options{Size: pt * size / DefaultCanvasSize, DPI: 72, Hinting: font.HintingNone})
		dc.SetFontFace(face)
		lines := dc.WordWrap(text, width)
		_, h := dc.MeasureMultilineString(strings.Join(lines, "\n"), textLineSpacing)
		if h <= width {
			break
		}
	}
	defer face.Close()

	cx, cy := size/2, size/2
	dc.SetRGBA(0, 0, 0, 0.25*opacity)
	dc.DrawStringWrapped(text, cx+shadowOffset, cy+shadowOffset, 0.5, 0.5, width, textLineSpacing, gg.AlignCenter)
	dc.SetRGBA(1, 1, 1, opacity)
	dc.DrawStringWrapped(text, cx, cy, 0.5, 0.5, width, textLineSpacing, gg.AlignCenter)
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
