package carousel

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gradient is a two-stop 135 degree background.
type Gradient struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type Palette []Gradient

var DefaultPalette = Palette{
	{From: "#667EEA", To: "#764BA2"},
	{From: "#F093FB", To: "#F5576C"},
	{From: "#4FACFE", To: "#00F2FE"},
	{From: "#43E97B", To: "#38F9D7"},
	{From: "#FA709A", To: "#FEE140"},
	{From: "#30CFD0", To: "#330867"},
	{From: "#A8EDEA", To: "#FED6E3"},
	{From: "#FF9A9E", To: "#FECFEF"},
}

// For returns the gradient assigned to slide index i.
func (p Palette) For(i int) Gradient {
	if len(p) == 0 {
		return DefaultPalette.For(i)
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// LoadPalette reads a YAML file of the form
//
//	gradients:
//	  - from: "#667EEA"
//	    to: "#764BA2"
func LoadPalette(path string) (Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var doc struct {
		Gradients []Gradient `yaml:"gradients"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if len(doc.Gradients) == 0 {
		return nil, fmt.Errorf("palette %s has no gradients", path)
	}
	for i, g := range doc.Gradients {
		if _, err := parseHexColor(g.From); err != nil {
			return nil, fmt.Errorf("gradient %d from: %w", i, err)
		}
		if _, err := parseHexColor(g.To); err != nil {
			return nil, fmt.Errorf("gradient %d to: %w", i, err)
		}
	}
	return Palette(doc.Gradients), nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected #RRGGBB, got %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex %q", s)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}, nil
}
