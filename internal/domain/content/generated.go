package content

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const (
	PostTypeInstagramCarousel = "instagram_carousel"
	PostTypeXTweet            = "x_tweet"
	PostTypeLinkedInPost      = "linkedin_post"

	XMaxCharacters        = 280
	LinkedInMaxCharacters = 3000
)

type GeneratedContent struct {
	MainTopic      string    `json:"main_topic"`
	GeneratedTopic string    `json:"generated_topic"`
	Platforms      Platforms `json:"platforms"`
}

type Platforms struct {
	Instagram CarouselPost `json:"instagram"`
	X         TextPost     `json:"x"`
	LinkedIn  TextPost     `json:"linkedin"`
}

type CarouselPost struct {
	PostType string   `json:"post_type"`
	Content  []string `json:"content"`
	CTA      string   `json:"cta"`
}

type TextPost struct {
	PostType string `json:"post_type"`
	Content  string `json:"content"`
	CTA      string `json:"cta"`
}

// Validate checks the parts of a model response the rest of the service
// depends on.
func (g GeneratedContent) Validate() error {
	if strings.TrimSpace(g.GeneratedTopic) == "" {
		return fmt.Errorf("generated content: missing generated_topic")
	}
	if len(g.Platforms.Instagram.Content) == 0 {
		return fmt.Errorf("generated content: instagram carousel has no slides")
	}
	return nil
}

// TextStats describes a text draft against its platform limit.
type TextStats struct {
	CharacterCount int  `json:"character_count"`
	MaxCharacters  int  `json:"max_characters"`
	OverLimitBy    int  `json:"over_limit_by"`
	OverLimit      bool `json:"over_limit"`
}

// CharacterCount counts UTF-16 code units, which is how the platforms' own
// counters see the text.
func CharacterCount(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func StatsFor(text string, max int) TextStats {
	n := CharacterCount(text)
	st := TextStats{CharacterCount: n, MaxCharacters: max}
	if n > max {
		st.OverLimit = true
		st.OverLimitBy = n - max
	}
	return st
}
