package carousel

import "testing"

func TestSlideFilename(t *testing.T) {
	cases := []struct {
		topic string
		index int
		want  string
	}{
		{"Remote Work", 0, "Remote-Work-slide-1.png"},
		{"AI  in \t Healthcare", 2, "AI-in-Healthcare-slide-3.png"},
		{"single", 4, "single-slide-5.png"},
		{" padded ", 0, "-padded--slide-1.png"},
	}
	for _, tc := range cases {
		if got := SlideFilename(tc.topic, tc.index); got != tc.want {
			t.Fatalf("SlideFilename(%q,%d)=%q, want %q", tc.topic, tc.index, got, tc.want)
		}
	}
}

func TestArchiveNames(t *testing.T) {
	if got := ArchiveFilename("Personal Branding 101"); got != "Personal-Branding-101-carousel.zip" {
		t.Fatalf("ArchiveFilename=%q", got)
	}
	if got := archiveEntryName("Personal Branding", 0); got != "Personal Branding/slide-1.png" {
		t.Fatalf("archiveEntryName=%q", got)
	}
	if got := archiveEntryName("a/b", 1); got != "a-b/slide-2.png" {
		t.Fatalf("archiveEntryName with slash=%q", got)
	}
	if got := archiveFolder("  "); got != "carousel" {
		t.Fatalf("archiveFolder blank=%q", got)
	}
}

func TestStripSlidePrefix(t *testing.T) {
	cases := map[string]string{
		"Slide 1: Start small":    "Start small",
		"slide 12:   Keep going ": "Keep going",
		"No prefix here":          "No prefix here",
		"Slideshow: not a prefix": "Slideshow: not a prefix",
	}
	for in, want := range cases {
		if got := StripSlidePrefix(in); got != want {
			t.Fatalf("StripSlidePrefix(%q)=%q, want %q", in, got, want)
		}
	}
}
