package carousel

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRunRE = regexp.MustCompile(`\s+`)

// SanitizeTopic replaces every whitespace run with a single hyphen.
func SanitizeTopic(topic string) string {
	return whitespaceRunRE.ReplaceAllString(topic, "-")
}

// SlideFilename names a single exported slide; index is 0-based.
func SlideFilename(topic string, index int) string {
	return fmt.Sprintf("%s-slide-%d.png", SanitizeTopic(topic), index+1)
}

func ArchiveFilename(topic string) string {
	return SanitizeTopic(topic) + "-carousel.zip"
}

func archiveEntryName(topic string, index int) string {
	return fmt.Sprintf("%s/slide-%d.png", archiveFolder(topic), index+1)
}

// archiveFolder keeps the topic as-is except for path separators, which
// would otherwise nest folders inside the archive.
func archiveFolder(topic string) string {
	folder := strings.TrimSpace(topic)
	folder = strings.NewReplacer("/", "-", "\\", "-").Replace(folder)
	folder = strings.Trim(folder, ".")
	if folder == "" {
		return "carousel"
	}
	return folder
}
