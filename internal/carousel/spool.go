package carousel

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Spool hands out temporary handles for finished artifacts, the way a browser
// hands out object URLs for blobs. Whoever creates a handle revokes it.
type Spool interface {
	Create(data []byte, contentType string) (string, error)
	Open(url string) (io.Reader, string, error)
	Revoke(url string)
	Len() int
}

type spoolEntry struct {
	data        []byte
	contentType string
}

type MemorySpool struct {
	mu      sync.Mutex
	entries map[string]spoolEntry
}

func NewMemorySpool() *MemorySpool {
	return &MemorySpool{entries: map[string]spoolEntry{}}
}

func (s *MemorySpool) Create(data []byte, contentType string) (string, error) {
	url := "blob:" + uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[url] = spoolEntry{data: data, contentType: contentType}
	return url, nil
}

func (s *MemorySpool) Open(url string) (io.Reader, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[url]
	if !ok {
		return nil, "", fmt.Errorf("spool: %s revoked or unknown", url)
	}
	return bytes.NewReader(e.data), e.contentType, nil
}

func (s *MemorySpool) Revoke(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, url)
}

func (s *MemorySpool) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
