package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveExport("archive", "success", time.Second)
	m.IncNotification("info")
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/generations/:id", "200", 30*time.Millisecond)
	m.ObserveExport("archive", "busy", 0)
	m.ObserveExport("archive", "busy", 0)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`brandcraft_api_requests_total{method="GET",route="/api/generations/:id",status="200"} 1`,
		`brandcraft_api_request_seconds_bucket{method="GET",route="/api/generations/:id",status="200",le="0.05"} 1`,
		`brandcraft_api_request_seconds_bucket{method="GET",route="/api/generations/:id",status="200",le="0.01"} 0`,
		`brandcraft_carousel_exports_total{kind="archive",outcome="busy"} 2`,
		"# TYPE brandcraft_api_inflight gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString=%s", got)
	}
}

func TestParseHeaders(t *testing.T) {
	h := parseHeaders("api-key=abc, bad, x= ,y=1")
	if len(h) != 2 || h["api-key"] != "abc" || h["y"] != "1" {
		t.Fatalf("headers=%v", h)
	}
	if parseHeaders("") != nil {
		t.Fatalf("empty should be nil")
	}
}
