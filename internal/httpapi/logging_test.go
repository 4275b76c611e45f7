package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LevelOff,
		"off":     LevelOff,
		"error":   LevelError,
		"info":    LevelInfo,
		"debug":   LevelDebug,
		"unknown": LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_QueryOverride(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/chat?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("level=%v", got)
	}
	r = httptest.NewRequest(http.MethodGet, "/chat?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("level=%v", got)
	}
}

func TestRequestLogLevel_HeaderOverride(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/chat", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("level=%v", got)
	}
}

func TestLoggingLineWriter_BuffersPartialLines(t *testing.T) {
	lw := &loggingLineWriter{}
	if _, err := lw.Write([]byte(`{"type":"frag`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(lw.buf) == 0 {
		t.Fatal("partial line should stay buffered")
	}
	if _, err := lw.Write([]byte("ment\"}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(lw.buf) != 0 {
		t.Fatalf("completed line should be flushed, buf=%q", lw.buf)
	}
}
