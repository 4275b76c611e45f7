package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorderCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: 200}
	sr.WriteHeader(http.StatusServiceUnavailable)
	if sr.status != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", sr.status)
	}
}

func TestRoutePatternOrPath_FallsBackToURLPath(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/some/path", nil)
	if got := routePatternOrPath(r); got != "/some/path" {
		t.Fatalf("path=%q", got)
	}
}

func TestCountingLineWriterReportsFullWrite(t *testing.T) {
	w := countingLineWriter{}
	n, err := w.Write([]byte("{\"a\":1}\n{\"b\":2}\n"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != 16 {
		t.Fatalf("n=%d", n)
	}
}

func TestMetricsMiddlewareServes(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := MetricsMiddleware(inner)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status=%d", w.Code)
	}
}
