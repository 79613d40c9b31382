package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserverCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.FetchDone(true)
	m.FetchDone(false)
	m.FetchDone(false)
	m.CacheHit()
	m.WidgetRendered("popup", "mounted")

	if got := testutil.ToFloat64(m.ConfigFetches.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok fetches = %v", got)
	}
	if got := testutil.ToFloat64(m.ConfigFetches.WithLabelValues("error")); got != 2 {
		t.Fatalf("error fetches = %v", got)
	}
	if got := testutil.ToFloat64(m.ConfigCacheHits); got != 1 {
		t.Fatalf("cache hits = %v", got)
	}
	if got := testutil.ToFloat64(m.WidgetRenders.WithLabelValues("popup", "mounted")); got != 1 {
		t.Fatalf("renders = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.WidgetRendered("button", "suppressed_path")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `whatsapp_widget_renders_total{mode="button",reason="suppressed_path"} 1`) {
		t.Fatalf("metrics output:\n%s", body)
	}
}
