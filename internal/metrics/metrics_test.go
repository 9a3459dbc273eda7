package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iwvelando/benefit-calculator/internal/metrics"
)

func TestObservations(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	m.ObserveCalculation("discount")
	m.ObserveCalculation("discount")
	m.ObserveEffectiveAmount(true)
	m.ObserveEffectiveAmount(false)
	m.ObserveHistorySave()

	if got := testutil.ToFloat64(m.Calculations.WithLabelValues("discount")); got != 2 {
		t.Fatalf("expected 2 discount calculations, got %v", got)
	}
	if got := testutil.ToFloat64(m.EffectiveAmount.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 ok effective amount, got %v", got)
	}
	if got := testutil.ToFloat64(m.EffectiveAmount.WithLabelValues("invalid")); got != 1 {
		t.Fatalf("expected 1 invalid effective amount, got %v", got)
	}
	if got := testutil.ToFloat64(m.HistorySaves); got != 1 {
		t.Fatalf("expected 1 history save, got %v", got)
	}
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := metrics.New(registry)
	second := metrics.New(registry)

	first.ObserveHistorySave()
	second.ObserveHistorySave()

	if got := testutil.ToFloat64(first.HistorySaves); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveCalculation("cashback")
	m.ObserveEffectiveAmount(true)
	m.ObserveHistorySave()

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected 418 got %d", rr.Code)
	}
}

func TestMiddlewareLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/history", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/calculate", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/history", nil),
		httptest.NewRequest(http.MethodPost, "/api/calculate", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	tests := []struct {
		method, route, status string
	}{
		{http.MethodGet, "/api/history", "204"},
		{http.MethodPost, "/api/calculate", "200"},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(tt.method, tt.route, tt.status))
		if got != 1 {
			t.Fatalf("expected 1 request for %s %s %s, got %v", tt.method, tt.route, tt.status, got)
		}
	}
}
