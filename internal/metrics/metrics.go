// Package metrics exposes Prometheus collectors for calculations, history and
// HTTP traffic.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every collector name.
const Namespace = "benefit"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Calculations    *prometheus.CounterVec
	EffectiveAmount *prometheus.CounterVec
	HistorySaves    prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer. Collectors already registered on reg are
// reused.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "calculations_total",
			Help:      "Total number of benefit calculations by best option.",
		}, []string{"best_option"}),
		EffectiveAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "effective_amount_total",
			Help:      "Total number of effective amount calculations by result.",
		}, []string{"result"}),
		HistorySaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "history_saves_total",
			Help:      "Total number of calculations saved to history.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
	}

	m.Calculations = registerCounterVec(reg, m.Calculations)
	m.EffectiveAmount = registerCounterVec(reg, m.EffectiveAmount)
	m.HTTPRequests = registerCounterVec(reg, m.HTTPRequests)
	if err := reg.Register(m.HistorySaves); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register counter: %w", err))
		}
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			m.HistorySaves = existing
		}
	}
	return m
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register counter: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	return c
}

// ObserveCalculation counts a completed calculation.
func (m *Metrics) ObserveCalculation(bestOption string) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(bestOption).Inc()
}

// ObserveEffectiveAmount counts an effective amount calculation. ok reports
// whether the inputs produced a value.
func (m *Metrics) ObserveEffectiveAmount(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "invalid"
	}
	m.EffectiveAmount.WithLabelValues(result).Inc()
}

// ObserveHistorySave counts a saved history entry.
func (m *Metrics) ObserveHistorySave() {
	if m == nil {
		return
	}
	m.HistorySaves.Inc()
}

// Middleware counts requests labelled by their chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
