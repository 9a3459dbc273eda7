// Package server exposes the benefit calculator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/benefit-calculator/internal/calculator"
	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/internal/metrics"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/iwvelando/benefit-calculator/pkg/format"
	"github.com/iwvelando/benefit-calculator/pkg/output"
	"github.com/iwvelando/benefit-calculator/pkg/validation"
)

// Error codes used in the canonical error body.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_FAILED"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternal         = "INTERNAL"
	CodeHistoryDisabled  = "HISTORY_DISABLED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeNotFound         = "NOT_FOUND"
)

// Options configures NewHandler. Only Service is required.
type Options struct {
	Service        *calculator.Service
	Formatter      *format.Formatter
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	MaxUploadSize  int64
	Version        string
	AllowedOrigins []string
	// HealthCheck reports whether backing services are reachable.
	HealthCheck func(ctx context.Context) error
}

type handler struct {
	logger        *zap.Logger
	service       *calculator.Service
	formatter     *format.Formatter
	validate      *validator.Validate
	maxUploadSize int64
	version       string
	healthCheck   func(ctx context.Context) error
}

// ErrorBody is the canonical error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Service == nil {
		opts.Service = calculator.NewService(logger, nil, opts.Metrics)
	}
	if opts.Formatter == nil {
		opts.Formatter = format.MustFormatter(constants.DefaultCurrency, constants.DefaultLocale)
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handler{
		logger:        logger,
		service:       opts.Service,
		formatter:     opts.Formatter,
		validate:      validator.New(),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		healthCheck:   opts.HealthCheck,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(opts.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, http.StatusNotFound, CodeNotFound, "route not found", nil, "server.NotFound")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
			http.StatusText(http.StatusMethodNotAllowed), nil, "server.MethodNotAllowed")
	})

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Use(h.limitBody)
		api.Post("/calculate", h.handleCalculate)
		api.Post("/effective-amount", h.handleEffectiveAmount)
		api.Get("/history", h.handleListHistory)
		api.Post("/history", h.handleSaveHistory)
		api.Delete("/history", h.handleClearHistory)
		api.Post("/config/export", h.handleConfigExport)
		api.Get("/version", h.handleVersion)
	})

	return r
}

func (h *handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		}
		next.ServeHTTP(w, r)
	})
}

// calculateResponse is output.Report plus the saved entry when persisted.
type calculateResponse struct {
	output.Report
	Entry *history.Entry `json:"entry,omitempty"`
}

// decodeInputs reads and validates purchase inputs. It writes the error
// response itself and reports whether decoding succeeded.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (config.InputParams, bool) {
	var in config.InputParams
	if !h.decodeJSON(w, r, &in, op) {
		return in, false
	}
	if err := h.validate.Struct(in); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, CodeValidation, "invalid purchase parameters",
			validationDetails(err), op)
		return in, false
	}
	return in, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), nil, op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("failed to decode request: %v", err), nil, op)
		return false
	}
	return true
}

func validationDetails(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"request": err.Error()}
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[jsonPath(fe.Namespace())] = fe.Tag()
	}
	return details
}

// jsonPath converts a validator namespace such as
// "InputParams.Cashback.RoundingMode" into "cashback.roundingMode".
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToLower(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, ".")
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}
	params, err := in.CompletedParams()
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, CodeValidation, err.Error(), nil, op)
		return
	}

	result := h.service.Calculate(r.Context(), params)
	h.logger.Debug("calculate request completed",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, calculateResponse{
		Report: output.NewReport(params, result, h.formatter, in.Warnings()),
	})
}

func (h *handler) handleEffectiveAmount(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEffectiveAmount"

	var in config.EffectiveAmountInput
	if !h.decodeJSON(w, r, &in, op) {
		return
	}
	maxAmount, percentage, err := in.Values()
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, CodeValidation, err.Error(), nil, op)
		return
	}

	amount, ok := h.service.EffectiveAmount(r.Context(), maxAmount, percentage)
	if !ok {
		h.respondError(w, http.StatusUnprocessableEntity, CodeValidation, validation.ErrMaxCashbackRequired.Error(), nil, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"effectiveAmount": amount,
		"formatted":       h.formatter.Currency(amount),
	})
}

func (h *handler) historyOrError(w http.ResponseWriter, op string) (*history.History, bool) {
	hist := h.service.History()
	if hist == nil {
		h.respondError(w, http.StatusServiceUnavailable, CodeHistoryDisabled, calculator.ErrNoHistory.Error(), nil, op)
		return nil, false
	}
	return hist, true
}

func (h *handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListHistory"

	hist, ok := h.historyOrError(w, op)
	if !ok {
		return
	}
	entries, err := hist.List(r.Context())
	if err != nil {
		h.respondHistoryError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (h *handler) handleSaveHistory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveHistory"

	if _, ok := h.historyOrError(w, op); !ok {
		return
	}
	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}
	params, err := in.CompletedParams()
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, CodeValidation, err.Error(), nil, op)
		return
	}

	entry, err := h.service.CalculateAndSave(r.Context(), params)
	if err != nil {
		h.respondHistoryError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, calculateResponse{
		Report: output.NewReport(entry.Params, entry.Result, h.formatter, in.Warnings()),
		Entry:  &entry,
	})
}

func (h *handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClearHistory"

	hist, ok := h.historyOrError(w, op)
	if !ok {
		return
	}
	if err := hist.Clear(r.Context()); err != nil {
		h.respondHistoryError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) respondHistoryError(w http.ResponseWriter, err error, op string) {
	h.logger.Warn("history storage error", zap.String("op", op), zap.Error(err))
	if errors.Is(err, history.ErrCorrupt) {
		h.respondError(w, http.StatusInternalServerError, CodeInternal, "stored history is corrupt", nil, op)
		return
	}
	h.respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "history storage is unavailable", nil, op)
}

type exportDocument struct {
	Purchase config.InputParams `yaml:"purchase"`
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	yamlBytes, err := yaml.Marshal(exportDocument{Purchase: in})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), nil, op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.healthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.healthCheck(ctx); err != nil {
			h.respondError(w, http.StatusServiceUnavailable, CodeUnavailable, err.Error(), nil, "server.handleHealth")
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondError(w http.ResponseWriter, status int, code, msg string, details any, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, errorResponse{Error: ErrorBody{Code: code, Message: msg, Details: details}})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
