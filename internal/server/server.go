// Package server exposes the loan calculator over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/history"
	"github.com/iwvelando/loan-calculator/internal/metrics"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Calculation sources used as metric labels.
const (
	sourceJSON   = "json"
	sourceUpload = "upload"
)

// Options configures the HTTP handler.
type Options struct {
	Logger        *zap.Logger
	MaxUploadSize int64
	Version       string
	// History defaults to an in-memory store of constants.DefaultHistorySize.
	History history.Store
	// Tracer defaults to the global tracer provider.
	Tracer trace.Tracer
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	history       history.Store
	tracer        trace.Tracer
	calculator    *loans.Calculator
	latest        atomic.Pointer[snapshot]
}

// snapshot is the most recent successful calculation.
type snapshot struct {
	result    *loans.CalculationResult
	startDate string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	store := opts.History
	if store == nil {
		store = history.NewMemoryStore(constants.DefaultHistorySize)
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(constants.DefaultServiceName)
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		history:       store,
		tracer:        tracer,
		calculator:    loans.NewCalculator(logger),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/calculate", h.handleCalculate).Methods(http.MethodPost)
	r.HandleFunc("/api/calculate/upload", h.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/result/latest", h.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/api/result/latest/csv", h.handleLatestCSV).Methods(http.MethodGet)
	r.HandleFunc("/api/history", h.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/history", h.handleClearHistory).Methods(http.MethodDelete)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

type calculateResponse struct {
	Result   *loans.CalculationResult `json:"result"`
	Chart    []loans.ScheduleEntry    `json:"chart"`
	Warnings []string                 `json:"warnings,omitempty"`
	Duration string                   `json:"duration"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondRequestError(w, err, "failed to decode request", op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	// The JSON body has the same shape as a YAML loan description, so it goes
	// through the same loader.
	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode request: %v", err), op)
		return
	}

	h.runCalculation(r.Context(), w, configBytes, start, sourceJSON, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondRequestError(w, err, "failed to parse upload", op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing loan description file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read loan description: %v", err), op)
		return
	}

	h.runCalculation(r.Context(), w, buf.Bytes(), start, sourceUpload, op)
}

func (h *handler) runCalculation(ctx context.Context, w http.ResponseWriter, configBytes []byte, start time.Time, source, op string) {
	ctx, span := h.tracer.Start(ctx, "loan.calculate")
	defer span.End()

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		metrics.Calculations.WithLabelValues(source, metrics.StatusInvalid).Inc()
		span.SetStatus(codes.Error, "invalid loan description")
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := cfg.Validate(); err != nil {
		metrics.Calculations.WithLabelValues(source, metrics.StatusInvalid).Inc()
		span.SetStatus(codes.Error, "validation failed")
		h.respondValidationError(w, err, op)
		return
	}

	params, err := cfg.ToParameters()
	if err != nil {
		metrics.Calculations.WithLabelValues(source, metrics.StatusInvalid).Inc()
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	costs := cfg.ToCosts()
	warnings := cfg.ValidateConfiguration()

	span.SetAttributes(
		attribute.String("loan.type", params.Type),
		attribute.Float64("loan.principal", params.Principal),
		attribute.Float64("loan.annual_rate", params.AnnualRate),
		attribute.Int("loan.months", params.TotalMonths()),
		attribute.Int("loan.grace_months", params.GraceMonths),
		attribute.String("loan.method", string(params.Method)),
		attribute.Int("loan.costs", len(costs)),
	)

	result, err := h.calculator.Calculate(params, costs)
	if err != nil {
		metrics.Calculations.WithLabelValues(source, metrics.StatusError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "calculation failed")
		status := http.StatusInternalServerError
		if errors.Is(err, loans.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("failed to calculate: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	metrics.Calculations.WithLabelValues(source, metrics.StatusSuccess).Inc()
	metrics.CalculationDuration.Observe(elapsed.Seconds())
	metrics.APRIterations.Observe(float64(result.APRSolution.Iterations))
	span.SetAttributes(
		attribute.Float64("loan.apr", result.APR),
		attribute.Int("loan.apr_iterations", result.APRSolution.Iterations),
	)

	h.latest.Store(&snapshot{result: result, startDate: cfg.Loan.StartDate})

	if err := h.history.Append(ctx, history.NewEntry(params, result, time.Now())); err != nil {
		metrics.HistoryErrors.WithLabelValues("append").Inc()
		h.logger.Warn("failed to record calculation history",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	h.logger.Info("loan calculated",
		zap.String("op", op),
		zap.String("source", source),
		zap.Int("periods", len(result.Schedule)),
		zap.Float64("apr", result.APR),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Result:   result,
		Chart:    loans.SampleSchedule(result.Schedule, constants.DefaultChartPoints),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest := h.latest.Load()
	if latest == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "no calculation has been made yet", "server.handleLatest")
		return
	}
	h.writeJSON(w, http.StatusOK, latest.result)
}

func (h *handler) handleLatestCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLatestCSV"
	latest := h.latest.Load()
	if latest == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "no calculation has been made yet", op)
		return
	}

	csv, err := output.CsvString(latest.result, latest.startDate)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="loan-schedule.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, csv); err != nil {
		h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.history.List(r.Context())
	if err != nil {
		metrics.HistoryErrors.WithLabelValues("list").Inc()
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read history: %v", err), "server.handleHistory")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		metrics.HistoryErrors.WithLabelValues("clear").Inc()
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to clear history: %v", err), "server.handleClearHistory")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, msg, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", msg, err), op)
}

func (h *handler) respondValidationError(w http.ResponseWriter, err error, op string) {
	errs := validation.Errors(err)
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, e.Error())
	}

	h.logger.Warn("loan description rejected",
		zap.String("op", op),
		zap.Strings("errors", details),
	)
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan description", Details: details})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes before writing the header so an unencodable payload is
// reported as a 500 instead of a success with a truncated body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
