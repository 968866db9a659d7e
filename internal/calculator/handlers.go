package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handlers serves the calculator endpoints on top of a session store.
type Handlers struct {
	engine   engine.Engine
	sessions *session.Store
	history  history.Recorder
}

func NewHandlers(eng engine.Engine, sessions *session.Store, rec history.Recorder) *Handlers {
	if rec == nil {
		rec = history.Nop{}
	}
	return &Handlers{engine: eng, sessions: sessions, history: rec}
}

// start opens the handler span and returns the trace-aware logger and
// request id that go with it.
func start(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger, string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	return ctx, span, logger, requestID
}

func elapsedMillis(since time.Time) float64 {
	return float64(time.Since(since).Microseconds()) / 1000.0
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, requestID := start(r, "create_session")
	defer span.End()

	id, state := h.sessions.Create()

	span.SetAttributes(attribute.String("calculator.session.id", id))
	span.SetStatus(codes.Ok, "")
	opsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "create_session")))

	logger.Info("calculator session created",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{ID: id, View: display.Render(state)})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, _ := start(r, "get_session")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	state, err := h.sessions.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get_session", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, View: display.Render(state)})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, requestID := start(r, "delete_session")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	if err := h.sessions.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete_session", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Key presses (one child span per key)
// ---------------------------------------------------------------------------

// PressKeys handles POST /calculator/sessions/{id}/keys. It applies the keys
// in order as one atomic update of the session. An unknown key rejects the
// whole batch. A key whose expression cannot be evaluated is a no-op and is
// reported in "ignored".
func (h *Handlers) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, requestID := start(r, "keys")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(req.Keys)))

	var (
		ignored   []IgnoredKey
		completed []history.Entry
	)

	state, err := h.sessions.Apply(id, func(s engine.State) (engine.State, error) {
		ignored, completed = nil, nil

		for i, key := range req.Keys {
			next, intent, err := h.pressKey(ctx, logger, i, key, s)

			switch {
			case errors.Is(err, engine.ErrUnknownKey):
				return s, fmt.Errorf("key %d: %w", i, err)
			case errors.Is(err, engine.ErrMalformedExpression):
				ignored = append(ignored, IgnoredKey{Index: i, Key: key, Reason: err.Error()})
			}

			if intent == engine.IntentEvaluate && next.Evaluations != s.Evaluations {
				completed = append(completed, history.Entry{
					SessionID:     id,
					Expression:    engine.JoinTokens(next.LastEvaluated),
					Result:        next.Operand,
					Indeterminate: next.Indeterminate(),
				})
			}

			s = next
		}

		return s, nil
	})

	switch {
	case errors.Is(err, session.ErrNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "session not found", err, http.StatusNotFound, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	for _, entry := range completed {
		if err := h.history.Record(ctx, entry); err != nil {
			logger.Warn("recording calculation failed",
				zap.String("session_id", id),
				zap.Error(err),
				zap.String("request_id", requestID),
			)
		}
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("operand", state.Operand),
		attribute.Int("ignored", len(ignored)),
		attribute.Int("evaluations", len(completed)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys applied",
		zap.String("session_id", id),
		zap.Int("keys", len(req.Keys)),
		zap.Int("ignored", len(ignored)),
		zap.String("operand", state.Operand),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		ID:      id,
		View:    display.Render(state),
		Ignored: ignored,
	})
}

// pressKey applies one key inside its own child span.
func (h *Handlers) pressKey(ctx context.Context, logger *zap.Logger, index int, key string, s engine.State) (engine.State, engine.Intent, error) {
	intent, _ := engine.ParseKey(key)
	opName := string(intent)
	if opName == "" {
		opName = "unknown"
	}

	_, span := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d.%s", index, opName),
		trace.WithAttributes(
			attribute.Int("calculator.key.index", index),
			attribute.String("calculator.key", key),
			attribute.String("calculator.intent", opName),
			attribute.String("calculator.operand.before", s.Operand),
		),
	)
	defer span.End()

	keyStart := time.Now()
	next, err := h.engine.Press(s, key)
	elapsed := elapsedMillis(keyStart)

	attrs := metric.WithAttributes(attribute.String("operation", opName))

	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNumericIndeterminate):
		span.AddEvent("result.indeterminate", trace.WithAttributes(
			attribute.String("result", next.Operand),
		))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		// Unknown keys fail the request and are counted by RecordError.
		if !errors.Is(err, engine.ErrUnknownKey) {
			errorCounter.Add(ctx, 1, attrs)
		}

		logger.Warn("calculator key rejected",
			zap.Int("index", index),
			zap.String("key", key),
			zap.Error(err),
		)
		return next, intent, err
	}

	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	if intent == engine.IntentEvaluate && err == nil && next.Evaluations != s.Evaluations {
		if v, perr := strconv.ParseFloat(next.Operand, 64); perr == nil {
			resultGauge.Record(ctx, v, attrs)
		}
	}

	span.SetAttributes(attribute.String("calculator.operand.after", next.Operand))
	span.SetStatus(codes.Ok, "")

	logger.Debug("calculator key applied",
		zap.Int("index", index),
		zap.String("key", key),
		zap.String("intent", opName),
		zap.String("operand", next.Operand),
		zap.Float64("duration_ms", elapsed),
	)

	return next, intent, err
}

// History handles GET /calculator/sessions/{id}/history?limit=N
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, _ := start(r, "history")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			if err == nil {
				err = fmt.Errorf("limit %d out of range 1..%d", n, maxHistoryLimit)
			}
			observability.RecordError(ctx, span, logger, errorCounter, "history", "invalid limit", err, http.StatusBadRequest, w)
			return
		}
		limit = n
	}

	if _, err := h.sessions.Get(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "history", "session not found", err, http.StatusNotFound, w)
		return
	}

	entries, err := h.history.List(ctx, id, limit)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "history", "history unavailable", err, http.StatusInternalServerError, w)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	span.SetAttributes(attribute.Int("calculator.history.count", len(entries)))
	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{ID: id, Entries: entries})
}

// ---------------------------------------------------------------------------
// Stateless evaluation
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate. It evaluates a flat expression
// such as "2 + 3 × 4" without touching any session.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, requestID := start(r, "evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	tokens, err := engine.ParseExpression(req.Expression)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "malformed expression", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.expression", req.Expression),
		attribute.Int("calculator.tokens", len(tokens)),
	)

	evalStart := time.Now()
	result, err := engine.Evaluate(tokens)
	elapsed := elapsedMillis(evalStart)

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "malformed expression", err, http.StatusBadRequest, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", "evaluate"))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	resp := EvaluateResponse{
		Expression: display.FormatExpression(tokens),
		Display:    display.FormatNumber(engine.FormatResult(result)),
	}

	if cerr := engine.CheckResult(result); cerr != nil {
		resp.Indeterminate = true
		span.AddEvent("result.indeterminate", trace.WithAttributes(
			attribute.String("result", engine.FormatResult(result)),
		))
	} else {
		resp.Result = &result
		resultGauge.Record(ctx, result, attrs)
		span.SetAttributes(attribute.Float64("calculator.result", result))
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator expression evaluated",
		zap.String("expression", req.Expression),
		zap.String("result", engine.FormatResult(result)),
		zap.Bool("indeterminate", resp.Indeterminate),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}
