package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"keypad-calculator/internal/engine"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SessionHandler serves the keypad session endpoints backed by a Store.
type SessionHandler struct {
	store *Store
}

func NewSessionHandler(store *Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// startSessionSpan opens the span for a session operation and returns a
// context and logger tagged with the session ID from the URL.
func startSessionSpan(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger, string) {
	id := chi.URLParam(r, "sessionID")
	ctx := observability.ContextWithSessionID(r.Context(), id)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.session.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)

	return ctx, span, observability.LoggerWithTrace(ctx), id
}

// Create handles POST /calculator/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.create")
	defer span.End()

	id, st := h.store.Create()
	sessionsGauge.Add(ctx, 1)

	span.SetAttributes(attribute.String("calculator.session.id", id))
	span.SetStatus(codes.Ok, "")

	observability.LoggerWithTrace(observability.ContextWithSessionID(ctx, id)).Info("calculator session created",
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(id, st))
}

// Get handles GET /calculator/sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, id := startSessionSpan(r, "get")
	defer span.End()

	st, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(id, st))
}

// Delete handles DELETE /calculator/sessions/{sessionID}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, id := startSessionSpan(r, "delete")
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found", err, http.StatusNotFound, w)
		return
	}
	sessionsGauge.Add(ctx, -1)

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// Press handles POST /calculator/sessions/{sessionID}/press — one keypad or
// keyboard key.
func (h *SessionHandler) Press(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, id := startSessionSpan(r, "press")
	defer span.End()

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.String("calculator.key", req.Key))

	start := time.Now()
	st, err := h.store.Do(id, func(c *engine.Calculator) error {
		return c.Press(req.Key)
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if errors.Is(err, ErrSessionNotFound) {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "session not found", err, http.StatusNotFound, w)
		return
	}
	if err != nil {
		writeEngineError(ctx, span, logger, w, id, st, err, nil)
		return
	}

	recordKey(ctx, req.Key, elapsed)

	span.SetAttributes(
		attribute.String("calculator.display", st.Display),
		attribute.String("calculator.memo", st.Memo),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("key applied",
		zap.String("key", req.Key),
		zap.String("display", st.Display),
		zap.String("memo", st.Memo),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(id, st))
}

// Keys handles POST /calculator/sessions/{sessionID}/keys — applies a key
// sequence in order, one child span per key, stopping at the first failure.
func (h *SessionHandler) Keys(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger, id := startSessionSpan(r, "keys")
	defer span.End()

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

	applied := 0
	st, err := h.store.Do(id, func(c *engine.Calculator) error {
		for i, key := range req.Keys {
			_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.session.key.%d", i),
				trace.WithAttributes(
					attribute.Int("calculator.key.index", i),
					attribute.String("calculator.key", key),
				),
			)

			start := time.Now()
			if err := c.Press(key); err != nil {
				keySpan.RecordError(err)
				keySpan.SetStatus(codes.Error, err.Error())
				keySpan.End()
				return fmt.Errorf("key %d: %w", i, err)
			}
			recordKey(ctx, key, float64(time.Since(start).Microseconds())/1000.0)

			keySpan.SetAttributes(attribute.String("calculator.display", c.Display()))
			keySpan.SetStatus(codes.Ok, "")
			keySpan.End()
			applied++
		}
		return nil
	})

	if errors.Is(err, ErrSessionNotFound) {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "session not found", err, http.StatusNotFound, w)
		return
	}
	if err != nil {
		writeEngineError(ctx, span, logger, w, id, st, err, &applied)
		return
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", st.Display),
		attribute.Int("applied", applied),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key sequence applied",
		zap.Int("applied", applied),
		zap.String("display", st.Display),
		zap.String("memo", st.Memo),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		SessionResponse: newSessionResponse(id, st),
		Applied:         applied,
	})
}

// recordKey counts an applied key by the kind of operation it triggered, so
// the attribute set stays small.
func recordKey(ctx context.Context, key string, elapsedMs float64) {
	attrs := metric.WithAttributes(attribute.String("key.kind", keyKind(key)))
	keysCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsedMs, metric.WithAttributes(attribute.String("operation", "press")))
}

func keyKind(key string) string {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return "digit"
	case "+", "-", "*", "/":
		return "operator"
	case "=", "Enter":
		return "equals"
	default:
		return "edit"
	}
}
