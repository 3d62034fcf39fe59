package calculator

import (
	"context"
	"errors"
	"net/http"

	"keypad-calculator/internal/engine"
	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Error kinds reported to keypads in SessionErrorResponse.Kind.
const (
	KindDisplayParse   = "display_parse"
	KindDivisionByZero = "division_by_zero"
	KindOutOfRange     = "out_of_range"
	KindUnknownKey     = "unknown_key"
	KindInvalidInput   = "invalid_input"
)

// classify maps an engine error to its kind. Only division by zero asks the
// keypad for a blocking dialog.
func classify(err error) (kind string, modal bool) {
	var perr *engine.DisplayParseError
	switch {
	case errors.As(err, &perr):
		return KindDisplayParse, false
	case errors.Is(err, engine.ErrDivisionByZero):
		return KindDivisionByZero, true
	case errors.Is(err, engine.ErrOutOfRange):
		return KindOutOfRange, false
	case errors.Is(err, engine.ErrUnknownKey):
		return KindUnknownKey, false
	default:
		return KindInvalidInput, false
	}
}

// writeEngineError observes an engine failure and answers 422 with the
// session state the failure left behind.
func writeEngineError(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, id string, st engine.State, err error, applied *int) {
	kind, modal := classify(err)
	span.SetAttributes(attribute.String("calculator.error.kind", kind))

	observability.ObserveError(ctx, span, logger, errorCounter, kind, "calculator input rejected", err)

	resp := SessionErrorResponse{
		Error:   err.Error(),
		Kind:    kind,
		Modal:   modal,
		Applied: applied,
		State:   newSessionResponse(id, st),
	}

	var perr *engine.DisplayParseError
	if errors.As(err, &perr) {
		resp.Text = perr.Text
	}

	handlers.WriteJSON(w, http.StatusUnprocessableEntity, resp)
}
