package calculator

import "keypad-calculator/internal/engine"

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Operator string  `json:"operator"` // "+", "-", "*" or "/"
}

// CalcResponse is the JSON response for the stateless calculator endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // "add", "subtract", "multiply", "divide" or the operator symbol
	Value float64 `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"` // starting value
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// SessionResponse is what a keypad renders: the display, the memo line and
// the pending operator used for focus hints.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Display   string `json:"display"`
	Memo      string `json:"memo"`
	Operator  string `json:"operator"`
}

func newSessionResponse(id string, st engine.State) SessionResponse {
	return SessionResponse{
		SessionID: id,
		Display:   st.Display,
		Memo:      st.Memo,
		Operator:  string(st.Operator),
	}
}

// PressRequest is the JSON body for POST /calculator/sessions/{sessionID}/press.
type PressRequest struct {
	Key string `json:"key"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{sessionID}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// KeysResponse reports the session state after every key was applied.
type KeysResponse struct {
	SessionResponse
	Applied int `json:"applied"`
}

// SessionErrorResponse is returned when the engine rejects an input. The
// session state after the failure is included so the keypad can redraw.
type SessionErrorResponse struct {
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
	Text    string          `json:"text,omitempty"`  // offending display text for display_parse
	Modal   bool            `json:"modal,omitempty"` // the keypad should block with a dialog
	Applied *int            `json:"applied,omitempty"`
	State   SessionResponse `json:"state"`
}
