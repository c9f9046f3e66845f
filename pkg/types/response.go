package types

// SuccessEnvelope wraps every successful storefront response under a single
// data key, so cart views and health payloads share one shape.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body: a stable machine code plus a message
// safe to show. Details carry field-level validation feedback when allowed.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
