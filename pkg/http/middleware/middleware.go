package middleware

// Locals keys shared between handlers and the unified response middleware.
const (
	DETAIL    = "detail"
	OPERATION = "operation"
	CLAIMS    = "claims"
)
