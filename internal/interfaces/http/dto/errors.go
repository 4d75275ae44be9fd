package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry the same codes, so
// the handler layer maps them straight through.

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when creating a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Inventory and fulfillment error codes
const (
	// ErrCodeBalanceNotFound is used when no balance exists for a product/location pair
	ErrCodeBalanceNotFound = "BALANCE_NOT_FOUND"
	// ErrCodeInsufficientStock is used when stock cannot cover a decrease
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	// ErrCodeInvalidMovementShape is used when a movement lacks a required location
	ErrCodeInvalidMovementShape = "INVALID_MOVEMENT_SHAPE"
	// ErrCodeProductNotFound is used when referenced products do not exist
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	// ErrCodeNoLocationAvailable is used when no location can receive stock
	ErrCodeNoLocationAvailable = "NO_LOCATION_AVAILABLE"
	// ErrCodeOrderNotFound is used when the order does not exist
	ErrCodeOrderNotFound = "ORDER_NOT_FOUND"
	// ErrCodeOrderAlreadyFinal is used when a terminal order refuses a transition
	ErrCodeOrderAlreadyFinal = "ORDER_ALREADY_FINAL"
)

// Request handling error codes
const (
	// ErrCodeDuplicateRequest is used when an idempotency key replays
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	// ErrCodeRequestTooLarge is used when the body exceeds the size limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Not-found family -> 404
	ErrCodeBalanceNotFound:     http.StatusNotFound,
	ErrCodeProductNotFound:     http.StatusNotFound,
	ErrCodeOrderNotFound:       http.StatusNotFound,
	ErrCodeNoLocationAvailable: http.StatusNotFound,

	// Business rule violations -> 422
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeOrderAlreadyFinal: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,

	// Shape/validation -> 400
	ErrCodeInvalidMovementShape: http.StatusBadRequest,

	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
