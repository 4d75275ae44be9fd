package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is matches domain errors by code, so a detail-carrying copy produced by
// WithDetails still matches its sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the error carrying structured detail fields
func (e *DomainError) WithDetails(details map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Inventory and fulfillment errors
var (
	ErrBalanceNotFound      = NewDomainError("BALANCE_NOT_FOUND", "No stock balance exists for this product at this location")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInvalidMovementShape = NewDomainError("INVALID_MOVEMENT_SHAPE", "Movement is missing a required location for its type")
	ErrProductNotFound      = NewDomainError("PRODUCT_NOT_FOUND", "One or more products do not exist")
	ErrNoLocationAvailable  = NewDomainError("NO_LOCATION_AVAILABLE", "No storage location is available to receive stock")
	ErrOrderNotFound        = NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrOrderAlreadyFinal    = NewDomainError("ORDER_ALREADY_FINAL", "Order is in a terminal status and cannot change")
)
