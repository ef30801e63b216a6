package constants

// Context keys for validated requests
const (
	ContextKeyContactRequest        = "contactRequest"
	ContextKeyServiceInquiryRequest = "serviceInquiryRequest"
)

// Request-scoped context keys
const (
	ContextKeyRequestID      = "RequestID"
	ContextKeyRawBody        = "rawBody"
	ContextKeyBodyValidation = "bodyValidation"
)
