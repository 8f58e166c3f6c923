package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization   = "Authorization"
	HeaderStripeSignature = "Stripe-Signature"
	HeaderXRequestID      = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"

	// Default redirect targets of the auth callback
	DefaultPostLoginPath = "/dashboard"
	LoginPath            = "/login"
)

// Database table names
const (
	TableProfiles      = "profiles"
	TableSubscriptions = "subscriptions"
	TableDreamEntries  = "dream_entries"
	TableDreamMetadata = "dream_metadata"
	TableDreamInsights = "dream_insights"
)
