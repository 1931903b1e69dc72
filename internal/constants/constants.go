package constants

// Session and context keys
const (
	SessionCookieName = "schedule_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Authentication
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Calendar
const (
	// DateFormat is the wire format for every date value.
	DateFormat = "2006-01-02"

	DaysPerWeek = 7

	// MaxInferredRangeDays caps how far the date-range inference walks in
	// each direction from the anchor task.
	MaxInferredRangeDays = 31

	// MaxCreateRangeDays caps how many daily replicas a single create may
	// produce.
	MaxCreateRangeDays = 62
)
