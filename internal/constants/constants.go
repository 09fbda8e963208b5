package constants

import "time"

// Context keys
const (
	ContextKeyEmployeeID = "employee_id"
	ContextKeyEmployee   = "employee"
	ContextKeyCommitment = "commitment"
)

// HeaderEmployeeID carries the caller's employee id, set by the gateway in front of the API.
const HeaderEmployeeID = "X-Employee-ID"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Dashboard
const RecentItemsLimit = 5

// Notifications
const (
	NotificationEvent        = "ReceiveNotification"
	NotificationBufferSize   = 16
	NotificationHeartbeat    = 30 * time.Second
	DefaultOverdueScanPeriod = 60 * time.Second
)
