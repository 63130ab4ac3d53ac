package domain

// Confirmation is the tri-state outcome of classifying a yes/no reply.
type Confirmation string

const (
	Confirm Confirmation = "CONFIRM"
	Decline Confirmation = "DECLINE"
	Unknown Confirmation = "UNKNOWN"
)
