package grant

// Status is the closed enumeration of grant statuses.
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusActive     Status = "active"
	StatusApproved   Status = "approved"
	StatusClosed     Status = "closed"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
	StatusPending    Status = "pending"
	StatusUnknown    Status = "unknown"
)

// IsValid checks if the status is a member of the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusAccepted, StatusActive, StatusApproved, StatusClosed,
		StatusCompleted, StatusTerminated, StatusPending, StatusUnknown:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
