package leave

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	SubStatusPending  = "PENDING"
	SubStatusAccepted = "ACCEPTED"
	SubStatusRejected = "REJECTED"
)

// IsTerminal reports whether a leave request status admits no further
// workflow transitions.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
