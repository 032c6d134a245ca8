package domain

const (
	LeaveTypeCasual   = "CASUAL"
	LeaveTypeMedical  = "MEDICAL"
	LeaveTypePersonal = "PERSONAL"
)

// BalanceBucket maps a leave type to the ledger bucket it debits. Medical
// leave draws from the sick bucket. Empty string means unknown type.
func BalanceBucket(leaveType string) string {
	switch leaveType {
	case LeaveTypeCasual:
		return "casual"
	case LeaveTypeMedical:
		return "sick"
	case LeaveTypePersonal:
		return "personal"
	default:
		return ""
	}
}
