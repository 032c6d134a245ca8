package leave

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=CASUAL MEDICAL PERSONAL"`
	StartDate string `json:"start_date" binding:"required"`
	// Only medical leave spans multiple days; ignored for other types.
	EndDate string `json:"end_date"`
	Reason  string `json:"reason" binding:"required"`
}

type RespondSubstitutionRequest struct {
	Date   string `json:"date" binding:"required"`
	Slot   int    `json:"slot" binding:"required,min=1"`
	Accept *bool  `json:"accept" binding:"required"`
}

type ForceAssignRequest struct {
	Date        string `json:"date" binding:"required"`
	Slot        int    `json:"slot" binding:"required,min=1"`
	CandidateID string `json:"candidate_id" binding:"required,uuid"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type SubstitutionResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Slot          int    `json:"slot"`
	Subject       string `json:"subject"`
	ClassName     string `json:"class_name"`
	CandidateID   string `json:"candidate_id,omitempty"`
	CandidateName string `json:"candidate_name"`
	Status        string `json:"status"`
	// A pending sibling whose (date, slot) key is already filled is
	// superseded: it stays open in storage but a response to it is a no-op.
	Superseded bool `json:"superseded,omitempty"`
}

type LeaveResponse struct {
	ID            string                 `json:"id"`
	RequestNumber string                 `json:"request_number"`
	FacultyID     string                 `json:"faculty_id"`
	FacultyName   string                 `json:"faculty_name"`
	LeaveType     string                 `json:"leave_type"`
	StartDate     string                 `json:"start_date"`
	EndDate       string                 `json:"end_date"`
	TotalDays     int                    `json:"total_days"`
	Reason        string                 `json:"reason"`
	Status        string                 `json:"status"`
	DecidedBy     *string                `json:"decided_by,omitempty"`
	DecidedAt     *string                `json:"decided_at,omitempty"`
	Substitutions []SubstitutionResponse `json:"substitutions"`
}
