package faculty

type LeaveBalanceResponse struct {
	Casual   int `json:"casual"`
	Sick     int `json:"sick"`
	Personal int `json:"personal"`
}

type FacultyResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Department   string               `json:"department"`
	LeaveBalance LeaveBalanceResponse `json:"leave_balance"`
}
