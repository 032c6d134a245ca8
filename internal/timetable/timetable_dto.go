package timetable

type CreateEntryRequest struct {
	FacultyID string `json:"faculty_id" binding:"required,uuid"`
	DayOfWeek string `json:"day_of_week" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slot      int    `json:"slot" binding:"required,min=1,max=8"`
	Subject   string `json:"subject" binding:"required"`
	ClassName string `json:"class_name" binding:"required"`
}

type EntryResponse struct {
	ID        string `json:"id"`
	FacultyID string `json:"faculty_id"`
	DayOfWeek string `json:"day_of_week"`
	Date      string `json:"date,omitempty"`
	Slot      int    `json:"slot"`
	Subject   string `json:"subject"`
	ClassName string `json:"class_name"`
}
