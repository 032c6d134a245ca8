package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	FacultyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_faculty_dates"`
	FacultyName   string    `gorm:"type:varchar(255);not null"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_faculty_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_faculty_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	Status    string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// One row per offered candidate for each affected class occurrence;
	// several rows may share a (date, slot) key during a broadcast.
	Substitutions []Substitution `gorm:"foreignKey:LeaveRequestID"`
}

// Substitution is its own table rather than an embedded document so the
// accept transition can be a single conditional row update.
type Substitution struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_substitutions_slot_key"`

	Date      time.Time `gorm:"column:class_date;type:date;not null;index:idx_substitutions_slot_key"`
	Slot      int       `gorm:"type:int;not null;index:idx_substitutions_slot_key"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	ClassName string    `gorm:"type:varchar(100);not null"`

	// nil marks the sentinel row: nobody was available at submission time
	CandidateID   *uuid.UUID `gorm:"type:uuid;index"`
	CandidateName string     `gorm:"type:varchar(255);not null"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Substitution) TableName() string {
	return "substitutions"
}

// IsSentinel reports whether the row is the no-candidate placeholder.
func (s Substitution) IsSentinel() bool {
	return s.CandidateID == nil
}
