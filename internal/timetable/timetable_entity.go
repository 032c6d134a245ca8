package timetable

import (
	"time"

	"github.com/google/uuid"
)

// Entry is either a recurring weekly commitment (Date == nil) or a
// date-specific override created when a substitution is accepted. An
// override for (faculty, date, slot) shadows the recurring entry for the
// same weekday and slot.
type Entry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacultyID uuid.UUID  `gorm:"type:uuid;not null"`
	DayOfWeek string     `gorm:"column:day_of_week;type:varchar(10);not null"`
	Date      *time.Time `gorm:"column:entry_date;type:date"`
	Slot      int        `gorm:"type:int;not null"`
	Subject   string     `gorm:"type:varchar(255);not null"`
	ClassName string     `gorm:"type:varchar(100);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "timetable_entries"
}

// IsOverride reports whether the entry is date-specific.
func (e Entry) IsOverride() bool {
	return e.Date != nil
}
