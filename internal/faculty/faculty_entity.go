package faculty

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Faculty struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null"`
	Password   string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'FACULTY'"`
	Department string    `gorm:"type:varchar(100)"`

	// Leave balance buckets, mutated only through DebitLeaveBalance.
	CasualBalance   int `gorm:"type:int;not null;default:12"`
	SickBalance     int `gorm:"type:int;not null;default:10"`
	PersonalBalance int `gorm:"type:int;not null;default:5"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Faculty) TableName() string {
	return "faculty"
}
