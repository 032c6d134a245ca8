package timetable

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timetable_repo.go -destination=mock/timetable_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	FindForFaculty(ctx context.Context, facultyID string) ([]Entry, error)
	// FindForDate returns the full master schedule plus the overrides for
	// the given date, which is what a day view needs to lay out.
	FindForDate(ctx context.Context, date time.Time) ([]Entry, error)
	FindRecurring(ctx context.Context, facultyID, dayOfWeek string) ([]Entry, error)
	// IsBusyAt checks the override for (faculty, date, slot) first and only
	// falls back to the recurring entry when no override exists.
	IsBusyAt(ctx context.Context, facultyID string, date time.Time, dayOfWeek string, slot int) (bool, error)
	// DeleteOverride removes a date-specific cover entry, used when an admin
	// reassignment displaces the substitute who previously held the slot.
	DeleteOverride(ctx context.Context, facultyID string, date time.Time, slot int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	if r.tx != nil {
		var date any
		if e.Date != nil {
			date = e.Date.Format("2006-01-02")
		}
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO timetable_entries (faculty_id, day_of_week, entry_date, slot, subject, class_name)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.FacultyID, e.DayOfWeek, date, e.Slot, e.Subject, e.ClassName)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindForFaculty(ctx context.Context, facultyID string) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("day_of_week ASC, slot ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindForDate(ctx context.Context, date time.Time) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("entry_date IS NULL OR entry_date = ?", date.Format("2006-01-02")).
		Order("slot ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecurring(ctx context.Context, facultyID, dayOfWeek string) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Where("day_of_week = ?", dayOfWeek).
		Where("entry_date IS NULL").
		Order("slot ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) IsBusyAt(ctx context.Context, facultyID string, date time.Time, dayOfWeek string, slot int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("faculty_id = ?", facultyID).
		Where("slot = ?", slot).
		Where("entry_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("faculty_id = ?", facultyID).
		Where("slot = ?", slot).
		Where("day_of_week = ?", dayOfWeek).
		Where("entry_date IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteOverride(ctx context.Context, facultyID string, date time.Time, slot int) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			DELETE FROM timetable_entries
			WHERE faculty_id = $1 AND entry_date = $2 AND slot = $3
		`, facultyID, date.Format("2006-01-02"), slot)
		return err
	}
	return r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Where("entry_date = ?", date.Format("2006-01-02")).
		Where("slot = ?", slot).
		Delete(&Entry{}).Error
}
