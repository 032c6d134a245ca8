package availability

import (
	"context"
	"time"

	"uni-leave-portal/internal/faculty"
	"uni-leave-portal/internal/timetable"
)

// Adapters from the concrete repositories to the resolver's snapshot views.
// The leave source lives in the leave package to avoid an import cycle.

type facultySource struct {
	repo faculty.Repository
}

func NewFacultySource(repo faculty.Repository) FacultySource {
	return &facultySource{repo: repo}
}

func (s *facultySource) Snapshot(ctx context.Context) ([]FacultySnapshot, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]FacultySnapshot, len(rows))
	for i, f := range rows {
		out[i] = FacultySnapshot{
			ID:   f.ID.String(),
			Name: f.Name,
		}
	}
	return out, nil
}

type timetableSource struct {
	repo timetable.Repository
}

func NewTimetableSource(repo timetable.Repository) TimetableSource {
	return &timetableSource{repo: repo}
}

func (s *timetableSource) Snapshot(ctx context.Context, date time.Time) ([]TimetableSnapshot, error) {
	rows, err := s.repo.FindForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]TimetableSnapshot, len(rows))
	for i, e := range rows {
		out[i] = TimetableSnapshot{
			FacultyID: e.FacultyID.String(),
			DayOfWeek: e.DayOfWeek,
			Date:      e.Date,
			Slot:      e.Slot,
		}
	}
	return out, nil
}
