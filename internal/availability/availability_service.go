package availability

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sources are the narrow read views the resolver needs. The engine is
// server-authoritative: every candidate list comes from these snapshots,
// never from anything a client computed.

type FacultySource interface {
	Snapshot(ctx context.Context) ([]FacultySnapshot, error)
}

type TimetableSource interface {
	// Snapshot returns the master schedule plus the overrides for the date.
	Snapshot(ctx context.Context, date time.Time) ([]TimetableSnapshot, error)
}

type LeaveSource interface {
	// Snapshot returns leave requests whose range overlaps the date,
	// regardless of status; the resolver filters to live ones itself.
	Snapshot(ctx context.Context, date time.Time) ([]LeaveSnapshot, error)
}

//go:generate mockgen -source=availability_service.go -destination=mock/availability_service_mock.go -package=mock
type Service interface {
	ResolveAvailability(ctx context.Context, date time.Time, slot int, excludeFacultyID string) ([]Candidate, error)
}

type service struct {
	faculty   FacultySource
	timetable TimetableSource
	leaves    LeaveSource
	logger    *zap.Logger
}

func NewService(facultySrc FacultySource, timetableSrc TimetableSource, leaveSrc LeaveSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("availability.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.service")
	}
	return &service{
		faculty:   facultySrc,
		timetable: timetableSrc,
		leaves:    leaveSrc,
		logger:    l,
	}
}

func (s *service) ResolveAvailability(ctx context.Context, date time.Time, slot int, excludeFacultyID string) ([]Candidate, error) {
	allFaculty, err := s.faculty.Snapshot(ctx)
	if err != nil {
		s.logger.Error("resolve availability faculty snapshot failed", zap.Error(err))
		return nil, err
	}

	timetable, err := s.timetable.Snapshot(ctx, date)
	if err != nil {
		s.logger.Error("resolve availability timetable snapshot failed", zap.Error(err))
		return nil, err
	}

	leaves, err := s.leaves.Snapshot(ctx, date)
	if err != nil {
		s.logger.Error("resolve availability leave snapshot failed", zap.Error(err))
		return nil, err
	}

	candidates := Resolve(date, slot, excludeFacultyID, allFaculty, timetable, leaves)

	s.logger.Debug("availability resolved",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("slot", slot),
		zap.String("exclude_faculty_id", excludeFacultyID),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}
