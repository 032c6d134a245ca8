package leave

import (
	"context"
	"time"

	"uni-leave-portal/internal/availability"
)

type leaveSource struct {
	repo Repository
}

// NewLeaveSource adapts the leave repository to the resolver's snapshot
// view. All overlapping requests are returned; the resolver decides which
// statuses reserve the day.
func NewLeaveSource(repo Repository) availability.LeaveSource {
	return &leaveSource{repo: repo}
}

func (s *leaveSource) Snapshot(ctx context.Context, date time.Time) ([]availability.LeaveSnapshot, error) {
	rows, err := s.repo.FindOverlappingDate(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]availability.LeaveSnapshot, len(rows))
	for i, l := range rows {
		out[i] = availability.LeaveSnapshot{
			FacultyID: l.FacultyID.String(),
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			Status:    l.Status,
		}
	}
	return out, nil
}
