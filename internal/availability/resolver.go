package availability

import (
	"sort"
	"time"
)

// Snapshots are plain copies of the three record collections the resolver
// reads. Keeping them as values makes Resolve a pure function: same inputs,
// same candidates, no hidden state.

type FacultySnapshot struct {
	ID   string
	Name string
}

type TimetableSnapshot struct {
	FacultyID string
	DayOfWeek string
	Date      *time.Time // nil for recurring weekly entries
	Slot      int
}

type LeaveSnapshot struct {
	FacultyID string
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

type Candidate struct {
	FacultyID string
	Name      string
}

// live request statuses that reserve the day
const (
	statusPending  = "PENDING"
	statusApproved = "APPROVED"
)

// Resolve returns the faculty free to substitute at (date, slot), excluding
// the requester. A faculty member is out when a Pending or Approved leave
// covers the date (a pending request already reserves the day so approval
// in flight cannot double-book), or when they teach at that slot: a
// date-specific override decides first, otherwise the recurring entry for
// the weekday does. Candidates come back sorted by name then id, and an
// empty result is a normal outcome the caller has to handle.
func Resolve(
	date time.Time,
	slot int,
	excludeFacultyID string,
	allFaculty []FacultySnapshot,
	timetable []TimetableSnapshot,
	leaves []LeaveSnapshot,
) []Candidate {
	dayOfWeek := date.Weekday().String()
	dateKey := date.Format("2006-01-02")

	onLeave := make(map[string]struct{})
	for _, l := range leaves {
		if l.Status != statusPending && l.Status != statusApproved {
			continue
		}
		if covers(l.StartDate, l.EndDate, date) {
			onLeave[l.FacultyID] = struct{}{}
		}
	}

	// index the timetable by faculty so the per-candidate check is a map
	// lookup instead of a scan per candidate
	overrides := make(map[string]bool)
	recurring := make(map[string]bool)
	for _, t := range timetable {
		if t.Slot != slot {
			continue
		}
		if t.Date != nil {
			if t.Date.Format("2006-01-02") == dateKey {
				overrides[t.FacultyID] = true
			}
			continue
		}
		if t.DayOfWeek == dayOfWeek {
			recurring[t.FacultyID] = true
		}
	}

	candidates := make([]Candidate, 0, len(allFaculty))
	for _, f := range allFaculty {
		if f.ID == excludeFacultyID {
			continue
		}
		if _, out := onLeave[f.ID]; out {
			continue
		}

		busy := recurring[f.ID]
		if overrides[f.ID] {
			busy = true
		}
		if busy {
			continue
		}

		candidates = append(candidates, Candidate{FacultyID: f.ID, Name: f.Name})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Name != candidates[j].Name {
			return candidates[i].Name < candidates[j].Name
		}
		return candidates[i].FacultyID < candidates[j].FacultyID
	})

	return candidates
}

func covers(start, end, date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(start.Truncate(24*time.Hour)) && !d.After(end.Truncate(24*time.Hour))
}
