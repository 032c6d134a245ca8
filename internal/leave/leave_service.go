package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"uni-leave-portal/internal/availability"
	"uni-leave-portal/internal/domain"
	"uni-leave-portal/internal/events"
	"uni-leave-portal/internal/faculty"
	leaveerrors "uni-leave-portal/internal/leave/errors"
	"uni-leave-portal/internal/messaging/kafka"
	"uni-leave-portal/internal/shared/contextutil"
	"uni-leave-portal/internal/shared/counter"
	"uni-leave-portal/internal/timetable"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Medical leave is the only multi-day type and has to cover a real
	// convalescence period.
	minMedicalLeaveDays = 10

	sentinelCandidateName = "None Available"
	adminAssignedSuffix   = " (Admin Assigned)"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, facultyID, facultyName string, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, requesterID, role string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, leaveID, requesterID, role string) (LeaveResponse, error)
	RespondToSubstitution(ctx context.Context, leaveID, candidateID string, req RespondSubstitutionRequest) (LeaveResponse, error)
	ForceAssignSubstitute(ctx context.Context, leaveID string, req ForceAssignRequest) (LeaveResponse, error)
	SetLeaveStatus(ctx context.Context, leaveID, deciderID, deciderRole string, req SetStatusRequest) (LeaveResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	timetableRepo timetable.Repository
	facultySvc    faculty.Service
	resolver      availability.Service
	counter       counter.Repository
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	timetableRepo timetable.Repository,
	facultySvc faculty.Service,
	resolver availability.Service,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		timetableRepo: timetableRepo,
		facultySvc:    facultySvc,
		resolver:      resolver,
		counter:       counterRepo,
		outbox:        outboxRepo,
		logger:        l,
	}
}

// Submit validates the request, resolves substitute candidates for every
// affected class occurrence and persists the request with its substitution
// rows in one shot. A non-medical request is rejected outright when any
// affected slot has no candidate; a medical request gets a sentinel row for
// that slot so the admin can fill it later.
func (s *service) Submit(ctx context.Context, facultyID, facultyName string, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	fid, err := uuid.Parse(facultyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidFacultyID
	}

	// binding only rejects the empty string, not whitespace
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	end := start
	if req.LeaveType == domain.LeaveTypeMedical {
		if req.EndDate == "" {
			return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
		}
		end, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
		}
	}

	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	totalDays := int(end.Sub(start).Hours()/24) + 1
	if req.LeaveType == domain.LeaveTypeMedical && totalDays < minMedicalLeaveDays {
		return LeaveResponse{}, leaveerrors.ErrMedicalLeaveTooShort
	}

	duplicate, err := s.repo.HasLiveRequestBetween(ctx, facultyID, start, end)
	if err != nil {
		s.logger.Error("submit leave duplicate check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if duplicate {
		return LeaveResponse{}, leaveerrors.ErrDuplicateLeave
	}

	subs, err := s.buildSubstitutions(ctx, facultyID, req.LeaveType, start, end)
	if err != nil {
		return LeaveResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, "leave_request", start.Year())
	if err != nil {
		s.logger.Error("submit leave generate number failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("LR-%d-%06d", start.Year(), seq),
		FacultyID:     fid,
		FacultyName:   facultyName,
		LeaveType:     req.LeaveType,
		StartDate:     start,
		EndDate:       end,
		TotalDays:     totalDays,
		Reason:        req.Reason,
		Status:        StatusPending,
		Substitutions: subs,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("leave_type", l.LeaveType),
		zap.Int("substitution_rows", len(subs)),
	)
	return mapToResponse(*l), nil
}

// buildSubstitutions walks each day of the range, finds the requester's
// recurring classes for that weekday and broadcasts one pending row per
// available candidate for every (date, slot) occurrence.
func (s *service) buildSubstitutions(ctx context.Context, facultyID, leaveType string, start, end time.Time) ([]Substitution, error) {
	var subs []Substitution

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		classes, err := s.timetableRepo.FindRecurring(ctx, facultyID, day.Weekday().String())
		if err != nil {
			s.logger.Error("submit leave timetable lookup failed",
				zap.String("faculty_id", facultyID),
				zap.Error(err),
			)
			return nil, err
		}

		for _, class := range classes {
			candidates, err := s.resolver.ResolveAvailability(ctx, day, class.Slot, facultyID)
			if err != nil {
				return nil, err
			}

			if len(candidates) == 0 {
				if leaveType != domain.LeaveTypeMedical {
					return nil, leaveerrors.ErrNoSubstituteAvailable
				}
				subs = append(subs, Substitution{
					ID:            uuid.New(),
					Date:          day,
					Slot:          class.Slot,
					Subject:       class.Subject,
					ClassName:     class.ClassName,
					CandidateName: sentinelCandidateName,
					Status:        SubStatusPending,
				})
				continue
			}

			for _, c := range candidates {
				cid := uuid.MustParse(c.FacultyID)
				subs = append(subs, Substitution{
					ID:            uuid.New(),
					Date:          day,
					Slot:          class.Slot,
					Subject:       class.Subject,
					ClassName:     class.ClassName,
					CandidateID:   &cid,
					CandidateName: c.Name,
					Status:        SubStatusPending,
				})
			}
		}
	}

	return subs, nil
}

func (s *service) GetAll(ctx context.Context, requesterID, role string) ([]LeaveResponse, error) {
	var (
		rows []LeaveRequest
		err  error
	)
	if domain.IsApprover(role) {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindForFaculty(ctx, requesterID)
	}
	if err != nil {
		s.logger.Error("get all leave requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, leaveID, requesterID, role string) (LeaveResponse, error) {
	l, err := s.findLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if !domain.IsApprover(role) && !concernsFaculty(l, requesterID) {
		return LeaveResponse{}, leaveerrors.ErrNotAuthorized
	}
	return mapToResponse(*l), nil
}

// RespondToSubstitution records a candidate's accept or decline. Accepting
// is first-writer-wins per (date, slot) key: the status flip and the
// no-accepted-sibling precondition run as one conditional update, and the
// winner gets a cover entry on their timetable plus a filled event, all in
// the same transaction.
func (s *service) RespondToSubstitution(ctx context.Context, leaveID, candidateID string, req RespondSubstitutionRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	l, err := s.findLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status == StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrSubstitutionClosed
	}

	sub, err := s.repo.FindSubstitution(ctx, leaveID, date, req.Slot, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrSubstitutionNotFound
		}
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if sub.Status != SubStatusPending {
		return LeaveResponse{}, leaveerrors.ErrSubstitutionClosed
	}

	if !*req.Accept {
		rows, err := s.repo.RejectSubstitution(ctx, sub.ID.String())
		if err != nil {
			s.logger.Error("reject substitution failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
		if rows == 0 {
			return LeaveResponse{}, leaveerrors.ErrSubstitutionClosed
		}
		s.logger.Info("substitution declined",
			zap.String("request_id", rid),
			zap.String("leave_id", leaveID),
			zap.String("candidate_id", candidateID),
			zap.Int("slot", req.Slot),
		)
		return s.GetByID(ctx, leaveID, candidateID, domain.RoleAdmin)
	}

	// the candidate was free at broadcast time but may have picked up
	// another cover entry since
	busy, err := s.timetableRepo.IsBusyAt(ctx, candidateID, date, date.Weekday().String(), req.Slot)
	if err != nil {
		s.logger.Error("accept substitution busy check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if busy {
		return LeaveResponse{}, leaveerrors.ErrCandidateBusy
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("accept substitution begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.AcceptSubstitution(ctx, sub.ID.String(), leaveID, date, req.Slot)
	if err != nil {
		s.logger.Error("accept substitution failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if rows == 0 {
		// The guard failed: either a sibling already holds the slot or the
		// row itself was closed under us.
		if _, err := s.repo.FindAcceptedForKey(ctx, leaveID, date, req.Slot); err == nil {
			return LeaveResponse{}, leaveerrors.ErrSlotAlreadyFilled
		}
		return LeaveResponse{}, leaveerrors.ErrSubstitutionClosed
	}

	if err := s.createCoverEntry(ctx, tx, candidateID, date, req.Slot, sub.Subject, sub.ClassName); err != nil {
		s.logger.Error("create cover entry failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueSubstitutionFilled(ctx, tx, rid, l, candidateID, date, req.Slot, false); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("accept substitution commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("substitution accepted",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("candidate_id", candidateID),
		zap.String("date", req.Date),
		zap.Int("slot", req.Slot),
	)
	return s.GetByID(ctx, leaveID, candidateID, domain.RoleAdmin)
}

// ForceAssignSubstitute lets an admin put a named substitute on a slot,
// bypassing acceptance. It works whether the slot is open, filled or only has
// the sentinel row: a previously accepted substitute is displaced and their
// cover entry removed.
func (s *service) ForceAssignSubstitute(ctx context.Context, leaveID string, req ForceAssignRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	l, err := s.findLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status == StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	// the slot must be one the request actually generated
	var slotSubject, slotClassName string
	var existing *Substitution
	found := false
	for i := range l.Substitutions {
		row := l.Substitutions[i]
		if row.Date.Format("2006-01-02") != req.Date || row.Slot != req.Slot {
			continue
		}
		found = true
		slotSubject = row.Subject
		slotClassName = row.ClassName
		if row.CandidateID != nil && row.CandidateID.String() == req.CandidateID {
			existing = &l.Substitutions[i]
		}
	}
	if !found {
		return LeaveResponse{}, leaveerrors.ErrSubstitutionNotFound
	}

	candidate, err := s.facultySvc.GetByID(ctx, req.CandidateID)
	if err != nil {
		return LeaveResponse{}, err
	}

	displaced, err := s.repo.FindAcceptedForKey(ctx, leaveID, date, req.Slot)
	hasDisplaced := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("force assign begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.ReleaseAcceptedForKey(ctx, leaveID, date, req.Slot); err != nil {
		s.logger.Error("force assign release slot failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if hasDisplaced && displaced.CandidateID != nil {
		ttx := s.timetableRepo.WithTx(tx)
		if err := ttx.DeleteOverride(ctx, displaced.CandidateID.String(), date, req.Slot); err != nil {
			s.logger.Error("force assign remove displaced cover failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if existing != nil {
		if err := qtx.ForceAcceptSubstitution(ctx, existing.ID.String(), candidate.Name+adminAssignedSuffix); err != nil {
			s.logger.Error("force assign accept failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
	} else {
		cid := uuid.MustParse(req.CandidateID)
		if err := qtx.InsertSubstitution(ctx, &Substitution{
			ID:             uuid.New(),
			LeaveRequestID: l.ID,
			Date:           date,
			Slot:           req.Slot,
			Subject:        slotSubject,
			ClassName:      slotClassName,
			CandidateID:    &cid,
			CandidateName:  candidate.Name + adminAssignedSuffix,
			Status:         SubStatusAccepted,
		}); err != nil {
			s.logger.Error("force assign insert failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
	}

	// the cover entry carries the annotation too so the day view shows who
	// put the substitute there
	if err := s.createCoverEntry(ctx, tx, req.CandidateID, date, req.Slot, slotSubject+adminAssignedSuffix, slotClassName); err != nil {
		s.logger.Error("force assign cover entry failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueSubstitutionFilled(ctx, tx, rid, l, req.CandidateID, date, req.Slot, true); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("force assign commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("substitute force assigned",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("candidate_id", req.CandidateID),
		zap.String("date", req.Date),
		zap.Int("slot", req.Slot),
	)
	return s.GetByID(ctx, leaveID, req.CandidateID, domain.RoleAdmin)
}

// SetLeaveStatus is the terminal workflow transition. The Pending-status
// precondition, the status write and, on approval, the balance debit commit
// as one unit, so a double approval can never debit twice.
func (s *service) SetLeaveStatus(ctx context.Context, leaveID, deciderID, deciderRole string, req SetStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !domain.IsApprover(deciderRole) {
		return LeaveResponse{}, leaveerrors.ErrApproverRoleRequired
	}
	if _, err := uuid.Parse(deciderID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidFacultyID
	}

	l, err := s.findLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if IsTerminal(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.UpdateStatusIfPending(ctx, leaveID, req.Status, deciderID)
	if err != nil {
		s.logger.Error("set leave status failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if rows == 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	if req.Status == StatusApproved {
		if err := s.facultySvc.DebitLeaveBalance(ctx, tx, l.FacultyID.String(), l.LeaveType, 1); err != nil {
			return LeaveResponse{}, err
		}
	}

	if s.outbox != nil {
		eventType := "leave_rejected"
		if req.Status == StatusApproved {
			eventType = "leave_approved"
		}
		event, err := kafka.NewOutboxEvent(rid, "leave_request", l.ID.String(), eventType, events.LeaveLifecycleTopic,
			events.LeaveStatusChangedEvent{
				EventType:     eventType,
				RequestID:     rid,
				LeaveID:       l.ID.String(),
				RequestNumber: l.RequestNumber,
				FacultyID:     l.FacultyID.String(),
				LeaveType:     l.LeaveType,
				Status:        req.Status,
				StartDate:     l.StartDate.Format("2006-01-02"),
				EndDate:       l.EndDate.Format("2006-01-02"),
				OccurredAt:    time.Now().UTC(),
			})
		if err != nil {
			return LeaveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("set leave status outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set leave status commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave status decided",
		zap.String("request_id", rid),
		zap.String("leave_id", leaveID),
		zap.String("status", req.Status),
		zap.String("decided_by", deciderID),
	)
	return s.GetByID(ctx, leaveID, deciderID, deciderRole)
}

func (s *service) findLeave(ctx context.Context, leaveID string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, mapRepositoryError(err)
	}
	return l, nil
}

func (s *service) createCoverEntry(ctx context.Context, tx *sql.Tx, candidateID string, date time.Time, slot int, subject, className string) error {
	cid := uuid.MustParse(candidateID)
	d := date
	return s.timetableRepo.WithTx(tx).Create(ctx, &timetable.Entry{
		ID:        uuid.New(),
		FacultyID: cid,
		DayOfWeek: date.Weekday().String(),
		Date:      &d,
		Slot:      slot,
		Subject:   "Sub: " + subject,
		ClassName: className,
	})
}

func (s *service) queueSubstitutionFilled(ctx context.Context, tx *sql.Tx, rid string, l *LeaveRequest, candidateID string, date time.Time, slot int, forced bool) error {
	if s.outbox == nil {
		return nil
	}

	eventType := "substitution_accepted"
	if forced {
		eventType = "substitution_force_assigned"
	}
	event, err := kafka.NewOutboxEvent(rid, "substitution", l.ID.String(), eventType, events.SubstitutionFilledTopic,
		events.SubstitutionFilledEvent{
			EventType:     eventType,
			RequestID:     rid,
			LeaveID:       l.ID.String(),
			SubstituteID:  candidateID,
			Date:          date.Format("2006-01-02"),
			Slot:          slot,
			ForceAssigned: forced,
			OccurredAt:    time.Now().UTC(),
		})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("substitution filled outbox persist failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	return nil
}

// concernsFaculty reports whether the faculty member owns the request or was
// offered one of its substitution slots.
func concernsFaculty(l *LeaveRequest, facultyID string) bool {
	if l.FacultyID.String() == facultyID {
		return true
	}
	for _, sub := range l.Substitutions {
		if !sub.IsSentinel() && sub.CandidateID.String() == facultyID {
			return true
		}
	}
	return false
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	accepted := make(map[string]bool)
	for _, sub := range l.Substitutions {
		if sub.Status == SubStatusAccepted {
			accepted[sub.Date.Format("2006-01-02")+"#"+fmt.Sprint(sub.Slot)] = true
		}
	}

	subs := make([]SubstitutionResponse, len(l.Substitutions))
	for i, sub := range l.Substitutions {
		key := sub.Date.Format("2006-01-02") + "#" + fmt.Sprint(sub.Slot)
		resp := SubstitutionResponse{
			ID:            sub.ID.String(),
			Date:          sub.Date.Format("2006-01-02"),
			Slot:          sub.Slot,
			Subject:       sub.Subject,
			ClassName:     sub.ClassName,
			CandidateName: sub.CandidateName,
			Status:        sub.Status,
		}
		if !sub.IsSentinel() {
			resp.CandidateID = sub.CandidateID.String()
		}
		if sub.Status == SubStatusPending && accepted[key] {
			resp.Superseded = true
		}
		subs[i] = resp
	}

	resp := LeaveResponse{
		ID:            l.ID.String(),
		RequestNumber: l.RequestNumber,
		FacultyID:     l.FacultyID.String(),
		FacultyName:   l.FacultyName,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		Status:        l.Status,
		Substitutions: subs,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
