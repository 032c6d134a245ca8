package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"uni-leave-portal/internal/availability"
	"uni-leave-portal/internal/domain"
	"uni-leave-portal/internal/faculty"
	"uni-leave-portal/internal/leave"
	leaveerrors "uni-leave-portal/internal/leave/errors"
	"uni-leave-portal/internal/messaging/kafka"
	"uni-leave-portal/internal/timetable"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn                func(tx *sql.Tx) leave.Repository
	createFn                func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn              func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findAllFn               func(ctx context.Context) ([]leave.LeaveRequest, error)
	findForFacultyFn        func(ctx context.Context, facultyID string) ([]leave.LeaveRequest, error)
	findOverlappingDateFn   func(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error)
	hasLiveRequestBetweenFn func(ctx context.Context, facultyID string, start, end time.Time) (bool, error)
	findSubstitutionFn      func(ctx context.Context, leaveID string, date time.Time, slot int, candidateID string) (*leave.Substitution, error)
	findAcceptedForKeyFn    func(ctx context.Context, leaveID string, date time.Time, slot int) (*leave.Substitution, error)
	acceptSubstitutionFn    func(ctx context.Context, subID, leaveID string, date time.Time, slot int) (int64, error)
	rejectSubstitutionFn    func(ctx context.Context, subID string) (int64, error)
	releaseAcceptedFn       func(ctx context.Context, leaveID string, date time.Time, slot int) (int64, error)
	insertSubstitutionFn    func(ctx context.Context, s *leave.Substitution) error
	forceAcceptFn           func(ctx context.Context, subID, candidateName string) error
	updateStatusIfPendingFn func(ctx context.Context, id, status, decidedBy string) (int64, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindForFaculty(ctx context.Context, facultyID string) ([]leave.LeaveRequest, error) {
	if f.findForFacultyFn != nil {
		return f.findForFacultyFn(ctx, facultyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindOverlappingDate(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	if f.findOverlappingDateFn != nil {
		return f.findOverlappingDateFn(ctx, date)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasLiveRequestBetween(ctx context.Context, facultyID string, start, end time.Time) (bool, error) {
	if f.hasLiveRequestBetweenFn != nil {
		return f.hasLiveRequestBetweenFn(ctx, facultyID, start, end)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindSubstitution(ctx context.Context, leaveID string, date time.Time, slot int, candidateID string) (*leave.Substitution, error) {
	if f.findSubstitutionFn != nil {
		return f.findSubstitutionFn(ctx, leaveID, date, slot, candidateID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (*leave.Substitution, error) {
	if f.findAcceptedForKeyFn != nil {
		return f.findAcceptedForKeyFn(ctx, leaveID, date, slot)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) AcceptSubstitution(ctx context.Context, subID, leaveID string, date time.Time, slot int) (int64, error) {
	if f.acceptSubstitutionFn != nil {
		return f.acceptSubstitutionFn(ctx, subID, leaveID, date, slot)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) RejectSubstitution(ctx context.Context, subID string) (int64, error) {
	if f.rejectSubstitutionFn != nil {
		return f.rejectSubstitutionFn(ctx, subID)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) ReleaseAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (int64, error) {
	if f.releaseAcceptedFn != nil {
		return f.releaseAcceptedFn(ctx, leaveID, date, slot)
	}
	return 0, nil
}

func (f *fakeLeaveRepository) InsertSubstitution(ctx context.Context, s *leave.Substitution) error {
	if f.insertSubstitutionFn != nil {
		return f.insertSubstitutionFn(ctx, s)
	}
	return nil
}

func (f *fakeLeaveRepository) ForceAcceptSubstitution(ctx context.Context, subID, candidateName string) error {
	if f.forceAcceptFn != nil {
		return f.forceAcceptFn(ctx, subID, candidateName)
	}
	return nil
}

func (f *fakeLeaveRepository) UpdateStatusIfPending(ctx context.Context, id, status, decidedBy string) (int64, error) {
	if f.updateStatusIfPendingFn != nil {
		return f.updateStatusIfPendingFn(ctx, id, status, decidedBy)
	}
	return 1, nil
}

type fakeTimetableRepository struct {
	withTxFn         func(tx *sql.Tx) timetable.Repository
	createFn         func(ctx context.Context, e *timetable.Entry) error
	findRecurringFn  func(ctx context.Context, facultyID, dayOfWeek string) ([]timetable.Entry, error)
	isBusyAtFn       func(ctx context.Context, facultyID string, date time.Time, dayOfWeek string, slot int) (bool, error)
	deleteOverrideFn func(ctx context.Context, facultyID string, date time.Time, slot int) error
}

func (f *fakeTimetableRepository) WithTx(tx *sql.Tx) timetable.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimetableRepository) Create(ctx context.Context, e *timetable.Entry) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeTimetableRepository) FindForFaculty(ctx context.Context, facultyID string) ([]timetable.Entry, error) {
	return nil, nil
}

func (f *fakeTimetableRepository) FindForDate(ctx context.Context, date time.Time) ([]timetable.Entry, error) {
	return nil, nil
}

func (f *fakeTimetableRepository) FindRecurring(ctx context.Context, facultyID, dayOfWeek string) ([]timetable.Entry, error) {
	if f.findRecurringFn != nil {
		return f.findRecurringFn(ctx, facultyID, dayOfWeek)
	}
	return nil, nil
}

func (f *fakeTimetableRepository) IsBusyAt(ctx context.Context, facultyID string, date time.Time, dayOfWeek string, slot int) (bool, error) {
	if f.isBusyAtFn != nil {
		return f.isBusyAtFn(ctx, facultyID, date, dayOfWeek, slot)
	}
	return false, nil
}

func (f *fakeTimetableRepository) DeleteOverride(ctx context.Context, facultyID string, date time.Time, slot int) error {
	if f.deleteOverrideFn != nil {
		return f.deleteOverrideFn(ctx, facultyID, date, slot)
	}
	return nil
}

type fakeFacultyService struct {
	getByIDFn func(ctx context.Context, id string) (faculty.FacultyResponse, error)
	debitFn   func(ctx context.Context, tx *sql.Tx, facultyID, leaveType string, amount int) error
}

func (f *fakeFacultyService) GetAll(ctx context.Context) ([]faculty.FacultyResponse, error) {
	return nil, nil
}

func (f *fakeFacultyService) GetByID(ctx context.Context, id string) (faculty.FacultyResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return faculty.FacultyResponse{ID: id, Name: "Someone"}, nil
}

func (f *fakeFacultyService) GetBalance(ctx context.Context, id string) (faculty.LeaveBalanceResponse, error) {
	return faculty.LeaveBalanceResponse{}, nil
}

func (f *fakeFacultyService) DebitLeaveBalance(ctx context.Context, tx *sql.Tx, facultyID, leaveType string, amount int) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, tx, facultyID, leaveType, amount)
	}
	return nil
}

type fakeAvailabilityService struct {
	resolveFn func(ctx context.Context, date time.Time, slot int, excludeFacultyID string) ([]availability.Candidate, error)
}

func (f *fakeAvailabilityService) ResolveAvailability(ctx context.Context, date time.Time, slot int, excludeFacultyID string) ([]availability.Candidate, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, date, slot, excludeFacultyID)
	}
	return nil, nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string, year int) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string, year int) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType, year)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	service       leave.Service
	repo          *fakeLeaveRepository
	timetableRepo *fakeTimetableRepository
	facultySvc    *fakeFacultyService
	resolver      *fakeAvailabilityService
	counter       *fakeCounterRepository
	outbox        *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &leaveServiceDeps{
		db:            db,
		sqlMock:       sqlMock,
		repo:          &fakeLeaveRepository{},
		timetableRepo: &fakeTimetableRepository{},
		facultySvc:    &fakeFacultyService{},
		resolver:      &fakeAvailabilityService{},
		counter:       &fakeCounterRepository{},
		outbox:        &fakeOutboxRepository{},
	}
	deps.service = leave.NewService(
		db,
		deps.repo,
		deps.timetableRepo,
		deps.facultySvc,
		deps.resolver,
		deps.counter,
		deps.outbox,
	)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	facultyID := uuid.New().String()
	candidateA := uuid.New()
	candidateB := uuid.New()

	// 2026-03-02 is a Monday
	mondayClass := timetable.Entry{
		Slot:      2,
		Subject:   "Linear Algebra",
		ClassName: "CS-2A",
	}

	t.Run("success casual with candidate broadcast", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.timetableRepo.findRecurringFn = func(ctx context.Context, fid, day string) ([]timetable.Entry, error) {
			assert.Equal(t, facultyID, fid)
			assert.Equal(t, "Monday", day)
			return []timetable.Entry{mondayClass}, nil
		}
		deps.resolver.resolveFn = func(ctx context.Context, date time.Time, slot int, exclude string) ([]availability.Candidate, error) {
			assert.Equal(t, "2026-03-02", date.Format("2006-01-02"))
			assert.Equal(t, 2, slot)
			assert.Equal(t, facultyID, exclude)
			return []availability.Candidate{
				{FacultyID: candidateA.String(), Name: "Anand"},
				{FacultyID: candidateB.String(), Name: "Bose"},
			}, nil
		}
		deps.counter.getNextValueFn = func(ctx context.Context, counterType string, year int) (int64, error) {
			assert.Equal(t, "leave_request", counterType)
			assert.Equal(t, 2026, year)
			return 7, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, "LR-2026-000007", l.RequestNumber)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, 1, l.TotalDays)
			assert.Equal(t, l.StartDate, l.EndDate)
			assert.Len(t, l.Substitutions, 2)
			for _, sub := range l.Substitutions {
				assert.Equal(t, leave.SubStatusPending, sub.Status)
				assert.Equal(t, "Linear Algebra", sub.Subject)
				assert.NotNil(t, sub.CandidateID)
			}
			return nil
		}

		resp, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeCasual,
			StartDate: "2026-03-02",
			Reason:    "Personal errand",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Len(t, resp.Substitutions, 2)
	})

	t.Run("negative duplicate live request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.hasLiveRequestBetweenFn = func(ctx context.Context, fid string, start, end time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeCasual,
			StartDate: "2026-03-02",
			Reason:    "Personal errand",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrDuplicateLeave)
	})

	t.Run("negative no substitute for non-medical", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.timetableRepo.findRecurringFn = func(ctx context.Context, fid, day string) ([]timetable.Entry, error) {
			return []timetable.Entry{mondayClass}, nil
		}
		deps.resolver.resolveFn = func(ctx context.Context, date time.Time, slot int, exclude string) ([]availability.Candidate, error) {
			return nil, nil
		}

		_, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypePersonal,
			StartDate: "2026-03-02",
			Reason:    "Family matter",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNoSubstituteAvailable)
	})

	t.Run("medical with uncovered slots gets sentinel rows", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.timetableRepo.findRecurringFn = func(ctx context.Context, fid, day string) ([]timetable.Entry, error) {
			if day == "Monday" {
				return []timetable.Entry{mondayClass}, nil
			}
			return nil, nil
		}
		deps.resolver.resolveFn = func(ctx context.Context, date time.Time, slot int, exclude string) ([]availability.Candidate, error) {
			return nil, nil
		}

		var created *leave.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			created = l
			return nil
		}

		// 2026-03-02 .. 2026-03-13 covers two Mondays
		resp, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeMedical,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-13",
			Reason:    "Surgery recovery",
		})

		assert.NoError(t, err)
		assert.Equal(t, 12, resp.TotalDays)
		assert.Len(t, created.Substitutions, 2)
		for _, sub := range created.Substitutions {
			assert.Nil(t, sub.CandidateID)
			assert.Equal(t, "None Available", sub.CandidateName)
			assert.Equal(t, leave.SubStatusPending, sub.Status)
		}
	})

	t.Run("negative medical shorter than minimum", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeMedical,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-05",
			Reason:    "Flu",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrMedicalLeaveTooShort)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeCasual,
			StartDate: "02-03-2026",
			Reason:    "Personal errand",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative whitespace reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, facultyID, "Prof. Kumar", leave.SubmitLeaveRequest{
			LeaveType: domain.LeaveTypeCasual,
			StartDate: "2026-03-02",
			Reason:    "   ",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrReasonRequired)
	})
}

func pendingLeave(leaveID, facultyID uuid.UUID, subs ...leave.Substitution) *leave.LeaveRequest {
	return &leave.LeaveRequest{
		ID:            leaveID,
		RequestNumber: "LR-2026-000001",
		FacultyID:     facultyID,
		FacultyName:   "Prof. Kumar",
		LeaveType:     domain.LeaveTypeCasual,
		StartDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDays:     1,
		Reason:        "Personal errand",
		Status:        leave.StatusPending,
		Substitutions: subs,
	}
}

func TestLeaveService_RespondToSubstitution(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	facultyID := uuid.New()
	candidateID := uuid.New()
	subID := uuid.New()
	classDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	pendingRow := leave.Substitution{
		ID:             subID,
		LeaveRequestID: leaveID,
		Date:           classDate,
		Slot:           2,
		Subject:        "Linear Algebra",
		ClassName:      "CS-2A",
		CandidateID:    &candidateID,
		CandidateName:  "Anand",
		Status:         leave.SubStatusPending,
	}

	accept := true
	decline := false

	t.Run("accept wins the slot", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			assert.Equal(t, leaveID.String(), lid)
			assert.Equal(t, candidateID.String(), cid)
			row := pendingRow
			return &row, nil
		}

		accepted := false
		deps.repo.acceptSubstitutionFn = func(ctx context.Context, sid, lid string, date time.Time, slot int) (int64, error) {
			assert.Equal(t, subID.String(), sid)
			assert.Equal(t, 2, slot)
			accepted = true
			return 1, nil
		}

		var coverEntry *timetable.Entry
		deps.timetableRepo.createFn = func(ctx context.Context, e *timetable.Entry) error {
			coverEntry = e
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = &event
			return nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.NoError(t, err)
		assert.True(t, accepted)
		assert.NotNil(t, coverEntry)
		assert.Equal(t, "Sub: Linear Algebra", coverEntry.Subject)
		assert.Equal(t, candidateID, coverEntry.FacultyID)
		assert.NotNil(t, coverEntry.Date)
		assert.NotNil(t, outboxEvent)
		assert.Equal(t, "substitution_accepted", outboxEvent.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative losing the race returns slot already filled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			return &row, nil
		}
		deps.repo.acceptSubstitutionFn = func(ctx context.Context, sid, lid string, date time.Time, slot int) (int64, error) {
			return 0, nil
		}
		deps.repo.findAcceptedForKeyFn = func(ctx context.Context, lid string, date time.Time, slot int) (*leave.Substitution, error) {
			winner := pendingRow
			winner.Status = leave.SubStatusAccepted
			return &winner, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSlotAlreadyFilled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative row closed under us", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			return &row, nil
		}
		deps.repo.acceptSubstitutionFn = func(ctx context.Context, sid, lid string, date time.Time, slot int) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionClosed)
	})

	t.Run("negative responding to an already closed offer", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			row.Status = leave.SubStatusRejected
			return &row, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionClosed)
	})

	t.Run("decline marks the row rejected without a transaction", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			return &row, nil
		}

		rejected := false
		deps.repo.rejectSubstitutionFn = func(ctx context.Context, sid string) (int64, error) {
			assert.Equal(t, subID.String(), sid)
			rejected = true
			return 1, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &decline,
		})

		assert.NoError(t, err)
		assert.True(t, rejected)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative decline after the row closed is reported", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			return &row, nil
		}
		deps.repo.rejectSubstitutionFn = func(ctx context.Context, sid string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &decline,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionClosed)
	})

	t.Run("negative candidate became busy since the broadcast", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, pendingRow), nil
		}
		deps.repo.findSubstitutionFn = func(ctx context.Context, lid string, date time.Time, slot int, cid string) (*leave.Substitution, error) {
			row := pendingRow
			return &row, nil
		}
		deps.timetableRepo.isBusyAtFn = func(ctx context.Context, fid string, date time.Time, dayOfWeek string, slot int) (bool, error) {
			assert.Equal(t, candidateID.String(), fid)
			assert.Equal(t, 2, slot)
			return true, nil
		}
		deps.repo.acceptSubstitutionFn = func(ctx context.Context, sid, lid string, date time.Time, slot int) (int64, error) {
			t.Fatal("a busy candidate must not reach the accept update")
			return 0, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrCandidateBusy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown substitution row", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID), nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionNotFound)
	})

	t.Run("negative offers are closed after rejection of the leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			l := pendingLeave(leaveID, facultyID, pendingRow)
			l.Status = leave.StatusRejected
			return l, nil
		}

		_, err := deps.service.RespondToSubstitution(ctx, leaveID.String(), candidateID.String(), leave.RespondSubstitutionRequest{
			Date:   "2026-03-02",
			Slot:   2,
			Accept: &accept,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionClosed)
	})
}

func TestLeaveService_SetLeaveStatus(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	facultyID := uuid.New()
	deciderID := uuid.New().String()

	t.Run("approve debits exactly once in the same transaction", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID), nil
		}

		updated := false
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, id, status, decidedBy string) (int64, error) {
			assert.Equal(t, leave.StatusApproved, status)
			assert.Equal(t, deciderID, decidedBy)
			updated = true
			return 1, nil
		}

		debits := 0
		deps.facultySvc.debitFn = func(ctx context.Context, tx *sql.Tx, fid, leaveType string, amount int) error {
			assert.NotNil(t, tx)
			assert.Equal(t, facultyID.String(), fid)
			assert.Equal(t, domain.LeaveTypeCasual, leaveType)
			assert.Equal(t, 1, amount)
			debits++
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = &event
			return nil
		}

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleHOD, leave.SetStatusRequest{
			Status: leave.StatusApproved,
		})

		assert.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, 1, debits)
		assert.NotNil(t, outboxEvent)
		assert.Equal(t, "leave_approved", outboxEvent.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative re-approving is invalid state and never debits", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			l := pendingLeave(leaveID, facultyID)
			l.Status = leave.StatusApproved
			return l, nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, id, status, decidedBy string) (int64, error) {
			t.Fatal("a decided request must not reach the status update")
			return 0, nil
		}

		debits := 0
		deps.facultySvc.debitFn = func(ctx context.Context, tx *sql.Tx, fid, leaveType string, amount int) error {
			debits++
			return nil
		}

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleHOD, leave.SetStatusRequest{
			Status: leave.StatusApproved,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
		assert.Zero(t, debits)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative concurrent decision loses the conditional update", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		// still PENDING at read time, decided by the time the update runs
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID), nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, id, status, decidedBy string) (int64, error) {
			return 0, nil
		}

		debits := 0
		deps.facultySvc.debitFn = func(ctx context.Context, tx *sql.Tx, fid, leaveType string, amount int) error {
			debits++
			return nil
		}

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleHOD, leave.SetStatusRequest{
			Status: leave.StatusApproved,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
		assert.Zero(t, debits)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject does not touch the balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID), nil
		}

		debits := 0
		deps.facultySvc.debitFn = func(ctx context.Context, tx *sql.Tx, fid, leaveType string, amount int) error {
			debits++
			return nil
		}

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleAdmin, leave.SetStatusRequest{
			Status: leave.StatusRejected,
		})

		assert.NoError(t, err)
		assert.Zero(t, debits)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative faculty role cannot decide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleFaculty, leave.SetStatusRequest{
			Status: leave.StatusApproved,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrApproverRoleRequired)
	})

	t.Run("negative insufficient balance rolls the approval back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID), nil
		}
		deps.facultySvc.debitFn = func(ctx context.Context, tx *sql.Tx, fid, leaveType string, amount int) error {
			return errors.New("insufficient leave balance")
		}

		_, err := deps.service.SetLeaveStatus(ctx, leaveID.String(), deciderID, domain.RoleHOD, leave.SetStatusRequest{
			Status: leave.StatusApproved,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_ForceAssignSubstitute(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	facultyID := uuid.New()
	candidateA := uuid.New()
	candidateC := uuid.New()
	classDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	offerRow := leave.Substitution{
		ID:             uuid.New(),
		LeaveRequestID: leaveID,
		Date:           classDate,
		Slot:           2,
		Subject:        "Linear Algebra",
		ClassName:      "CS-2A",
		CandidateID:    &candidateA,
		CandidateName:  "Anand",
		Status:         leave.SubStatusPending,
	}

	t.Run("assigns a new candidate to an open slot", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, offerRow), nil
		}
		deps.facultySvc.getByIDFn = func(ctx context.Context, id string) (faculty.FacultyResponse, error) {
			assert.Equal(t, candidateC.String(), id)
			return faculty.FacultyResponse{ID: id, Name: "Chitra"}, nil
		}

		var inserted *leave.Substitution
		deps.repo.insertSubstitutionFn = func(ctx context.Context, s *leave.Substitution) error {
			inserted = s
			return nil
		}

		var coverEntry *timetable.Entry
		deps.timetableRepo.createFn = func(ctx context.Context, e *timetable.Entry) error {
			coverEntry = e
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = &event
			return nil
		}

		_, err := deps.service.ForceAssignSubstitute(ctx, leaveID.String(), leave.ForceAssignRequest{
			Date:        "2026-03-02",
			Slot:        2,
			CandidateID: candidateC.String(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, inserted)
		assert.Equal(t, leave.SubStatusAccepted, inserted.Status)
		assert.Equal(t, "Chitra (Admin Assigned)", inserted.CandidateName)
		assert.Equal(t, "Linear Algebra", inserted.Subject)
		assert.NotNil(t, coverEntry)
		assert.Equal(t, candidateC, coverEntry.FacultyID)
		assert.Equal(t, "Sub: Linear Algebra (Admin Assigned)", coverEntry.Subject)
		assert.NotNil(t, outboxEvent)
		assert.Equal(t, "substitution_force_assigned", outboxEvent.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reassigning displaces the previous substitute", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		acceptedRow := offerRow
		acceptedRow.Status = leave.SubStatusAccepted

		rowForC := offerRow
		rowForC.ID = uuid.New()
		rowForC.CandidateID = &candidateC
		rowForC.CandidateName = "Chitra"

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, acceptedRow, rowForC), nil
		}
		deps.facultySvc.getByIDFn = func(ctx context.Context, id string) (faculty.FacultyResponse, error) {
			return faculty.FacultyResponse{ID: id, Name: "Chitra"}, nil
		}
		deps.repo.findAcceptedForKeyFn = func(ctx context.Context, lid string, date time.Time, slot int) (*leave.Substitution, error) {
			row := acceptedRow
			return &row, nil
		}

		released := false
		deps.repo.releaseAcceptedFn = func(ctx context.Context, lid string, date time.Time, slot int) (int64, error) {
			released = true
			return 1, nil
		}

		var displacedCover string
		deps.timetableRepo.deleteOverrideFn = func(ctx context.Context, fid string, date time.Time, slot int) error {
			displacedCover = fid
			return nil
		}

		forced := false
		deps.repo.forceAcceptFn = func(ctx context.Context, sid, name string) error {
			assert.Equal(t, rowForC.ID.String(), sid)
			assert.Equal(t, "Chitra (Admin Assigned)", name)
			forced = true
			return nil
		}

		var coverEntry *timetable.Entry
		deps.timetableRepo.createFn = func(ctx context.Context, e *timetable.Entry) error {
			coverEntry = e
			return nil
		}

		_, err := deps.service.ForceAssignSubstitute(ctx, leaveID.String(), leave.ForceAssignRequest{
			Date:        "2026-03-02",
			Slot:        2,
			CandidateID: candidateC.String(),
		})

		assert.NoError(t, err)
		assert.True(t, released)
		assert.True(t, forced)
		assert.Equal(t, candidateA.String(), displacedCover)
		assert.NotNil(t, coverEntry)
		assert.Equal(t, "Sub: Linear Algebra (Admin Assigned)", coverEntry.Subject)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown slot key", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(leaveID, facultyID, offerRow), nil
		}

		_, err := deps.service.ForceAssignSubstitute(ctx, leaveID.String(), leave.ForceAssignRequest{
			Date:        "2026-03-02",
			Slot:        5,
			CandidateID: candidateC.String(),
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubstitutionNotFound)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	facultyID := uuid.New().String()

	t.Run("approver sees every request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		all := false
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			all = true
			return nil, nil
		}

		_, err := deps.service.GetAll(ctx, facultyID, domain.RoleHOD)

		assert.NoError(t, err)
		assert.True(t, all)
	})

	t.Run("faculty sees only own and offered requests", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		scoped := false
		deps.repo.findForFacultyFn = func(ctx context.Context, fid string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, facultyID, fid)
			scoped = true
			return nil, nil
		}

		_, err := deps.service.GetAll(ctx, facultyID, domain.RoleFaculty)

		assert.NoError(t, err)
		assert.True(t, scoped)
	})
}

func TestLeaveService_GetByID_SupersededSiblings(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	facultyID := uuid.New()
	candidateA := uuid.New()
	candidateB := uuid.New()
	classDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	winner := leave.Substitution{
		ID: uuid.New(), LeaveRequestID: leaveID, Date: classDate, Slot: 2,
		Subject: "Linear Algebra", ClassName: "CS-2A",
		CandidateID: &candidateA, CandidateName: "Anand", Status: leave.SubStatusAccepted,
	}
	sibling := leave.Substitution{
		ID: uuid.New(), LeaveRequestID: leaveID, Date: classDate, Slot: 2,
		Subject: "Linear Algebra", ClassName: "CS-2A",
		CandidateID: &candidateB, CandidateName: "Bose", Status: leave.SubStatusPending,
	}
	otherSlot := leave.Substitution{
		ID: uuid.New(), LeaveRequestID: leaveID, Date: classDate, Slot: 4,
		Subject: "Discrete Math", ClassName: "CS-2B",
		CandidateID: &candidateB, CandidateName: "Bose", Status: leave.SubStatusPending,
	}

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return pendingLeave(leaveID, facultyID, winner, sibling, otherSlot), nil
	}

	resp, err := deps.service.GetByID(ctx, leaveID.String(), facultyID.String(), domain.RoleFaculty)

	assert.NoError(t, err)
	assert.Len(t, resp.Substitutions, 3)

	byID := make(map[string]leave.SubstitutionResponse)
	for _, sub := range resp.Substitutions {
		byID[sub.ID] = sub
	}
	assert.False(t, byID[winner.ID.String()].Superseded)
	assert.True(t, byID[sibling.ID.String()].Superseded)
	assert.False(t, byID[otherSlot.ID.String()].Superseded)
}

func TestLeaveService_GetByID_Authorization(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	facultyID := uuid.New()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return pendingLeave(leaveID, facultyID), nil
	}

	_, err := deps.service.GetByID(ctx, leaveID.String(), uuid.New().String(), domain.RoleFaculty)

	assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorized)
}
