package faculty

import (
	"context"
	"database/sql"
	"errors"

	facultyerrors "uni-leave-portal/internal/faculty/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=faculty_service.go -destination=mock/faculty_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]FacultyResponse, error)
	GetByID(ctx context.Context, id string) (FacultyResponse, error)
	GetBalance(ctx context.Context, id string) (LeaveBalanceResponse, error)
	DebitLeaveBalance(ctx context.Context, tx *sql.Tx, facultyID, leaveType string, amount int) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("faculty.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("faculty.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]FacultyResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all faculty failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (FacultyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FacultyResponse{}, facultyerrors.ErrInvalidFacultyID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FacultyResponse{}, facultyerrors.ErrFacultyNotFound
		}
		return FacultyResponse{}, err
	}
	return mapToResponse(*f), nil
}

func (s *service) GetBalance(ctx context.Context, id string) (LeaveBalanceResponse, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	return resp.LeaveBalance, nil
}

// DebitLeaveBalance is the ledger mutation. Exactly one debit happens per
// approved leave request; the caller passes its open transaction so the
// debit and the approval commit together. Zero rows affected means the
// bucket could not cover the amount: the debit is rejected, never clamped.
func (s *service) DebitLeaveBalance(ctx context.Context, tx *sql.Tx, facultyID, leaveType string, amount int) error {
	if amount <= 0 {
		amount = 1
	}

	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	rows, err := repo.DebitLeaveBalance(ctx, facultyID, leaveType, amount)
	if err != nil {
		s.logger.Error("debit leave balance failed",
			zap.String("faculty_id", facultyID),
			zap.String("leave_type", leaveType),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	if rows == 0 {
		// Distinguish a missing faculty row from an empty bucket.
		if _, err := s.repo.FindByID(ctx, facultyID); errors.Is(err, gorm.ErrRecordNotFound) {
			return facultyerrors.ErrFacultyNotFound
		}
		s.logger.Warn("debit leave balance rejected",
			zap.String("faculty_id", facultyID),
			zap.String("leave_type", leaveType),
			zap.Int("amount", amount),
		)
		return facultyerrors.ErrInsufficientBalance
	}

	s.logger.Info("leave balance debited",
		zap.String("faculty_id", facultyID),
		zap.String("leave_type", leaveType),
		zap.Int("amount", amount),
	)
	return nil
}

func mapToResponse(f Faculty) FacultyResponse {
	return FacultyResponse{
		ID:         f.ID.String(),
		Name:       f.Name,
		Email:      f.Email,
		Role:       f.Role,
		Department: f.Department,
		LeaveBalance: LeaveBalanceResponse{
			Casual:   f.CasualBalance,
			Sick:     f.SickBalance,
			Personal: f.PersonalBalance,
		},
	}
}

func mapToListResponse(rows []Faculty) []FacultyResponse {
	resp := make([]FacultyResponse, len(rows))
	for i, f := range rows {
		resp[i] = mapToResponse(f)
	}
	return resp
}
