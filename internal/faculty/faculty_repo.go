package faculty

import (
	"context"
	"database/sql"
	"fmt"

	"uni-leave-portal/internal/domain"
	facultyerrors "uni-leave-portal/internal/faculty/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=faculty_repo.go -destination=mock/faculty_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *Faculty) error
	FindAll(ctx context.Context) ([]Faculty, error)
	FindByID(ctx context.Context, id string) (*Faculty, error)
	FindByEmail(ctx context.Context, email string) (*Faculty, error)
	DebitLeaveBalance(ctx context.Context, facultyID, leaveType string, amount int) (int64, error)
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

func (r *repository) Create(ctx context.Context, f *Faculty) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Faculty, error) {
	var rows []Faculty
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Faculty, error) {
	var f Faculty
	err := r.db.WithContext(ctx).
		First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Faculty, error) {
	var f Faculty
	err := r.db.WithContext(ctx).
		First(&f, "email = ?", email).Error
	return &f, err
}

// DebitLeaveBalance decrements one balance bucket as a single conditional
// UPDATE. The balance guard in the WHERE clause means the decrement and the
// sufficiency check are one atomic statement; zero rows affected tells the
// caller the balance was too low (or the faculty row is gone). When running
// inside the approval transaction the statement goes through the tx so the
// debit commits or rolls back with the status change.
func (r *repository) DebitLeaveBalance(ctx context.Context, facultyID, leaveType string, amount int) (int64, error) {
	bucket := domain.BalanceBucket(leaveType)
	if bucket == "" {
		return 0, facultyerrors.ErrUnknownLeaveType
	}
	column := bucket + "_balance"

	query := fmt.Sprintf(`
		UPDATE faculty
		SET %s = %s - $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL AND %s >= $1
	`, column, column, column)

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, amount, facultyID)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).Exec(
		fmt.Sprintf(`
			UPDATE faculty
			SET %s = %s - ?, updated_at = now()
			WHERE id = ? AND deleted_at IS NULL AND %s >= ?
		`, column, column, column),
		amount, facultyID, amount,
	)
	return res.RowsAffected, res.Error
}
