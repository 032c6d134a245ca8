package faculty

import (
	"errors"
	"strings"

	facultyerrors "uni-leave-portal/internal/faculty/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return facultyerrors.ErrFacultyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23514: check constraint (non-negative balances)
		if pgErr.Code == "23514" && strings.Contains(pgErr.ConstraintName, "balance") {
			return facultyerrors.ErrInsufficientBalance
		}
	}

	return err
}
