package leave

import (
	"errors"
	"strings"

	leaveerrors "uni-leave-portal/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 on the partial unique index: a concurrent accept won the slot
		if pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "uq_substitutions_accepted") {
			return leaveerrors.ErrSlotAlreadyFilled
		}
	}

	return err
}
