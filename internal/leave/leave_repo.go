package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	// FindForFaculty returns requests the faculty member owns plus those
	// where they were offered a substitution.
	FindForFaculty(ctx context.Context, facultyID string) ([]LeaveRequest, error)
	FindOverlappingDate(ctx context.Context, date time.Time) ([]LeaveRequest, error)
	HasLiveRequestBetween(ctx context.Context, facultyID string, start, end time.Time) (bool, error)
	FindSubstitution(ctx context.Context, leaveID string, date time.Time, slot int, candidateID string) (*Substitution, error)
	FindAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (*Substitution, error)
	// AcceptSubstitution flips one row PENDING -> ACCEPTED only while no
	// sibling for the same (leave, date, slot) key is ACCEPTED. Guard and
	// write are a single statement; zero rows affected means the row was
	// closed or the key already filled.
	AcceptSubstitution(ctx context.Context, subID, leaveID string, date time.Time, slot int) (int64, error)
	RejectSubstitution(ctx context.Context, subID string) (int64, error)
	ReleaseAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (int64, error)
	InsertSubstitution(ctx context.Context, s *Substitution) error
	// ForceAcceptSubstitution is the admin path: no sibling guard, and the
	// candidate name is rewritten to carry the assignment annotation.
	ForceAcceptSubstitution(ctx context.Context, subID, candidateName string) error
	// UpdateStatusIfPending performs the terminal workflow transition as a
	// conditional update; zero rows affected means the request already left
	// PENDING.
	UpdateStatusIfPending(ctx context.Context, id, status, decidedBy string) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Substitutions").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Substitutions").
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindForFaculty(ctx context.Context, facultyID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Substitutions").
		Where(
			"faculty_id = ? OR id IN (SELECT leave_request_id FROM substitutions WHERE candidate_id = ?)",
			facultyID, facultyID,
		).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOverlappingDate(ctx context.Context, date time.Time) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date.Format("2006-01-02"), date.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasLiveRequestBetween(ctx context.Context, facultyID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("faculty_id = ?", facultyID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindSubstitution(ctx context.Context, leaveID string, date time.Time, slot int, candidateID string) (*Substitution, error) {
	var s Substitution
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", leaveID).
		Where("class_date = ?", date.Format("2006-01-02")).
		Where("slot = ?", slot).
		Where("candidate_id = ?", candidateID).
		First(&s).Error
	return &s, err
}

func (r *repository) FindAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (*Substitution, error) {
	var s Substitution
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", leaveID).
		Where("class_date = ?", date.Format("2006-01-02")).
		Where("slot = ?", slot).
		Where("status = ?", SubStatusAccepted).
		First(&s).Error
	return &s, err
}

func (r *repository) AcceptSubstitution(ctx context.Context, subID, leaveID string, date time.Time, slot int) (int64, error) {
	query := `
		UPDATE substitutions
		SET status = $1, updated_at = now()
		WHERE id = $2
		  AND status = $3
		  AND NOT EXISTS (
			SELECT 1 FROM substitutions s
			WHERE s.leave_request_id = $4
			  AND s.class_date = $5
			  AND s.slot = $6
			  AND s.status = $1
		  )
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query,
			SubStatusAccepted, subID, SubStatusPending, leaveID, date.Format("2006-01-02"), slot,
		)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE substitutions
		SET status = ?, updated_at = now()
		WHERE id = ?
		  AND status = ?
		  AND NOT EXISTS (
			SELECT 1 FROM substitutions s
			WHERE s.leave_request_id = ?
			  AND s.class_date = ?
			  AND s.slot = ?
			  AND s.status = ?
		  )
	`, SubStatusAccepted, subID, SubStatusPending, leaveID, date.Format("2006-01-02"), slot, SubStatusAccepted)
	return res.RowsAffected, res.Error
}

func (r *repository) RejectSubstitution(ctx context.Context, subID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Substitution{}).
		Where("id = ?", subID).
		Where("status = ?", SubStatusPending).
		Update("status", SubStatusRejected)
	return res.RowsAffected, res.Error
}

// ReleaseAcceptedForKey demotes the currently accepted row for a key back to
// REJECTED so an admin reassignment can take its place under the partial
// unique index.
func (r *repository) ReleaseAcceptedForKey(ctx context.Context, leaveID string, date time.Time, slot int) (int64, error) {
	query := `
		UPDATE substitutions
		SET status = $1, updated_at = now()
		WHERE leave_request_id = $2 AND class_date = $3 AND slot = $4 AND status = $5
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query,
			SubStatusRejected, leaveID, date.Format("2006-01-02"), slot, SubStatusAccepted,
		)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE substitutions
		SET status = ?, updated_at = now()
		WHERE leave_request_id = ? AND class_date = ? AND slot = ? AND status = ?
	`, SubStatusRejected, leaveID, date.Format("2006-01-02"), slot, SubStatusAccepted)
	return res.RowsAffected, res.Error
}

func (r *repository) InsertSubstitution(ctx context.Context, s *Substitution) error {
	if r.tx != nil {
		var candidateID any
		if s.CandidateID != nil {
			candidateID = s.CandidateID.String()
		}
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO substitutions (id, leave_request_id, class_date, slot, subject, class_name, candidate_id, candidate_name, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.LeaveRequestID, s.Date.Format("2006-01-02"), s.Slot, s.Subject, s.ClassName, candidateID, s.CandidateName, s.Status)
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) ForceAcceptSubstitution(ctx context.Context, subID, candidateName string) error {
	query := `
		UPDATE substitutions
		SET status = $1, candidate_name = $2, updated_at = now()
		WHERE id = $3
	`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, SubStatusAccepted, candidateName, subID)
		return err
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE substitutions SET status = ?, candidate_name = ?, updated_at = now() WHERE id = ?
	`, SubStatusAccepted, candidateName, subID).Error
}

func (r *repository) UpdateStatusIfPending(ctx context.Context, id, status, decidedBy string) (int64, error) {
	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = now(), updated_at = now()
		WHERE id = $3 AND status = $4
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, status, decidedBy, id, StatusPending)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE leave_requests
		SET status = ?, decided_by = ?, decided_at = now(), updated_at = now()
		WHERE id = ? AND status = ?
	`, status, decidedBy, id, StatusPending)
	return res.RowsAffected, res.Error
}
