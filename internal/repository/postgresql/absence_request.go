package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/absence"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRequestRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRequestRepository(db *database.DB) absence.AbsenceRequestRepository {
	return &absenceRequestRepositoryImpl{db: db}
}

const absenceColumns = `
	ar.id, ar.analyst_id, ar.start_date, ar.end_date, ar.reason,
	ar.status, ar.lead_comment, ar.cancel_reason, ar.approved_by, ar.cancelled_at,
	ar.created_at, ar.updated_at
`

func scanAbsence(row pgx.Row, withName bool) (absence.AbsenceRequest, error) {
	var req absence.AbsenceRequest
	dest := []interface{}{
		&req.ID, &req.AnalystID, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.LeadComment, &req.CancelReason, &req.ApprovedBy, &req.CancelledAt,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withName {
		dest = append(dest, &req.AnalystName)
	}
	err := row.Scan(dest...)
	return req, err
}

func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, request absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (
			id, analyst_id, start_date, end_date, reason, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.AnalystID, request.StartDate, request.EndDate, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return absence.AbsenceRequest{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return request, nil
}

func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `, p.name AS analyst_name
		FROM absence_requests ar
		JOIN profiles p ON ar.analyst_id = p.user_id
		WHERE ar.id = $1
	`

	req, err := scanAbsence(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, err
	}

	return req, nil
}

func (r *absenceRequestRepositoryImpl) ListByAnalyst(ctx context.Context, analystID string) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests ar
		WHERE ar.analyst_id = $1
		ORDER BY ar.created_at DESC
	`

	rows, err := q.Query(ctx, query, analystID)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence requests: %w", err)
	}
	defer rows.Close()

	return collectAbsences(rows, false)
}

func (r *absenceRequestRepositoryImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if filter.AnalystID != nil && *filter.AnalystID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.analyst_id = $%d", argIdx))
		args = append(args, *filter.AnalystID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.end_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.start_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	query := `
		SELECT ` + absenceColumns + `, p.name AS analyst_name
		FROM absence_requests ar
		JOIN profiles p ON ar.analyst_id = p.user_id
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY ar.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence requests: %w", err)
	}
	defer rows.Close()

	return collectAbsences(rows, true)
}

func (r *absenceRequestRepositoryImpl) ListApprovedForDate(ctx context.Context, date time.Time) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests ar
		WHERE ar.status = 'approved'
		AND ar.start_date <= $1 AND ar.end_date >= $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved absences: %w", err)
	}
	defer rows.Close()

	return collectAbsences(rows, false)
}

func (r *absenceRequestRepositoryImpl) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `, p.name AS analyst_name
		FROM absence_requests ar
		JOIN profiles p ON ar.analyst_id = p.user_id
		WHERE ar.status = 'approved'
		AND ar.start_date <= $2 AND ar.end_date >= $1
		ORDER BY ar.start_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence calendar: %w", err)
	}
	defer rows.Close()

	return collectAbsences(rows, true)
}

// TransitionStatus is the lifecycle engine's atomicity primitive: the
// WHERE clause re-checks the expected current status, so a racing
// transition that already moved the row leaves this one with zero rows
// affected instead of silently overwriting.
func (r *absenceRequestRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to absence.AbsenceStatus, update absence.StatusUpdate) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"status = $1", "updated_at = NOW()"}
	args := []interface{}{to}
	argIdx := 2

	if update.LeadComment != nil {
		sets = append(sets, fmt.Sprintf("lead_comment = $%d", argIdx))
		args = append(args, *update.LeadComment)
		argIdx++
	}
	if update.CancelReason != nil {
		sets = append(sets, fmt.Sprintf("cancel_reason = $%d", argIdx))
		args = append(args, *update.CancelReason)
		argIdx++
	}
	if update.ClearCancelReason {
		sets = append(sets, "cancel_reason = NULL")
	}
	if update.ApprovedBy != nil {
		sets = append(sets, fmt.Sprintf("approved_by = $%d", argIdx))
		args = append(args, *update.ApprovedBy)
		argIdx++
	}
	if update.CancelledAt != nil {
		sets = append(sets, fmt.Sprintf("cancelled_at = $%d", argIdx))
		args = append(args, *update.CancelledAt)
		argIdx++
	}

	query := fmt.Sprintf(
		"UPDATE absence_requests SET %s WHERE id = $%d AND status = $%d",
		strings.Join(sets, ", "), argIdx, argIdx+1,
	)
	args = append(args, id, from)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition absence request %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		// Distinguish a vanished row from a lost race on status.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM absence_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check absence request %s: %w", id, err)
		}
		if !exists {
			return absence.ErrAbsenceRequestNotFound
		}
		return absence.ErrInvalidTransition
	}

	return nil
}

func (r *absenceRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM absence_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return absence.ErrAbsenceRequestNotFound
	}
	return nil
}

func (r *absenceRequestRepositoryImpl) DeleteByAnalyst(ctx context.Context, analystID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM absence_requests WHERE analyst_id = $1`, analystID)
	if err != nil {
		return fmt.Errorf("failed to delete absence requests for analyst %s: %w", analystID, err)
	}
	return nil
}

func collectAbsences(rows pgx.Rows, withName bool) ([]absence.AbsenceRequest, error) {
	var requests []absence.AbsenceRequest
	for rows.Next() {
		req, err := scanAbsence(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return requests, nil
}
