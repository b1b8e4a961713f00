package postgresql

import (
	"context"
	"fmt"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/profile"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.name, p.role, p.avatar_url, p.area,
	p.start_time, p.end_time,
	p.lunch_start, p.lunch_end,
	p.break1_start, p.break1_end, p.break2_start, p.break2_end,
	p.work_days,
	p.created_at, p.updated_at
`

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Role, &p.AvatarURL, &p.Area,
		&p.StartTime, &p.EndTime,
		&p.LunchStart, &p.LunchEnd,
		&p.Break1Start, &p.Break1End, &p.Break2Start, &p.Break2End,
		&p.WorkDays,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (
			id, user_id, name, role, avatar_url, area,
			start_time, end_time,
			lunch_start, lunch_end,
			break1_start, break1_end, break2_start, break2_end,
			work_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7,
			$8, $9,
			$10, $11, $12, $13,
			$14,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID, p.Name, p.Role, p.AvatarURL, p.Area,
		p.StartTime, p.EndTime,
		p.LunchStart, p.LunchEnd,
		p.Break1Start, p.Break1End, p.Break2Start, p.Break2End,
		p.WorkDays,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE p.user_id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, err
	}

	return p, nil
}

func (r *profileRepositoryImpl) ListAnalysts(ctx context.Context) ([]profile.Profile, error) {
	return r.listByRoles(ctx, `WHERE p.role = 'analyst'`)
}

func (r *profileRepositoryImpl) List(ctx context.Context) ([]profile.Profile, error) {
	return r.listByRoles(ctx, ``)
}

func (r *profileRepositoryImpl) listByRoles(ctx context.Context, whereClause string) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles p ` + whereClause + ` ORDER BY p.name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, nil
}

func (r *profileRepositoryImpl) Update(ctx context.Context, p profile.Profile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles SET
			name = $1, avatar_url = $2, area = $3,
			start_time = $4, end_time = $5,
			lunch_start = $6, lunch_end = $7,
			break1_start = $8, break1_end = $9,
			break2_start = $10, break2_end = $11,
			work_days = $12,
			updated_at = NOW()
		WHERE user_id = $13
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		p.Name, p.AvatarURL, p.Area,
		p.StartTime, p.EndTime,
		p.LunchStart, p.LunchEnd,
		p.Break1Start, p.Break1End,
		p.Break2Start, p.Break2End,
		p.WorkDays,
		p.UserID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile for user %s: %w", p.UserID, err)
	}
	return nil
}

func (r *profileRepositoryImpl) Delete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
