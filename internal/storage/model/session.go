package model

import (
	"context"
	"database/sql"
	"time"
)

// Session is a bearer session usable to authorize API requests.
type Session struct {
	ID         string
	Name       sql.NullString
	CreatedAt  time.Time
	Type       string
	TargetType string
	TargetID   string
	PermLimits []string
	Expiry     time.Time
}

func ClearExpiredSessions(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, `delete from api_sessions where expiry < now()`)
	return err
}

// FindSessionByToken sweeps expired sessions first, then looks the token up.
// Returns nil without error when the token is unknown.
func FindSessionByToken(ctx context.Context, q Querier, token string) (*Session, error) {
	if err := ClearExpiredSessions(ctx, q); err != nil {
		return nil, err
	}

	var s Session
	found, err := queryRow(
		ctx, q,
		`select id, name, created_at, type, target_type, target_id, perm_limits, expiry from api_sessions where token = $1`,
		[]interface{}{token},
		[]interface{}{&s.ID, &s.Name, &s.CreatedAt, &s.Type, &s.TargetType, &s.TargetID, &s.PermLimits, &s.Expiry},
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}
