package model

import (
	"context"
)

// User rows are created lazily the first time a workflow references a user
// and are never deleted here.
type User struct {
	UserID    string
	Developer bool
	Certified bool
	Staff     bool
}

func NewUser(userID string) *User {
	return &User{UserID: userID}
}

// FindOrCreateUser inserts a user row with default flags if one does not
// exist yet.
func FindOrCreateUser(ctx context.Context, q Querier, u *User) error {
	_, err := q.Exec(
		ctx,
		`insert into users (user_id, extra_links, developer, certified) values ($1, '[]', false, false) on conflict (user_id) do nothing`,
		u.UserID,
	)
	return err
}
