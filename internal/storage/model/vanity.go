package model

import (
	"context"
	"errors"
)

// ErrSlugTaken is returned when a vanity code is already reserved, by any
// target type. Slug uniqueness is global across teams and servers.
var ErrSlugTaken = errors.New("vanity slug is already taken")

type VanityTargetType string

const (
	VanityTargetTeam   VanityTargetType = "team"
	VanityTargetServer VanityTargetType = "server"
)

// VanityTarget identifies the entity a vanity slug points at.
type VanityTarget struct {
	Type VanityTargetType
	ID   string
}

func TeamTarget(teamID string) VanityTarget {
	return VanityTarget{Type: VanityTargetTeam, ID: teamID}
}

func ServerTarget(serverID string) VanityTarget {
	return VanityTarget{Type: VanityTargetServer, ID: serverID}
}

// ReserveVanity inserts a vanity row for the target, returning its itag.
// The existence check is case-sensitive and spans the whole table; on
// collision ErrSlugTaken is returned and the caller's transaction must be
// abandoned, not resumed.
func ReserveVanity(ctx context.Context, q Querier, code string, target VanityTarget) (int32, error) {
	var count int64
	if err := query(
		ctx, q,
		`select count(*) from vanity where code::text = $1`,
		[]interface{}{code},
		[]interface{}{&count},
	); err != nil {
		return 0, err
	}

	if count > 0 {
		return 0, ErrSlugTaken
	}

	var itag int32
	if err := query(
		ctx, q,
		`insert into vanity (code, target_id, target_type) values ($1::text, $2, $3) returning itag`,
		[]interface{}{code, target.ID, string(target.Type)},
		[]interface{}{&itag},
	); err != nil {
		return 0, err
	}

	return itag, nil
}

func DeleteVanity(ctx context.Context, q Querier, itag int32) error {
	_, err := q.Exec(ctx, `delete from vanity where itag = $1`, itag)
	return err
}
