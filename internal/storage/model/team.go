package model

import (
	"context"
)

type Team struct {
	ID        string
	Name      string
	VanityRef int32
}

func CreateTeam(ctx context.Context, q Querier, t *Team) error {
	_, err := q.Exec(
		ctx,
		`insert into teams (id, name, vanity_ref, service) values ($1::uuid, $2, $3, $4)`,
		t.ID, t.Name, t.VanityRef, Service,
	)
	return err
}

// TeamMember carries a user's capability flags within a team. A user belongs
// to a team at most once; writes upsert rather than duplicate.
type TeamMember struct {
	TeamID string
	UserID string
	Flags  []string
}

func UpsertTeamMember(ctx context.Context, q Querier, m *TeamMember) error {
	_, err := q.Exec(
		ctx,
		`insert into team_members (team_id, user_id, flags, service) values ($1::uuid, $2, $3, $4)
		 on conflict (team_id, user_id) do update set flags = excluded.flags`,
		m.TeamID, m.UserID, m.Flags, Service,
	)
	return err
}

// FindTeamMemberFlags reports the flags of a membership row, and whether the
// row exists at all.
func FindTeamMemberFlags(ctx context.Context, q Querier, teamID, userID string) ([]string, bool, error) {
	var flags []string
	found, err := queryRow(
		ctx, q,
		`select flags from team_members where team_id = $1::uuid and user_id = $2`,
		[]interface{}{teamID, userID},
		[]interface{}{&flags},
	)
	if err != nil {
		return nil, false, err
	}
	return flags, found, nil
}

// DeleteServiceTeamMember revokes a membership row, but only if it was
// granted by this bot.
func DeleteServiceTeamMember(ctx context.Context, q Querier, teamID, userID string) error {
	_, err := q.Exec(
		ctx,
		`delete from team_members where team_id = $1::uuid and user_id = $2 and service = $3`,
		teamID, userID, Service,
	)
	return err
}
