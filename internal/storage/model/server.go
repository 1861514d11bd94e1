package model

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Server struct {
	ServerID      string
	Name          string
	TeamOwner     string
	TotalMembers  int32
	OnlineMembers int32
	Short         string
	Long          string
	Invite        string
	VanityRef     int32
	NSFW          bool
}

func ServerExists(ctx context.Context, q Querier, serverID string) (bool, error) {
	var count int64
	if err := query(
		ctx, q,
		`select count(*) from servers where server_id = $1`,
		[]interface{}{serverID},
		[]interface{}{&count},
	); err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindServerTeam reports the id of the team owning a listed server.
func FindServerTeam(ctx context.Context, q Querier, serverID string) (string, bool, error) {
	var teamID string
	found, err := queryRow(
		ctx, q,
		`select team_owner::text from servers where server_id = $1`,
		[]interface{}{serverID},
		[]interface{}{&teamID},
	)
	if err != nil {
		return "", false, err
	}
	return teamID, found, nil
}

func CreateServer(ctx context.Context, q Querier, s *Server) error {
	_, err := q.Exec(
		ctx,
		`insert into servers (
			server_id, name, team_owner, total_members, online_members,
			short, long, invite, vanity_ref, extra_links, nsfw
		) values ($1, $2, $3::uuid, $4, $5, $6, $7, $8, $9, '[]', $10)`,
		s.ServerID, s.Name, s.TeamOwner, s.TotalMembers, s.OnlineMembers,
		s.Short, s.Long, s.Invite, s.VanityRef, s.NSFW,
	)
	return err
}

func UpdateServerDescriptions(ctx context.Context, q Querier, serverID, short, long string) error {
	_, err := q.Exec(
		ctx,
		`update servers set short = $2, long = $3 where server_id = $1`,
		serverID, short, long,
	)
	return err
}

func UpdateServerInvite(ctx context.Context, q Querier, serverID, invite string) error {
	_, err := q.Exec(
		ctx,
		`update servers set invite = $2 where server_id = $1`,
		serverID, invite,
	)
	return err
}

func UpdateServerMemberCounts(ctx context.Context, q Querier, serverID string, total, online int32) error {
	_, err := q.Exec(
		ctx,
		`update servers set total_members = $2, online_members = $3 where server_id = $1`,
		serverID, total, online,
	)
	return err
}

func FindServerVanityRef(ctx context.Context, q Querier, serverID string) (int32, bool, error) {
	var itag int32
	found, err := queryRow(
		ctx, q,
		`select vanity_ref from servers where server_id = $1`,
		[]interface{}{serverID},
		[]interface{}{&itag},
	)
	if err != nil {
		return 0, false, err
	}
	return itag, found, nil
}

func DeleteServer(ctx context.Context, q Querier, serverID string) error {
	_, err := q.Exec(ctx, `delete from servers where server_id = $1`, serverID)
	return err
}

func ListServerIDs(ctx context.Context, q Querier) ([]string, error) {
	var ids []string
	var id string
	if _, err := q.QueryFunc(
		ctx,
		`select server_id from servers`,
		nil,
		[]interface{}{&id},
		func(pgx.QueryFuncRow) error {
			ids = append(ids, id)
			return nil
		},
	); err != nil {
		return nil, err
	}
	return ids, nil
}

// ServerInviteRow holds the columns invite creation decides on.
type ServerInviteRow struct {
	Invite                 string
	Type                   string
	State                  string
	LoginRequiredForInvite bool
	BlacklistedUsers       []string
}

func FindServerInviteRow(ctx context.Context, q Querier, serverID string) (*ServerInviteRow, bool, error) {
	var row ServerInviteRow
	found, err := queryRow(
		ctx, q,
		`select invite, type, state, login_required_for_invite, blacklisted_users from servers where server_id = $1`,
		[]interface{}{serverID},
		[]interface{}{&row.Invite, &row.Type, &row.State, &row.LoginRequiredForInvite, &row.BlacklistedUsers},
	)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}
