package perms

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
)

// fakeQuerier serves the two lookups resolution performs from canned data.
// A server row exists iff teamID is non-empty; membership rows come from
// flags, keyed by user id.
type fakeQuerier struct {
	teamID string
	flags  map[string][]string
}

func (f *fakeQuerier) QueryFunc(ctx context.Context, sql string, args []interface{}, scans []interface{}, fn func(pgx.QueryFuncRow) error) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "from servers"):
		if f.teamID == "" {
			return nil, nil
		}
		*scans[0].(*string) = f.teamID
		return nil, fn(nil)
	case strings.Contains(sql, "from team_members"):
		flags, ok := f.flags[args[1].(string)]
		if !ok {
			return nil, nil
		}
		*scans[0].(*[]string) = flags
		return nil, fn(nil)
	}
	return nil, nil
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func TestParse(t *testing.T) {
	assert.Equal(t, Capability{Namespace: "server", Action: "edit"}, Parse("server.edit"))
	assert.Equal(t, Capability{Namespace: "global", Action: "*"}, Parse("global.*"))
	assert.Equal(t, Capability{Namespace: "server"}, Parse("server"))
	assert.Equal(t, Capability{Namespace: "server", Action: "a.b"}, Parse("server.a.b"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "server.edit", Capability{Namespace: "server", Action: "edit"}.String())
	assert.Equal(t, "server", Capability{Namespace: "server"}.String())
}

func TestCoversGlobalWildcard(t *testing.T) {
	global := Parse("global.*")
	assert.True(t, global.Covers(Parse("server.edit")))
	assert.True(t, global.Covers(Parse("team.transfer")))
	assert.True(t, global.Covers(Parse("global.*")))
}

func TestCoversNamespaceWildcard(t *testing.T) {
	server := Parse("server.*")
	assert.True(t, server.Covers(Parse("server.edit")))
	assert.True(t, server.Covers(Parse("server.delete")))
	assert.False(t, server.Covers(Parse("team.edit")))
	assert.False(t, server.Covers(Parse("global.*")))
}

func TestCoversExact(t *testing.T) {
	edit := Parse("server.edit")
	assert.True(t, edit.Covers(Parse("server.edit")))
	assert.False(t, edit.Covers(Parse("server.delete")))
	assert.False(t, edit.Covers(Parse("server.*")))
}

func TestHasCapability(t *testing.T) {
	owner := []Capability{Parse("global.*")}
	assert.True(t, HasCapability(owner, Parse("server.edit")))
	assert.True(t, HasCapability(owner, Parse("anything.at_all")))

	admin := []Capability{Parse("server.*")}
	assert.True(t, HasCapability(admin, Parse("server.delete")))
	assert.False(t, HasCapability(admin, Parse("team.transfer")))

	assert.False(t, HasCapability(nil, Parse("server.edit")))
}

func TestResolveOwner(t *testing.T) {
	q := &fakeQuerier{
		teamID: "3a1b8e7c-0000-4000-8000-000000000001",
		flags:  map[string][]string{"100": {"global.*"}},
	}

	caps, err := Resolve(context.Background(), q, "1", "100")
	assert.NoError(t, err)
	assert.Equal(t, []Capability{{Namespace: "global", Action: "*"}}, caps)
	assert.True(t, HasCapability(caps, Parse("server.edit")))
}

func TestResolveServerNotFound(t *testing.T) {
	q := &fakeQuerier{}

	_, err := Resolve(context.Background(), q, "1", "100")
	assert.ErrorIs(t, err, ErrServerNotFound)
}

func TestResolveNonMember(t *testing.T) {
	q := &fakeQuerier{
		teamID: "3a1b8e7c-0000-4000-8000-000000000001",
		flags:  map[string][]string{"100": {"global.*"}},
	}

	_, err := Resolve(context.Background(), q, "1", "200")
	assert.ErrorIs(t, err, ErrMemberNotInTeam)
}

func TestResolveDeduplicates(t *testing.T) {
	q := &fakeQuerier{
		teamID: "3a1b8e7c-0000-4000-8000-000000000001",
		flags:  map[string][]string{"100": {"server.*", "server.*", "server.edit"}},
	}

	caps, err := Resolve(context.Background(), q, "1", "100")
	assert.NoError(t, err)
	assert.Equal(t, []Capability{
		{Namespace: "server", Action: "*"},
		{Namespace: "server", Action: "edit"},
	}, caps)
}

func TestCheck(t *testing.T) {
	q := &fakeQuerier{
		teamID: "3a1b8e7c-0000-4000-8000-000000000001",
		flags: map[string][]string{
			"100": {"global.*"},
			"200": {"server.edit"},
		},
	}

	assert.NoError(t, Check(context.Background(), q, "1", "100", Parse("server.delete")))
	assert.NoError(t, Check(context.Background(), q, "1", "200", Parse("server.edit")))

	var ge *GuardError
	err := Check(context.Background(), q, "1", "200", Parse("server.delete"))
	assert.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Message, "server.delete")
}

func TestCheckGuardsUnlistedServer(t *testing.T) {
	var ge *GuardError

	err := Check(context.Background(), &fakeQuerier{}, "1", "100", Parse("server.edit"))
	assert.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Message, "/setup")
}

func TestCheckGuardsNonMember(t *testing.T) {
	q := &fakeQuerier{teamID: "3a1b8e7c-0000-4000-8000-000000000001"}

	var ge *GuardError
	err := Check(context.Background(), q, "1", "100", Parse("server.edit"))
	assert.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Message, "team")
}

func TestGuardError(t *testing.T) {
	err := guardf("You must have the ``%s`` permission to perform this operation!", Parse("server.edit"))

	var ge *GuardError
	assert.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Message, "server.edit")
}
