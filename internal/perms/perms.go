// Package perms resolves a user's effective capability set within the team
// that owns a listed server. Stored flag strings are treated as permission
// overrides layered onto an empty base; there is no positional hierarchy.
package perms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

var (
	ErrServerNotFound  = errors.New("server is not listed")
	ErrMemberNotInTeam = errors.New("user is not in the server's team")
)

// Wildcard as an action grants every capability in the namespace. The global
// namespace with a wildcard action grants everything.
const (
	Wildcard        = "*"
	GlobalNamespace = "global"
)

// Capability is a permission token, such as "server.edit" or "server.*".
type Capability struct {
	Namespace string
	Action    string
}

func Parse(s string) Capability {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return Capability{Namespace: s}
	}
	return Capability{Namespace: s[:idx], Action: s[idx+1:]}
}

func (c Capability) String() string {
	if c.Action == "" {
		return c.Namespace
	}
	return c.Namespace + "." + c.Action
}

// Covers reports whether holding c grants other.
func (c Capability) Covers(other Capability) bool {
	if c.Namespace == GlobalNamespace && c.Action == Wildcard {
		return true
	}
	if c.Namespace != other.Namespace {
		return false
	}
	return c.Action == Wildcard || c.Action == other.Action
}

// HasCapability reports whether any capability in set covers want.
func HasCapability(set []Capability, want Capability) bool {
	for _, c := range set {
		if c.Covers(want) {
			return true
		}
	}
	return false
}

// Resolve maps (server, user) to the user's capability set via the server's
// owning team. Resolution fails with ErrServerNotFound when the server is not
// listed and ErrMemberNotInTeam when the user holds no membership row.
func Resolve(ctx context.Context, q model.Querier, serverID, userID string) ([]Capability, error) {
	teamID, found, err := model.FindServerTeam(ctx, q, serverID)
	if err != nil {
		return nil, fmt.Errorf("couldn't look up server team: %w", err)
	}
	if !found {
		return nil, ErrServerNotFound
	}

	flags, found, err := model.FindTeamMemberFlags(ctx, q, teamID, userID)
	if err != nil {
		return nil, fmt.Errorf("couldn't look up team membership: %w", err)
	}
	if !found {
		return nil, ErrMemberNotInTeam
	}

	caps := make([]Capability, 0, len(flags))
	seen := make(map[Capability]struct{}, len(flags))
	for _, f := range flags {
		c := Parse(f)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		caps = append(caps, c)
	}

	return caps, nil
}
