package model

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/infinitybotlist/infernoplex/internal/util"
)

// Capability grants handed out during provisioning. The owner gets the global
// wildcard; administrators get server management only.
var (
	ownerGrant = []string{"global.*"}
	adminGrant = []string{"server.*"}
)

// ProvisionTeam creates a team aggregate inside the caller's transaction: a
// randomly-coded team vanity, the team row, the owner's user and membership
// rows, and a narrower membership row for every administrator supplied.
// Administrators equal to the owner are skipped; bots must be filtered out by
// the caller. Every call creates a fresh team id, so callers must gate this
// behind an already-setup check.
func ProvisionTeam(ctx context.Context, tx pgx.Tx, name, ownerID string, adminIDs []string) (string, error) {
	teamID := uuid.New().String()

	itag, err := ReserveVanity(ctx, tx, util.RandomCode(64), TeamTarget(teamID))
	if err != nil {
		return "", fmt.Errorf("couldn't reserve team vanity: %w", err)
	}

	if err := CreateTeam(ctx, tx, &Team{ID: teamID, Name: name, VanityRef: itag}); err != nil {
		return "", fmt.Errorf("couldn't create team: %w", err)
	}

	if err := FindOrCreateUser(ctx, tx, NewUser(ownerID)); err != nil {
		return "", fmt.Errorf("couldn't create owner user: %w", err)
	}

	if err := UpsertTeamMember(ctx, tx, &TeamMember{TeamID: teamID, UserID: ownerID, Flags: ownerGrant}); err != nil {
		return "", fmt.Errorf("couldn't add owner to team: %w", err)
	}

	for _, adminID := range adminIDs {
		if adminID == ownerID {
			continue
		}

		if err := FindOrCreateUser(ctx, tx, NewUser(adminID)); err != nil {
			return "", fmt.Errorf("couldn't create user %s: %w", adminID, err)
		}

		if err := UpsertTeamMember(ctx, tx, &TeamMember{TeamID: teamID, UserID: adminID, Flags: adminGrant}); err != nil {
			return "", fmt.Errorf("couldn't add %s to team: %w", adminID, err)
		}
	}

	return teamID, nil
}
