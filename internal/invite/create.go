package invite

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

// User-visible invite creation failures.
var (
	ErrServerNotFound = errors.New("server not found")
	ErrNeedsLogin     = errors.New("in order to view this server, you must login")
	ErrBlacklisted    = errors.New("user is blacklisted from this server")
	ErrNoInvite       = errors.New("server has no invite")
	ErrInvalidInvite  = errors.New("server has an invalid invite")
	ErrNotApproved    = errors.New("server is not approved or certified")
	ErrStateNotPublic = errors.New("server is not public")
)

// CreateInviteForUser resolves a listed server's stored invite descriptor
// into a concrete invite URL, minting a fresh single-user invite when the
// server uses per-user invites. skipChecks bypasses the listing state and
// blacklist gates; callers serving untrusted requests must pass false.
func CreateInviteForUser(ctx context.Context, s *discordgo.Session, q model.Querier, guildID string, userID string, skipChecks bool) (string, error) {
	row, found, err := model.FindServerInviteRow(ctx, q, guildID)
	if err != nil {
		return "", fmt.Errorf("couldn't fetch server data: %w", err)
	}
	if !found {
		return "", ErrServerNotFound
	}

	if !skipChecks {
		if row.LoginRequiredForInvite {
			if userID == "" {
				return "", ErrNeedsLogin
			}

			for _, blocked := range row.BlacklistedUsers {
				if blocked == userID {
					return "", ErrBlacklisted
				}
			}
		}

		if row.Type != "approved" && row.Type != "certified" {
			return "", ErrNotApproved
		}

		if row.State != "public" {
			return "", ErrStateNotPublic
		}
	}

	desc, err := ParseDescriptor(row.Invite)
	if err != nil {
		return "", ErrInvalidInvite
	}

	switch desc.Kind {
	case KindNone:
		return "", ErrNoInvite
	case KindURL:
		return desc.URL, nil
	case KindPerUser:
		reason := "Invite created for anonymous user"
		if userID != "" {
			reason = fmt.Sprintf("Invite created for user %s", userID)
		}

		inv, err := s.ChannelInviteCreate(desc.ChannelID, discordgo.Invite{
			MaxAge:  desc.MaxAge,
			MaxUses: desc.MaxUses,
			Unique:  true,
		}, discordgo.WithAuditLogReason(reason), discordgo.WithContext(ctx))
		if err != nil {
			return "", fmt.Errorf("failed to create invite: %w", err)
		}

		return "https://discord.gg/" + inv.Code, nil
	default:
		return "", ErrInvalidInvite
	}
}
