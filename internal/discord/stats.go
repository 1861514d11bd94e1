package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

const defaultIconURL = "https://cdn.discordapp.com/embed/avatars/0.png"

var iconClient = &http.Client{Timeout: 10 * time.Second}

// GuildStats is a point-in-time snapshot of a guild taken from gateway state.
type GuildStats struct {
	Name          string
	Icon          string
	OwnerID       string
	TotalMembers  int
	OnlineMembers int
	NSFW          bool
}

func (d *Discord) guildStats(guildID string) (*GuildStats, error) {
	g, err := d.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state: %w", guildID, err)
	}

	icon := defaultIconURL
	if g.Icon != "" {
		icon = discordgo.EndpointGuildIcon(g.ID, g.Icon)
	}

	online := 0
	for _, p := range g.Presences {
		if p.Status != discordgo.StatusOffline {
			online++
		}
	}

	return &GuildStats{
		Name:          g.Name,
		Icon:          icon,
		OwnerID:       g.OwnerID,
		TotalMembers:  g.MemberCount,
		OnlineMembers: online,
		NSFW:          g.NSFWLevel == discordgo.GuildNSFWLevelExplicit || g.NSFWLevel == discordgo.GuildNSFWLevelAgeRestricted,
	}, nil
}

func (st *GuildStats) DownloadIcon(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, st.Icon, nil)
	if err != nil {
		return nil, err
	}

	resp, err := iconClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// memberIsAdmin reports whether a member holds the Administrator permission
// through any role, or owns the guild outright.
func memberIsAdmin(g *discordgo.Guild, m *discordgo.Member) bool {
	if m.User != nil && m.User.ID == g.OwnerID {
		return true
	}

	for _, roleID := range m.Roles {
		for _, r := range g.Roles {
			if r.ID == roleID && r.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}

	return false
}

// adminMemberIDs collects non-bot administrators of a guild, excluding the
// owner.
func adminMemberIDs(g *discordgo.Guild) []string {
	var ids []string
	for _, m := range g.Members {
		if m.User == nil || m.User.Bot || m.User.ID == g.OwnerID {
			continue
		}
		if memberIsAdmin(g, m) {
			ids = append(ids, m.User.ID)
		}
	}
	return ids
}
