package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

// Membership sync: team access granted implicitly through Discord
// administrator status is revoked when that status goes away. Only rows this
// bot created are touched.

func (d *Discord) onGuildMemberUpdate(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	if e.User == nil || e.User.Bot {
		return
	}

	g, err := d.session.State.Guild(e.GuildID)
	if err != nil {
		d.logger.Debugf("Guild %s not in state, skipping membership sync.", e.GuildID)
		return
	}

	if memberIsAdmin(g, e.Member) {
		return
	}

	d.revokeServiceMembership(e.GuildID, e.User.ID)
}

func (d *Discord) onGuildMemberRemove(_ *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if e.User == nil || e.User.Bot {
		return
	}

	d.revokeServiceMembership(e.GuildID, e.User.ID)
}

func (d *Discord) revokeServiceMembership(guildID, userID string) {
	teamID, found, err := model.FindServerTeam(d.ctx, d.db(), guildID)
	if err != nil {
		d.logger.Errorf("Failed to look up team for guild %s: %s.", guildID, err)
		return
	}
	if !found {
		return
	}

	if err := model.DeleteServiceTeamMember(d.ctx, d.db(), teamID, userID); err != nil {
		d.logger.Errorf("Failed to revoke team membership of %s in team %s: %s.", userID, teamID, err)
		return
	}

	d.logger.Debugf("Revoked implicit team membership of %s in team %s.", userID, teamID)
}
