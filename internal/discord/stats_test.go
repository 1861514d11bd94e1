package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "100",
		OwnerID: "1",
		Roles: []*discordgo.Role{
			{ID: "r-admin", Permissions: discordgo.PermissionAdministrator},
			{ID: "r-mod", Permissions: discordgo.PermissionManageMessages},
		},
		// 1 is the owner, 2 is an admin, 3 is a plain moderator, 4 is an
		// admin bot
		Members: []*discordgo.Member{
			{User: &discordgo.User{ID: "1"}},
			{User: &discordgo.User{ID: "2"}, Roles: []string{"r-admin"}},
			{User: &discordgo.User{ID: "3"}, Roles: []string{"r-mod"}},
			{User: &discordgo.User{ID: "4", Bot: true}, Roles: []string{"r-admin"}},
		},
	}
}

func TestMemberIsAdmin(t *testing.T) {
	g := testGuild()

	assert.True(t, memberIsAdmin(g, g.Members[0]), "owner is always admin")
	assert.True(t, memberIsAdmin(g, g.Members[1]))
	assert.False(t, memberIsAdmin(g, g.Members[2]))
	assert.True(t, memberIsAdmin(g, g.Members[3]))
}

func TestAdminMemberIDs(t *testing.T) {
	// owner and bots are excluded even when they hold admin roles
	assert.Equal(t, []string{"2"}, adminMemberIDs(testGuild()))
}

func TestInteractionUserID(t *testing.T) {
	guildIC := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "42"}},
	}}
	assert.Equal(t, "42", interactionUserID(guildIC))

	dmIC := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "43"},
	}}
	assert.Equal(t, "43", interactionUserID(dmIC))

	assert.Equal(t, "", interactionUserID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}
