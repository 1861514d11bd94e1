package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/infinitybotlist/infernoplex/internal/perms"
)

var (
	adminPerm       = int64(discordgo.PermissionAdministrator)
	manageGuildPerm = int64(discordgo.PermissionManageServer)
	noDM            = false
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:                     "setup",
		Description:              "Sets up this server on Infinity List, needs 'Administrator' permissions",
		DefaultMemberPermissions: &adminPerm,
		DMPermission:             &noDM,
	},
	{
		Name:                     "update",
		Description:              "Update your server information on Infinity List, needs 'Manage Server' permissions",
		DefaultMemberPermissions: &manageGuildPerm,
		DMPermission:             &noDM,
	},
	{
		Name:                     "delete",
		Description:              "Delete your server from Infinity List, needs 'Manage Server' permissions",
		DefaultMemberPermissions: &manageGuildPerm,
		DMPermission:             &noDM,
	},
}

func (d *Discord) onReady(_ *discordgo.Session, e *discordgo.Ready) {
	d.logger.Infof("Logged in Discord API as %s.", e.User)

	if _, err := d.session.ApplicationCommandBulkOverwrite(d.config.appID, "", commands); err != nil {
		d.logger.Errorf("Failed to register application commands: %s.", err)
	}
}

func (d *Discord) onInteractionCreate(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		// component and modal interactions are consumed by await handlers
		return
	}

	name := ic.ApplicationCommandData().Name

	// each interaction runs as its own task; workflow instances never block
	// each other
	go d.dispatch(name, ic)
}

func (d *Discord) dispatch(name string, ic *discordgo.InteractionCreate) {
	userID := interactionUserID(ic)
	d.logger.Infof("Executing command %s for user %s...", name, userID)

	var err error
	switch name {
	case "setup":
		err = d.handleSetup(d.ctx, ic)
	case "update":
		err = d.handleUpdate(d.ctx, ic)
	case "delete":
		err = d.handleDelete(d.ctx, ic)
	default:
		d.logger.Errorf("Unknown command %s.", name)
		return
	}

	if err != nil {
		var ge *perms.GuardError
		if errors.As(err, &ge) {
			d.replyError(ic, ge.Message)
		} else {
			d.logger.Errorf("Error in command %s: %s.", name, err)
			d.replyError(ic, "Something went wrong, please try again later!")
		}
		return
	}

	d.logger.Infof("Done executing command %s for user %s.", name, userID)
}
