package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v4"

	"github.com/infinitybotlist/infernoplex/internal/perms"
	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

var errNotListed = errors.New("server is not listed")

func (d *Discord) handleDelete(ctx context.Context, ic *discordgo.InteractionCreate) error {
	if ic.GuildID == "" {
		return guard("This command can only be used in a server.")
	}

	serverID := ic.GuildID
	userID := interactionUserID(ic)

	if err := perms.Check(ctx, d.db(), serverID, userID, perms.Parse("server.delete")); err != nil {
		return err
	}

	if err := d.respondEmbed(ic, embed(
		"Confirm Server Deletion?",
		"Delete your server from Infinity List! This action cannot be reversed.",
	), false, actionRow(
		discordgo.Button{Label: "Confirm", Style: discordgo.DangerButton, CustomID: "confirm"},
		discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: "cancel"},
	)); err != nil {
		return fmt.Errorf("couldn't send deletion prompt: %w", err)
	}

	msg, err := d.session.InteractionResponse(ic.Interaction)
	if err != nil {
		return fmt.Errorf("couldn't fetch deletion prompt message: %w", err)
	}

	comp, outcome := d.awaitComponent(ctx, msg.ID, userID)
	switch outcome {
	case waitTimedOut:
		_, err := d.followupEmbed(ic, embed("Deletion Timed Out", "Please rerun `/delete`!"), true)
		return err
	case waitCancelled:
		d.clearResponseComponents(ic)
		d.ackComponent(comp)
		return nil
	}

	d.clearResponseComponents(ic)

	// the server and its vanity go together, in one transaction; the team
	// and its members are intentionally retained
	err = d.storage.Begin(ctx, func(tx pgx.Tx) error {
		itag, found, err := model.FindServerVanityRef(ctx, tx, serverID)
		if err != nil {
			return err
		}
		if !found {
			return errNotListed
		}

		if err := model.DeleteVanity(ctx, tx, itag); err != nil {
			return err
		}

		return model.DeleteServer(ctx, tx, serverID)
	})
	if errors.Is(err, errNotListed) {
		d.ackComponent(comp)
		return guard("This server isn't listed on Infinity List. Run `/setup`, if you wish to list it.")
	}
	if err != nil {
		return err
	}

	return d.respondEmbed(comp, embed("Server Deleted", "Server has been successfully deleted from Infinity List."), false)
}
