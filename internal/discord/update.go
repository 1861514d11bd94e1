package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/infinitybotlist/infernoplex/internal/perms"
	"github.com/infinitybotlist/infernoplex/internal/storage/model"
	"github.com/infinitybotlist/infernoplex/internal/util"
)

func (d *Discord) handleUpdate(ctx context.Context, ic *discordgo.InteractionCreate) error {
	if ic.GuildID == "" {
		return guard("This command can only be used in a server.")
	}

	serverID := ic.GuildID
	userID := interactionUserID(ic)

	if err := perms.Check(ctx, d.db(), serverID, userID, perms.Parse("server.edit")); err != nil {
		return err
	}

	if err := d.respondEmbed(ic, embed(
		"Update Server Information",
		"Oh, hello there :eyes:\nI see you want to update your server listing on Infinity List! Let's get started!",
	), false, actionRow(
		discordgo.Button{Label: "Basic Info", Style: discordgo.PrimaryButton, CustomID: "basic"},
		discordgo.Button{Label: "Invite", Style: discordgo.PrimaryButton, CustomID: "invite"},
		discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: "cancel"},
	)); err != nil {
		return fmt.Errorf("couldn't send update prompt: %w", err)
	}

	msg, err := d.session.InteractionResponse(ic.Interaction)
	if err != nil {
		return fmt.Errorf("couldn't fetch update prompt message: %w", err)
	}

	comp, outcome := d.awaitComponent(ctx, msg.ID, userID)
	switch outcome {
	case waitTimedOut:
		_, err := d.followupEmbed(ic, embed("Update Timed Out", "Please rerun `/update`!"), true)
		return err
	case waitCancelled:
		d.clearResponseComponents(ic)
		d.ackComponent(comp)
		return nil
	}

	d.clearResponseComponents(ic)

	switch comp.MessageComponentData().CustomID {
	case "basic":
		return d.updateBasicInfo(ctx, ic, comp, serverID, userID)
	case "invite":
		return d.updateInvite(ctx, ic, comp, serverID, userID)
	default:
		return fmt.Errorf("invalid update choice %q", comp.MessageComponentData().CustomID)
	}
}

// updateBasicInfo replaces the short/long descriptions. A single-row update,
// so no transaction is needed.
func (d *Discord) updateBasicInfo(ctx context.Context, ic, comp *discordgo.InteractionCreate, serverID, userID string) error {
	modalID := "update:" + util.RandomCode(16)
	if err := d.session.InteractionRespond(comp.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    "Update Server Information",
			Components: []discordgo.MessageComponent{
				actionRow(discordgo.TextInput{
					CustomID:    "short",
					Label:       "Short Description",
					Style:       discordgo.TextInputShort,
					Placeholder: "Something short and snazzy to brag about!",
					Required:    true,
					MinLength:   20,
					MaxLength:   100,
				}),
				actionRow(discordgo.TextInput{
					CustomID:    "long",
					Label:       "Long/Extended Description",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Both markdown and HTML are supported!",
					Required:    true,
					MinLength:   30,
					MaxLength:   4000,
				}),
			},
		},
	}); err != nil {
		return fmt.Errorf("couldn't open update modal: %w", err)
	}

	sub, outcome := d.awaitModal(ctx, modalID, userID)
	if outcome == waitTimedOut {
		_, err := d.followupEmbed(ic, embed("Modal Timed Out", "Please rerun `/update`!"), true)
		return err
	}

	values := modalValues(sub)
	if len(values) != 2 {
		return fmt.Errorf("expected 2 modal values, got %d", len(values))
	}
	short, long := values[0], values[1]

	if err := validateDescriptions(short, long); err != nil {
		return err
	}

	if err := model.UpdateServerDescriptions(ctx, d.db(), serverID, short, long); err != nil {
		return fmt.Errorf("couldn't update server descriptions: %w", err)
	}

	return d.respondEmbed(sub, embed("Server Updated", "Server has been successfully updated!"), false)
}

// updateInvite re-runs the interactive invite flow and overwrites the stored
// invite descriptor.
func (d *Discord) updateInvite(ctx context.Context, ic, comp *discordgo.InteractionCreate, serverID, userID string) error {
	d.ackComponent(comp)

	inviteStr, outcome, err := d.inviteView(ctx, ic, serverID, userID)
	if err != nil {
		return err
	}
	switch outcome {
	case waitTimedOut:
		_, err := d.followupEmbed(ic, embed("Invite Setup Timed Out", "Please rerun `/update`!"), true)
		return err
	case waitCancelled:
		_, err := d.followupEmbed(ic, embed("Update Cancelled", "Rerun `/update` whenever you are ready!"), true)
		return err
	}

	if err := model.UpdateServerInvite(ctx, d.db(), serverID, inviteStr); err != nil {
		return fmt.Errorf("couldn't update server invite: %w", err)
	}

	_, err = d.followupEmbed(ic, embed("Server Updated", "Server has been successfully updated!"), false)
	return err
}
