package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/infinitybotlist/infernoplex/internal/invite"
	"github.com/infinitybotlist/infernoplex/internal/util"
)

const inviteViewText = `
Okay! Now, let's setup the invite for this server! To get started, choose which type of invite you would like

- **Invite URL** - Use a (permanent) invite link of your choice
- **Per-User Invite** - Infinity List will create an invite for this server for each user
- **None** - This server will not be invitable. Useful, if you wish to use a whitelist form and manually send out invites
`

// inviteView runs the interactive invite-selection flow on followups of an
// already-acknowledged interaction and returns the invite descriptor the
// user chose.
func (d *Discord) inviteView(ctx context.Context, ic *discordgo.InteractionCreate, guildID, userID string) (string, waitOutcome, error) {
	msg, err := d.followupEmbed(ic, embed("Invite Setup", inviteViewText), false,
		actionRow(
			discordgo.Button{Label: "Invite URL", Style: discordgo.PrimaryButton, CustomID: "invite_url"},
			discordgo.Button{Label: "Per-User Invite", Style: discordgo.PrimaryButton, CustomID: "per_user"},
			discordgo.Button{Label: "No Invites", Style: discordgo.PrimaryButton, CustomID: "none"},
		),
		actionRow(
			discordgo.Button{Label: "-", CustomID: "p1", Disabled: true, Style: discordgo.SecondaryButton},
			discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: "cancel"},
			discordgo.Button{Label: "-", CustomID: "p2", Disabled: true, Style: discordgo.SecondaryButton},
		),
	)
	if err != nil {
		return "", waitCompleted, fmt.Errorf("couldn't send invite setup view: %w", err)
	}

	comp, outcome := d.awaitComponent(ctx, msg.ID, userID)
	if outcome == waitTimedOut {
		return "", waitTimedOut, nil
	}

	d.clearFollowupComponents(ic, msg.ID)

	if outcome == waitCancelled {
		d.ackComponent(comp)
		return "", waitCancelled, nil
	}

	switch comp.MessageComponentData().CustomID {
	case "none":
		d.ackComponent(comp)
		return invite.Descriptor{Kind: invite.KindNone}.String(), waitCompleted, nil
	case "invite_url":
		return d.inviteURLPane(ctx, comp, userID)
	case "per_user":
		return d.perUserPane(ctx, comp, guildID, userID)
	default:
		return "", waitCompleted, fmt.Errorf("invalid invite choice %q", comp.MessageComponentData().CustomID)
	}
}

func (d *Discord) inviteURLPane(ctx context.Context, comp *discordgo.InteractionCreate, userID string) (string, waitOutcome, error) {
	modalID := "invite_url:" + util.RandomCode(16)
	if err := d.session.InteractionRespond(comp.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    "Invite URL Selection",
			Components: []discordgo.MessageComponent{
				actionRow(discordgo.TextInput{
					CustomID:    "invite_url",
					Label:       "Enter Invite URL",
					Style:       discordgo.TextInputShort,
					Placeholder: "Please enter the Invite URL you wish to use!",
					Required:    true,
					MinLength:   20,
					MaxLength:   100,
				}),
			},
		},
	}); err != nil {
		return "", waitCompleted, fmt.Errorf("couldn't open invite URL modal: %w", err)
	}

	sub, outcome := d.awaitModal(ctx, modalID, userID)
	if outcome == waitTimedOut {
		return "", waitTimedOut, nil
	}

	values := modalValues(sub)
	if len(values) != 1 {
		return "", waitCompleted, fmt.Errorf("expected 1 modal value, got %d", len(values))
	}
	inviteURL := values[0]

	if err := d.respondEmbed(sub, embed("Resolving invite", fmt.Sprintf("Please wait while we try to resolve this invite: %s", inviteURL)), false); err != nil {
		return "", waitCompleted, fmt.Errorf("couldn't acknowledge invite URL modal: %w", err)
	}

	if err := invite.ValidateInviteURL(ctx, d.session, inviteURL); err != nil {
		d.editResponseEmbed(sub, embed("Error resolving invite", fmt.Sprintf("This invite could not be resolved: %s", err)))
		return "", waitCompleted, guard(fmt.Sprintf("Error resolving invite: %s", err))
	}

	d.editResponseEmbed(sub, embed("Resolved invite successfully!", fmt.Sprintf("You have inputted: %s", inviteURL)))

	return invite.Descriptor{Kind: invite.KindURL, URL: inviteURL}.String(), waitCompleted, nil
}

func (d *Discord) perUserPane(ctx context.Context, comp *discordgo.InteractionCreate, guildID, userID string) (string, waitOutcome, error) {
	modalID := "per_user:" + util.RandomCode(16)
	if err := d.session.InteractionRespond(comp.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    "Per-User Invite Selection",
			Components: []discordgo.MessageComponent{
				actionRow(discordgo.TextInput{
					CustomID:    "channel_id",
					Label:       "Enter Channel ID",
					Style:       discordgo.TextInputShort,
					Placeholder: "Please enter the Channel ID you wish to use!",
					Required:    true,
					MinLength:   17,
					MaxLength:   20,
				}),
				actionRow(discordgo.TextInput{
					CustomID:    "max_uses",
					Label:       "Max Uses",
					Style:       discordgo.TextInputShort,
					Placeholder: "How many times should a per-user invite be usable for. Use 1 if unsure",
					Required:    true,
					MinLength:   1,
					MaxLength:   3,
				}),
				actionRow(discordgo.TextInput{
					CustomID:    "max_age",
					Label:       "Max Age",
					Style:       discordgo.TextInputShort,
					Placeholder: "How long should the invite be valid for. Use 0 if unsure",
					Required:    true,
					MinLength:   1,
					MaxLength:   3,
				}),
			},
		},
	}); err != nil {
		return "", waitCompleted, fmt.Errorf("couldn't open per-user invite modal: %w", err)
	}

	sub, outcome := d.awaitModal(ctx, modalID, userID)
	if outcome == waitTimedOut {
		return "", waitTimedOut, nil
	}

	if err := d.respondEmbed(sub, embed("Please wait!", "Please wait..."), false); err != nil {
		return "", waitCompleted, fmt.Errorf("couldn't acknowledge per-user invite modal: %w", err)
	}

	values := modalValues(sub)
	if len(values) != 3 {
		return "", waitCompleted, fmt.Errorf("expected 3 modal values, got %d", len(values))
	}

	channelID := values[0]
	if _, err := util.ParseSnowflake(channelID); err != nil {
		return "", waitCompleted, guard("Channel ID must be a valid ID!")
	}

	channel, err := d.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", waitCompleted, guard("This channel could not be found!")
	}

	if channel.GuildID != guildID {
		return "", waitCompleted, guard("Channel must be in this server!")
	}
	if channel.Type == discordgo.ChannelTypeDM || channel.Type == discordgo.ChannelTypeGroupDM {
		return "", waitCompleted, guard("Channel must be a guild channel!")
	}

	maxUses, err := strconv.Atoi(values[1])
	if err != nil || maxUses < 0 || maxUses > 255 {
		return "", waitCompleted, guard("Max uses must be a number between 0 and 255!")
	}

	maxAge, err := strconv.Atoi(values[2])
	if err != nil || maxAge < 0 {
		return "", waitCompleted, guard("Max age must be a non-negative number of seconds!")
	}

	desc := invite.Descriptor{Kind: invite.KindPerUser, ChannelID: channelID, MaxUses: maxUses, MaxAge: maxAge}
	return desc.String(), waitCompleted, nil
}
