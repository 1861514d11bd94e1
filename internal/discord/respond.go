package discord

import (
	"github.com/bwmarrin/discordgo"
)

func embed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description}
}

func actionRow(buttons ...discordgo.MessageComponent) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: buttons}
}

func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

// respondEmbed sends the initial response to an interaction.
func (d *Discord) respondEmbed(ic *discordgo.InteractionCreate, e *discordgo.MessageEmbed, ephemeral bool, components ...discordgo.MessageComponent) error {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{e},
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return d.session.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// followupEmbed posts a followup message on an already-acknowledged
// interaction, returning the created message.
func (d *Discord) followupEmbed(ic *discordgo.InteractionCreate, e *discordgo.MessageEmbed, ephemeral bool, components ...discordgo.MessageComponent) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{e},
		Components: components,
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return d.session.FollowupMessageCreate(ic.Interaction, true, params)
}

// clearResponseComponents removes the buttons from an interaction's initial
// response after a press, so they cannot be pressed twice.
func (d *Discord) clearResponseComponents(ic *discordgo.InteractionCreate) {
	empty := []discordgo.MessageComponent{}
	if _, err := d.session.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
		Components: &empty,
	}); err != nil {
		d.logger.Debugf("Failed to clear response components: %s.", err)
	}
}

// clearFollowupComponents removes the buttons from a followup message.
func (d *Discord) clearFollowupComponents(ic *discordgo.InteractionCreate, messageID string) {
	empty := []discordgo.MessageComponent{}
	if _, err := d.session.FollowupMessageEdit(ic.Interaction, messageID, &discordgo.WebhookEdit{
		Components: &empty,
	}); err != nil {
		d.logger.Debugf("Failed to clear followup components: %s.", err)
	}
}

// editResponseEmbed swaps the embed of an interaction's initial response.
func (d *Discord) editResponseEmbed(ic *discordgo.InteractionCreate, e *discordgo.MessageEmbed) {
	embeds := []*discordgo.MessageEmbed{e}
	if _, err := d.session.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	}); err != nil {
		d.logger.Debugf("Failed to edit interaction response: %s.", err)
	}
}

// ackComponent acknowledges a component press without any visible change.
func (d *Discord) ackComponent(ic *discordgo.InteractionCreate) {
	if err := d.session.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		d.logger.Debugf("Failed to acknowledge component press: %s.", err)
	}
}

// replyError surfaces an error message on an interaction regardless of
// whether it has been acknowledged yet.
func (d *Discord) replyError(ic *discordgo.InteractionCreate, message string) {
	e := embed("Whoa There!", message)

	if err := d.respondEmbed(ic, e, true); err != nil {
		if _, err := d.followupEmbed(ic, e, true); err != nil {
			d.logger.Errorf("Failed to deliver error reply: %s.", err)
		}
	}
}
