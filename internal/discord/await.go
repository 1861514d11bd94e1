package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// interactionWait bounds every confirmation and modal wait. A wait that
// elapses ends only its own workflow instance, as a timeout rather than an
// error.
const interactionWait = 360 * time.Second

type waitOutcome int

const (
	waitCompleted waitOutcome = iota
	waitCancelled
	waitTimedOut
)

// awaitComponent waits for userID to press a component on the message,
// using a temporary gateway handler that is removed once the wait ends.
// A press of a component whose custom id is "cancel" completes the wait as
// cancelled.
func (d *Discord) awaitComponent(ctx context.Context, messageID, userID string) (*discordgo.InteractionCreate, waitOutcome) {
	ch := make(chan *discordgo.InteractionCreate, 1)

	remove := d.session.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionMessageComponent {
			return
		}
		if ic.Message == nil || ic.Message.ID != messageID {
			return
		}
		if interactionUserID(ic) != userID {
			return
		}

		select {
		case ch <- ic:
		default:
		}
	})
	defer remove()

	timer := time.NewTimer(interactionWait)
	defer timer.Stop()

	select {
	case ic := <-ch:
		if ic.MessageComponentData().CustomID == "cancel" {
			return ic, waitCancelled
		}
		return ic, waitCompleted
	case <-timer.C:
		return nil, waitTimedOut
	case <-ctx.Done():
		return nil, waitTimedOut
	}
}

// awaitModal waits for userID to submit the modal with the given custom id.
func (d *Discord) awaitModal(ctx context.Context, customID, userID string) (*discordgo.InteractionCreate, waitOutcome) {
	ch := make(chan *discordgo.InteractionCreate, 1)

	remove := d.session.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionModalSubmit {
			return
		}
		if ic.ModalSubmitData().CustomID != customID {
			return
		}
		if interactionUserID(ic) != userID {
			return
		}

		select {
		case ch <- ic:
		default:
		}
	})
	defer remove()

	timer := time.NewTimer(interactionWait)
	defer timer.Stop()

	select {
	case ic := <-ch:
		return ic, waitCompleted
	case <-timer.C:
		return nil, waitTimedOut
	case <-ctx.Done():
		return nil, waitTimedOut
	}
}

// modalValues extracts the text input values of a modal submission in
// component order.
func modalValues(ic *discordgo.InteractionCreate) []string {
	data := ic.ModalSubmitData()

	var values []string
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok {
				values = append(values, ti.Value)
			}
		}
	}

	return values
}
