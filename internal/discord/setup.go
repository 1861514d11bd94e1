package discord

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v4"

	"github.com/infinitybotlist/infernoplex/internal/perms"
	"github.com/infinitybotlist/infernoplex/internal/storage/model"
	"github.com/infinitybotlist/infernoplex/internal/util"
	"github.com/infinitybotlist/infernoplex/internal/webp"
)

const setupConfirmText = `
The following setup will now be performed:

- A new team will be created for your server. The server owner as well as all administrators will then be able to manage this servers listing. You can add more members later through ` + "`Team Settings`" + `.
- This server will be added and will be owned by the team. Note that you can transfer ownership of this team to anyone on Infinity List if you want to.
- The server created will be set as a ` + "`draft`" + ` and will not be visible until it is published.

Notes:
- If you wish to recover access to this server (rogue moderator/admin etc) within Infinity List, please contact [support](https://infinitybots.gg/redirect/discord)
- **Please now prepare a short and long description for your server.** You can change these later through ` + "`Server Settings`" + ` on the website.
- By continuing, you agree that you have read and understood the [Terms of Service](https://infinitybots.gg/legal/terms)
`

func guard(msg string) error {
	return &perms.GuardError{Message: msg}
}

func (d *Discord) handleSetup(ctx context.Context, ic *discordgo.InteractionCreate) error {
	if ic.GuildID == "" {
		return guard("This command can only be used in a server.")
	}

	serverID := ic.GuildID
	userID := interactionUserID(ic)

	exists, err := model.ServerExists(ctx, d.db(), serverID)
	if err != nil {
		return fmt.Errorf("couldn't check for existing server: %w", err)
	}

	if exists {
		listingURL := fmt.Sprintf("%s/servers/%s", d.config.frontendURL, serverID)
		e := embed("Server Already Setup", "Currently, most server settings can only be changed from the website!")
		e.URL = listingURL
		return d.respondEmbed(ic, e, true, actionRow(discordgo.Button{
			Label: "Redirect",
			Style: discordgo.LinkButton,
			URL:   listingURL,
		}))
	}

	if err := d.respondEmbed(ic, embed("Confirm Setup?", setupConfirmText), false, actionRow(
		discordgo.Button{Label: "Next", Style: discordgo.PrimaryButton, CustomID: "next"},
		discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: "cancel"},
	)); err != nil {
		return fmt.Errorf("couldn't send confirm prompt: %w", err)
	}

	msg, err := d.session.InteractionResponse(ic.Interaction)
	if err != nil {
		return fmt.Errorf("couldn't fetch confirm prompt message: %w", err)
	}

	comp, outcome := d.awaitComponent(ctx, msg.ID, userID)
	switch outcome {
	case waitTimedOut:
		_, err := d.followupEmbed(ic, embed("Setup Timed Out", "Please rerun `/setup`!"), true)
		return err
	case waitCancelled:
		d.clearResponseComponents(ic)
		d.ackComponent(comp)
		return nil
	}

	d.clearResponseComponents(ic)

	modalID := "setup:" + util.RandomCode(16)
	if err := d.session.InteractionRespond(comp.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    "Initial Setup",
			Components: []discordgo.MessageComponent{
				actionRow(discordgo.TextInput{
					CustomID:    "vanity",
					Label:       "Vanity",
					Style:       discordgo.TextInputShort,
					Placeholder: "This must be unique, so think hard!",
					Required:    true,
					MinLength:   1,
					MaxLength:   20,
				}),
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
		return fmt.Errorf("couldn't open setup modal: %w", err)
	}

	sub, outcome := d.awaitModal(ctx, modalID, userID)
	if outcome == waitTimedOut {
		_, err := d.followupEmbed(ic, embed("Modal Timed Out", "Please rerun `/setup`!"), true)
		return err
	}

	values := modalValues(sub)
	if len(values) != 3 {
		return fmt.Errorf("expected 3 modal values, got %d", len(values))
	}
	vanity, short, long := values[0], values[1], values[2]

	if err := validateListingInputs(vanity, short, long); err != nil {
		return err
	}

	if err := d.respondEmbed(sub, embed("Setting up server...", "This may take a second, please wait..."), false); err != nil {
		return fmt.Errorf("couldn't acknowledge setup modal: %w", err)
	}

	inviteStr, outcome, err := d.inviteView(ctx, sub, serverID, userID)
	if err != nil {
		return err
	}
	switch outcome {
	case waitTimedOut:
		_, err := d.followupEmbed(sub, embed("Invite Setup Timed Out", "Please rerun `/setup`!"), true)
		return err
	case waitCancelled:
		_, err := d.followupEmbed(sub, embed("Setup Cancelled", "Rerun `/setup` whenever you are ready!"), true)
		return err
	}

	stats, err := d.guildStats(serverID)
	if err != nil {
		return err
	}

	// member counts must fit the 32-bit columns; overflow aborts before any
	// write happens
	total, err := toInt32(stats.TotalMembers)
	if err != nil {
		return err
	}
	online, err := toInt32(stats.OnlineMembers)
	if err != nil {
		return err
	}

	g, err := d.session.State.Guild(serverID)
	if err != nil {
		return fmt.Errorf("guild %s not in state: %w", serverID, err)
	}
	admins := adminMemberIDs(g)

	err = d.storage.Begin(ctx, func(tx pgx.Tx) error {
		teamID, err := model.ProvisionTeam(ctx, tx, stats.Name+"'s Team", stats.OwnerID, admins)
		if err != nil {
			return err
		}

		img, err := stats.DownloadIcon(ctx)
		if err != nil {
			return fmt.Errorf("couldn't download guild icon: %w", err)
		}

		// a conversion failure must abort the whole setup, so this runs
		// inside the transaction even though it is an external process call
		if err := webp.Convert(stats.Icon, filepath.Join(d.config.cdnPath, "avatars", "teams", teamID+".webp"), img); err != nil {
			return fmt.Errorf("error converting image to webp [teams]: %w", err)
		}
		if err := webp.Convert(stats.Icon, filepath.Join(d.config.cdnPath, "avatars", "servers", serverID+".webp"), img); err != nil {
			return fmt.Errorf("error converting image to webp [servers]: %w", err)
		}

		itag, err := model.ReserveVanity(ctx, tx, vanity, model.ServerTarget(serverID))
		if err != nil {
			return err
		}

		return model.CreateServer(ctx, tx, &model.Server{
			ServerID:      serverID,
			Name:          stats.Name,
			TeamOwner:     teamID,
			TotalMembers:  total,
			OnlineMembers: online,
			Short:         short,
			Long:          long,
			Invite:        inviteStr,
			VanityRef:     itag,
			NSFW:          stats.NSFW,
		})
	})
	if errors.Is(err, model.ErrSlugTaken) {
		_, err := d.followupEmbed(sub, embed("Vanity Already Exists", "Please rerun `/setup` with a new vanity!"), true)
		return err
	}
	if err != nil {
		return err
	}

	_, err = d.followupEmbed(sub, embed("All Done!", "All done :white_check_mark:"), false)
	return err
}

func validateListingInputs(vanity, short, long string) error {
	if n := utf8.RuneCountInString(vanity); n < 1 || n > 20 {
		return guard("Vanity must be between 1 and 20 characters long!")
	}
	return validateDescriptions(short, long)
}

func validateDescriptions(short, long string) error {
	if n := utf8.RuneCountInString(short); n < 20 || n > 100 {
		return guard("Short description must be between 20 and 100 characters long!")
	}
	if n := utf8.RuneCountInString(long); n < 30 || n > 4000 {
		return guard("Long description must be between 30 and 4000 characters long!")
	}
	return nil
}

func toInt32(n int) (int32, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("member count %d does not fit in an int32", n)
	}
	return int32(n), nil
}
