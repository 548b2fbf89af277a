package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/models"
)

// handleVouch records a vouch and posts its embed publicly. The rating is
// constrained to 1-5 by the option choices and re-checked here before the row
// is created.
func (b *Bot) handleVouch(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	opts := optionMap(i.ApplicationCommandData().Options)

	body := opts["vouch"].StringValue()
	rating := int(opts["rating"].IntValue())
	if rating < 1 || rating > 5 {
		b.replyEphemeral(s, i, "Rating must be between 1 and 5")
		return nil
	}

	author := i.User
	if i.Member != nil {
		author = i.Member.User
	}

	count, err := b.store.CountVouchesByUser(ctx, author.ID)
	if err != nil {
		return err
	}
	if count == 0 {
		count = 1
	}

	if err := b.store.CreateVouch(ctx, &models.Vouch{
		UserID: author.ID,
		Body:   body,
		Rating: rating,
	}); err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Vouch #%d", count),
		Description: strings.Repeat("⭐", rating),
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Vouch", Value: body},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: author.AvatarURL("")},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    b.cfg.Vouch.Footer,
			IconURL: s.State.User.AvatarURL(""),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
