package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/pkg/reviews"
)

const (
	colorGreen = 0x2ECC71
	colorBlue  = 0x3498DB
	colorGrey  = 0x95A5A6
)

func (b *Bot) handleReviews(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "stats":
		return b.handleReviewStats(ctx, s, i)
	case "list":
		limit := 10
		if opt, ok := opts["limit"]; ok {
			limit = int(opt.IntValue())
			if limit > 50 {
				limit = 50
			}
			if limit < 1 {
				limit = 1
			}
		}
		return b.handleReviewList(ctx, s, i, limit)
	case "associate":
		channel := opts["channel"].ChannelValue(s)
		user := opts["user"].UserValue(s)
		if !b.tracker.InTicketCategory(channel.ParentID) {
			b.replyEphemeral(s, i, "❌ This channel is not in a configured ticket category.")
			return nil
		}
		if err := b.tracker.Associate(ctx, channel.ID, channel.ParentID, user.ID); err != nil {
			return err
		}
		return b.replyEphemeralEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "✅ Ticket Associated",
			Description: fmt.Sprintf("Successfully associated %s with ticket channel <#%s>", user.Mention(), channel.ID),
			Color:       colorGreen,
		})
	case "setchannel":
		channel := opts["channel"].ChannelValue(s)
		b.flow.SetPublicChannel(channel.ID)
		return b.replyEphemeralEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "✅ Review Channel Set",
			Description: fmt.Sprintf("Public reviews will now be posted in <#%s>", channel.ID),
			Color:       colorGreen,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Channel ID", Value: channel.ID, Inline: true},
				{Name: "Note", Value: "This setting will reset when the bot restarts. Update the config file for permanent configuration."},
			},
		})
	}
	return nil
}

func (b *Bot) handleReviewStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	total, err := b.store.CountReviews(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return b.replyEphemeralEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "📊 Review Statistics",
			Description: "No reviews have been collected yet.",
			Color:       colorGrey,
		})
	}

	average, err := b.store.AverageRating(ctx)
	if err != nil {
		return err
	}
	distribution, err := b.store.RatingDistribution(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		if count := distribution[rating]; count > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", strings.Repeat("⭐", rating), count))
		}
	}

	return b.replyEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title: "📊 Review Statistics",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Reviews", Value: fmt.Sprintf("%d", total), Inline: true},
			{Name: "Average Rating", Value: fmt.Sprintf("%.1f ⭐", average), Inline: true},
			{Name: "Rating Distribution", Value: strings.Join(lines, "\n")},
		},
	})
}

func (b *Bot) handleReviewList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, limit int) error {
	list, err := b.store.ListRecentReviews(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return b.replyEphemeralEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "📝 Recent Reviews",
			Description: "No reviews found.",
			Color:       colorGrey,
		})
	}

	users := sessionUserResolver{s}
	embed := &discordgo.MessageEmbed{
		Title: "📝 Recent Reviews",
		Color: colorBlue,
	}
	for _, review := range list {
		username := "Unknown User"
		if name, err := users.Username(review.UserID); err == nil && name != "" {
			username = name
		}
		text := fmt.Sprintf("**%s**: %s", username, review.Stars())
		if review.Comment != nil {
			text += "\n" + previewComment(*review.Comment)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Review #%d", review.ID),
			Value: text,
		})
	}
	return b.replyEphemeralEmbed(s, i, embed)
}

func previewComment(comment string) string {
	runes := []rune(comment)
	if len(runes) <= 100 {
		return comment
	}
	return string(runes[:100]) + "..."
}

// handleReviewComponent maps a review-flow button press onto the flow state
// machine and renders the next step.
func (b *Bot) handleReviewComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	sessionID, action, ok := reviews.ParseComponent(i.MessageComponentData().CustomID)
	if !ok {
		return nil
	}
	result, err := b.flow.Advance(context.Background(), sessionID, action)
	if err != nil {
		return err
	}
	return b.renderStep(s, i, sessionID, result)
}

// handleReviewModal commits the review with the comment entered in the modal.
func (b *Bot) handleReviewModal(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	sessionID, ok := reviews.ParseModal(data.CustomID)
	if !ok {
		return nil
	}
	comment := ""
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == reviews.CommentInputID {
				comment = input.Value
			}
		}
	}
	result, err := b.flow.Advance(context.Background(), sessionID, reviews.Action{
		Kind:    reviews.ActionCommentSubmitted,
		Comment: comment,
	})
	if err != nil {
		return err
	}
	return b.renderStep(s, i, sessionID, result)
}

func (b *Bot) renderStep(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string, result *reviews.StepResult) error {
	switch result.Kind {
	case reviews.StepPromptComment:
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{reviews.CommentPromptEmbed()},
				Components: reviews.CommentComponents(sessionID),
			},
		})
	case reviews.StepOpenCommentModal:
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: reviews.ModalCustomID(sessionID),
				Title:    "Leave a Comment",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    reviews.CommentInputID,
							Label:       "Your Comment",
							Placeholder: "Tell us about your experience...",
							Style:       discordgo.TextInputParagraph,
							MaxLength:   1000,
							Required:    false,
						},
					}},
				},
			},
		})
	case reviews.StepSkipped:
		return b.updateMessage(s, i, reviews.SkippedEmbed())
	case reviews.StepDone:
		return b.updateMessage(s, i, reviews.SubmittedEmbed(result.Rating, result.Review.Comment))
	case reviews.StepExpired:
		return b.updateMessage(s, i, reviews.ExpiredEmbed())
	}
	return nil
}

// updateMessage replaces the DM content and strips the buttons so a finished
// flow cannot be driven again.
func (b *Bot) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
}
