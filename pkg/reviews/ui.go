package reviews

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/models"
)

const (
	colorGreen = 0x2ECC71
	colorBlue  = 0x3498DB
	colorRed   = 0xE74C3C
	colorGrey  = 0x95A5A6

	defaultCategoryLabel = "🎫 Support"

	positiveThumbnail = "https://i.imgur.com/4M7IWzq.png"
	neutralThumbnail  = "https://i.imgur.com/X8m6QzN.png"
	negativeThumbnail = "https://i.imgur.com/9X8qQcF.png"

	customIDPrefix = "review"

	// CommentInputID identifies the text input inside the comment modal.
	CommentInputID = "review_comment_input"

	maxCommentRunes = 1000
)

// RatingColor maps a rating to the embed color used everywhere a review is
// shown: 4-5 positive, 3 neutral, 1-2 negative.
func RatingColor(rating int) int {
	switch {
	case rating >= 4:
		return colorGreen
	case rating == 3:
		return colorBlue
	default:
		return colorRed
	}
}

func requestEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎫 Ticket Closed - Leave a Review!",
		Description: "Your ticket has been closed! We'd love to hear about your experience.\n\n" +
			"Please take a moment to rate your support experience:",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{{
			Name:  "Rating Scale",
			Value: "⭐ = Poor\n⭐⭐ = Below Average\n⭐⭐⭐ = Average\n⭐⭐⭐⭐ = Good\n⭐⭐⭐⭐⭐ = Excellent",
		}},
		Footer: &discordgo.MessageEmbedFooter{Text: "This review request will expire in 5 minutes"},
	}
}

// CommentPromptEmbed asks whether the user wants to attach a comment.
func CommentPromptEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📝 Add a Comment (Optional)",
		Description: "Would you like to leave a comment with your review?",
		Color:       colorBlue,
	}
}

// SkippedEmbed confirms a dismissed review request.
func SkippedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Review Skipped",
		Description: "Thank you for your feedback! Your review request has been dismissed.",
		Color:       colorGrey,
	}
}

// ExpiredEmbed replaces a request whose flow instance timed out.
func ExpiredEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Review Request Expired",
		Description: "This review request is no longer active.",
		Color:       colorGrey,
	}
}

// SubmittedEmbed is the private confirmation shown after the commit.
func SubmittedEmbed(rating int, comment *string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "✅ Review Submitted!",
		Description: fmt.Sprintf("Thank you for your feedback!\n\n**Rating:** %s", strings.Repeat("⭐", rating)),
		Color:       colorGreen,
	}
	if comment != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Comment",
			Value: *comment,
		})
	}
	return embed
}

func publicEmbed(review *models.Review, username, categoryLabel string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "⭐ New Review Received!",
		Description: "A user has shared their feedback about our support.",
		Color:       RatingColor(review.Rating),
		Timestamp:   review.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Customer", Value: username, Inline: true},
			{Name: "⭐ Rating", Value: fmt.Sprintf("**%d/5**\n%s", review.Rating, review.Stars()), Inline: true},
			{Name: "📂 Category", Value: categoryLabel, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Review #%d • Thank you for your feedback!", review.ID),
		},
	}
	if review.Comment != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "💬 Feedback",
			Value: truncate(*review.Comment, maxCommentRunes),
		})
	}
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: ratingThumbnail(review.Rating)}
	return embed
}

func ratingThumbnail(rating int) string {
	switch {
	case rating >= 4:
		return positiveThumbnail
	case rating == 3:
		return neutralThumbnail
	default:
		return negativeThumbnail
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func ratingComponents(sessionID string) []discordgo.MessageComponent {
	stars := make([]discordgo.MessageComponent, 0, 5)
	for n := 1; n <= 5; n++ {
		stars = append(stars, discordgo.Button{
			Label:    strings.Repeat("⭐", n),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s:%s:rate:%d", customIDPrefix, sessionID, n),
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: stars},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Skip Review",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("%s:%s:skip", customIDPrefix, sessionID),
			},
		}},
	}
}

// CommentComponents are the buttons shown with CommentPromptEmbed.
func CommentComponents(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Add Comment",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s:%s:comment", customIDPrefix, sessionID),
			},
			discordgo.Button{
				Label:    "No Comment",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("%s:%s:nocomment", customIDPrefix, sessionID),
			},
		}},
	}
}

// ModalCustomID names the comment modal for a flow instance.
func ModalCustomID(sessionID string) string {
	return fmt.Sprintf("%s:%s:modal", customIDPrefix, sessionID)
}

// IsFlowCustomID reports whether a component or modal custom ID belongs to
// the review flow.
func IsFlowCustomID(customID string) bool {
	return strings.HasPrefix(customID, customIDPrefix+":")
}

// ParseComponent decodes a button custom ID into a session ID and action.
func ParseComponent(customID string) (sessionID string, action Action, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 || parts[0] != customIDPrefix {
		return "", Action{}, false
	}
	sessionID = parts[1]
	switch parts[2] {
	case "rate":
		if len(parts) != 4 {
			return "", Action{}, false
		}
		rating, err := strconv.Atoi(parts[3])
		if err != nil {
			return "", Action{}, false
		}
		return sessionID, Action{Kind: ActionRated, Rating: rating}, true
	case "skip":
		return sessionID, Action{Kind: ActionSkipped}, true
	case "comment":
		return sessionID, Action{Kind: ActionCommentRequested}, true
	case "nocomment":
		return sessionID, Action{Kind: ActionNoComment}, true
	}
	return "", Action{}, false
}

// ParseModal decodes a modal custom ID into its session ID.
func ParseModal(customID string) (sessionID string, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix || parts[2] != "modal" {
		return "", false
	}
	return parts[1], true
}
