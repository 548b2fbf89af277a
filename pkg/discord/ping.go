package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// handlePing DMs a member a nudge pointing back at the ticket channel the
// command was run in.
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i.ApplicationCommandData().Options)
	member := opts["member"].UserValue(s)

	jumpURL := fmt.Sprintf("https://discord.com/channels/%s/%s", i.GuildID, i.ChannelID)
	content := fmt.Sprintf("**Your attention is needed in your ticket!** Please visit your ticket by clicking the link below:\n\n%s", jumpURL)

	msgr := sessionMessenger{s}
	if err := msgr.sendDMText(member.ID, content); err != nil {
		b.logger.Warn("could not DM ping", "user_id", member.ID, "error", err)
		b.replyEphemeral(s, i, fmt.Sprintf("Unable to ping %s", member.Mention()))
		return nil
	}
	b.replyEphemeral(s, i, fmt.Sprintf("Pong! %s", member.Mention()))
	return nil
}
