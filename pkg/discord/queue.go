package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		member := opts["member"].UserValue(s)
		product := opts["product"].StringValue()
		var position *int
		if opt, ok := opts["position"]; ok {
			v := int(opt.IntValue())
			position = &v
		}
		if err := b.queue.Add(ctx, member.ID, member.Username, product, position); err != nil {
			return err
		}
		b.replyEphemeral(s, i, fmt.Sprintf("Added %s to the queue for %s", member.Mention(), product))
		return nil

	case "remove":
		return b.handleQueueRemove(ctx, s, i, opts)

	case "send_embed":
		if err := b.queue.Refresh(ctx); err != nil {
			return err
		}
		b.replyEphemeral(s, i, "Sent the queue embed to the channel")
		return nil

	case "update_embed":
		if err := b.queue.Refresh(ctx); err != nil {
			return err
		}
		b.replyEphemeral(s, i, "Updated the queue embed")
		return nil

	case "clear":
		if err := b.queue.Clear(ctx); err != nil {
			return err
		}
		b.replyEphemeral(s, i, "Cleared the queue")
		return nil
	}
	return nil
}

// handleQueueRemove drops the member from the queue, optionally DMing them
// the removal notice with the product file or URL attached.
func (b *Bot) handleQueueRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	member := opts["member"].UserValue(s)
	product := opts["product"].StringValue()
	dm := false
	if opt, ok := opts["dm"]; ok {
		dm = opt.BoolValue()
	}

	if dm {
		content := b.cfg.Queue.RemovalMessage
		if opt, ok := opts["file"]; ok {
			if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
				if attachment, found := resolved.Attachments[opt.Value.(string)]; found {
					content += fmt.Sprintf("\n\nProduct: %s", attachment.URL)
				}
			}
		} else if opt, ok := opts["url"]; ok {
			content += fmt.Sprintf("\n\nProduct: %s", opt.StringValue())
		}

		msgr := sessionMessenger{s}
		if err := msgr.sendDMText(member.ID, content); err != nil {
			b.logger.Warn("could not DM queue removal notice", "user_id", member.ID, "error", err)
			b.replyEphemeral(s, i, fmt.Sprintf("Unable to remove %s from the queue for %s possibly because their DMs are off.", member.Mention(), product))
			return nil
		}
		if err := b.queue.Remove(ctx, member.ID); err != nil {
			return err
		}
		b.replyEphemeral(s, i, fmt.Sprintf("Removed %s from the queue for %s and successfully DMed.", member.Mention(), product))
		return nil
	}

	if err := b.queue.Remove(ctx, member.ID); err != nil {
		return err
	}
	b.replyEphemeral(s, i, fmt.Sprintf("Removed %s from the queue for %s.", member.Mention(), product))
	return nil
}
