package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/models"
)

func (b *Bot) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		payment := &models.Payment{
			Name: opts["name"].StringValue(),
			URL:  opts["url"].StringValue(),
		}
		if opt, ok := opts["image_url"]; ok {
			v := opt.StringValue()
			payment.Image = &v
		}
		if opt, ok := opts["description"]; ok {
			v := opt.StringValue()
			payment.Description = &v
		}
		if err := b.store.CreatePayment(ctx, payment); err != nil {
			return err
		}
		b.replyEphemeral(s, i, fmt.Sprintf("Added %s to payment options", payment.Name))
		return nil

	case "remove":
		name := opts["name"].StringValue()
		if err := b.store.DeletePaymentByName(ctx, name); err != nil {
			return err
		}
		b.replyEphemeral(s, i, fmt.Sprintf("Removed %s from payment options", name))
		return nil

	case "send":
		name := opts["name"].StringValue()
		payment, err := b.store.GetPaymentByName(ctx, name)
		if err != nil {
			return err
		}
		if payment == nil {
			b.replyEphemeral(s, i, fmt.Sprintf("Payment option %s not found", name))
			return nil
		}
		description := payment.URL
		if payment.Description != nil {
			description += "\n\n" + *payment.Description
		}
		embed := &discordgo.MessageEmbed{
			Title:       payment.Name,
			Description: description,
			Color:       colorBlurple,
		}
		if payment.Image != nil {
			embed.Image = &discordgo.MessageEmbedImage{URL: *payment.Image}
		}
		return b.replyEphemeralEmbed(s, i, embed)
	}
	return nil
}

// handlePayAutocomplete offers every stored payment name.
func (b *Bot) handlePayAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	payments, err := b.store.ListPayments(context.Background())
	if err != nil {
		return err
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(payments))
	for _, payment := range payments {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  payment.Name,
			Value: payment.Name,
		})
		if len(choices) == 25 {
			break
		}
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}
