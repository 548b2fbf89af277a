package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

var adminOnly = int64(discordgo.PermissionAdministrator)

// commandDefinitions is the full slash-command surface. Everything is
// administrator-only except /vouch.
func commandDefinitions() []*discordgo.ApplicationCommand {
	ratingChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 5)
	for n := 1; n <= 5; n++ {
		ratingChoices = append(ratingChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  strconv.Itoa(n),
			Value: n,
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "pay",
			Description:              "Payment Options",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a payment option",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "The name of the payment option", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "url", Description: "The URL of the payment option i.e https://paypal.me/username", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "image_url", Description: "The URL of the image of the payment option"},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "A description shown when the option is sent"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a payment option",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "The name of the payment option", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "send",
					Description: "Send a payment option to a user",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "The name of the payment option", Required: true, Autocomplete: true},
					},
				},
			},
		},
		{
			Name:                     "ping",
			Description:              "Ping a user",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to ping", Required: true},
			},
		},
		{
			Name:                     "queue",
			Description:              "Manage the sales queue",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a member to the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to add", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "product", Description: "The product they are queued for", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "position", Description: "Explicit queue position"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a member from the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "The member to remove", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "product", Description: "The product they were queued for", Required: true},
						{Type: discordgo.ApplicationCommandOptionAttachment, Name: "file", Description: "Product file to DM on removal"},
						{Type: discordgo.ApplicationCommandOptionString, Name: "url", Description: "Product URL to DM on removal"},
						{Type: discordgo.ApplicationCommandOptionBoolean, Name: "dm", Description: "DM the member on removal"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "send_embed", Description: "Send the queue embed to the channel"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "update_embed", Description: "Update the queue embed"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "clear", Description: "Clear the queue"},
			},
		},
		{
			Name:        "vouch",
			Description: "Leave a vouch",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "vouch", Description: "Your vouch", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "rating", Description: "Rating from 1 to 5", Required: true, Choices: ratingChoices},
			},
		},
		{
			Name:                     "reviews",
			Description:              "View review statistics and management",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "stats", Description: "View review statistics"},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List recent reviews",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "limit", Description: "How many reviews to show (max 50)"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "associate",
					Description: "Manually associate a user with a ticket channel",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "The ticket channel", Required: true},
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "The ticket owner", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setchannel",
					Description: "Set the channel where public reviews will be posted",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "The public review channel", Required: true},
					},
				},
			},
		},
	}
}

// optionMap indexes subcommand options by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}
