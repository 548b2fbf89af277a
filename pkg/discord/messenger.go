package discord

import (
	"github.com/bwmarrin/discordgo"
)

// sessionMessenger adapts the Discord session to the narrow send interfaces
// the queue manager and review flow declare.
type sessionMessenger struct {
	s *discordgo.Session
}

func (m sessionMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := m.s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (m sessionMessenger) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := m.s.ChannelMessageEditEmbed(channelID, messageID, embed)
	return err
}

func (m sessionMessenger) SendDM(userID string, msg *discordgo.MessageSend) error {
	channel, err := m.s.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = m.s.ChannelMessageSendComplex(channel.ID, msg)
	return err
}

func (m sessionMessenger) sendDMText(userID, content string) error {
	channel, err := m.s.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = m.s.ChannelMessageSend(channel.ID, content)
	return err
}

// sessionUserResolver looks up users for mention fallback and public posts.
type sessionUserResolver struct {
	s *discordgo.Session
}

func (r sessionUserResolver) IsBot(userID string) (bool, error) {
	user, err := r.s.User(userID)
	if err != nil {
		return false, err
	}
	return user.Bot, nil
}

func (r sessionUserResolver) Username(userID string) (string, error) {
	user, err := r.s.User(userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
