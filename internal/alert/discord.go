package alert

import (
	"context"
	"errors"
	"fmt"
	
	"github.com/bwmarrin/discordgo"
	"github.com/katatrina/notify-admin/internal/util"
	"github.com/rs/zerolog/log"
)

// Discord rejects messages longer than 2000 characters.
const maxMessageLength = 1990

var ErrMissingChannel = errors.New("discord channel id is required")

type channelMessenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAlerter posts operator alerts to a Discord channel through a bot.
type DiscordAlerter struct {
	discord   channelMessenger
	channelID string
}

func NewDiscordAlerter(botToken, channelID string) (*DiscordAlerter, error) {
	if channelID == "" {
		return nil, ErrMissingChannel
	}
	
	discord, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	
	return &DiscordAlerter{
		discord:   discord,
		channelID: channelID,
	}, nil
}

func (a *DiscordAlerter) Send(ctx context.Context, content string) error {
	content = util.TruncateContent(content, maxMessageLength)
	
	if _, err := a.discord.ChannelMessageSend(a.channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post discord alert: %w", err)
	}
	
	log.Info().Str("channel_id", a.channelID).Msg("alert posted to discord")
	return nil
}

// NopAlerter logs alerts instead of posting them. It is used when Discord is not configured.
type NopAlerter struct{}

func (NopAlerter) Send(_ context.Context, content string) error {
	log.Warn().Str("alert", content).Msg("alert not delivered: discord is not configured")
	return nil
}
