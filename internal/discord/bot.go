package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Config holds the bot configuration
type Config struct {
	Token     string
	ChannelID string
}

// Bot owns the gateway session used by the announcer
type Bot struct {
	Session   *discordgo.Session
	Announcer *Announcer
}

// New creates a bot whose announcer posts to cfg.ChannelID
func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" || cfg.ChannelID == "" {
		return nil, errors.New(ErrMsgMissingConfig)
	}

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSession, err)
	}

	return &Bot{
		Session:   s,
		Announcer: NewAnnouncer(s, cfg.ChannelID),
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start(ctx context.Context) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgOpenSession, err)
	}
	logger.FromContext(ctx).Info(LogMsgAnnouncerStarted)
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop(ctx context.Context) {
	if err := b.Session.Close(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAnnouncerStopped, "error", err)
		return
	}
	logger.FromContext(ctx).Info(LogMsgAnnouncerStopped)
}
