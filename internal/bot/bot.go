// Package bot binds the quota/policy core to Discord. It parses prefix
// commands, renders Decisions as embeds, and holds no policy logic of
// its own.
package bot

import (
	"strings"

	"likebot-api/internal/config"
	"likebot-api/internal/logger"
	"likebot-api/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	session *discordgo.Session
	cfg     *config.AppConfig

	gate   services.GateService
	policy services.PolicyService
	usage  services.UsageService
	likes  services.LikeService
	tokens services.TokenService
}

func New(
	cfg *config.AppConfig,
	gate services.GateService,
	policy services.PolicyService,
	usage services.UsageService,
	likes services.LikeService,
	tokens services.TokenService,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		cfg:     cfg,
		gate:    gate,
		policy:  policy,
		usage:   usage,
		likes:   likes,
		tokens:  tokens,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() error {
	logger.Logger.Info("Shutting down bot")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Logger.WithFields(logrus.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Bot is online")

	if err := s.UpdateWatchStatus(0, "Free Fire players | "+b.cfg.CommandPrefix+"like"); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err}).Warn("Failed to set presence")
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.cfg.CommandPrefix) {
		return
	}

	name, args := parseCommand(strings.TrimPrefix(m.Content, b.cfg.CommandPrefix))
	switch name {
	case "like":
		b.handleLike(s, m, args)
	case "remaining":
		b.handleRemaining(s, m)
	case "mystats":
		b.handleMyStats(s, m)
	case "stats":
		b.handleStats(s, m)
	case "setlimit":
		b.handleSetLimit(s, m, args)
	case "resetlimit":
		b.handleResetLimit(s, m, args)
	case "addchannel":
		b.handleAddChannel(s, m, args)
	case "removechannel":
		b.handleRemoveChannel(s, m, args)
	case "unlimited":
		b.handleUnlimited(s, m, args)
	case "admintoken":
		b.handleAdminToken(s, m)
	}
}

// parseCommand splits a stripped message into a lowercase command name
// and its arguments.
func parseCommand(content string) (string, []string) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// parseUserID accepts either a raw id or a Discord mention.
func parseUserID(raw string) string {
	raw = strings.TrimPrefix(raw, "<@")
	raw = strings.TrimPrefix(raw, "!")
	return strings.TrimSuffix(raw, ">")
}
