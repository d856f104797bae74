package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"likebot-api/internal/config"
	"likebot-api/internal/logger"
	apperrors "likebot-api/internal/pkg/errors"
	"likebot-api/internal/services"
	"likebot-api/internal/validator"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (b *Bot) handleLike(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	var rawUID, rawRegion string
	if len(args) > 0 {
		rawUID = args[0]
	}
	if len(args) > 1 {
		rawRegion = args[1]
	}

	requestID := uuid.NewString()
	log := logger.Logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"user":       m.Author.ID,
		"channel":    m.ChannelID,
	})

	var result *services.LikeResult
	var apiErr error

	decision := b.gate.Process(m.Author.ID, m.ChannelID, rawUID, rawRegion, func(d services.Decision) bool {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.LikeAPITimeout)
		defer cancel()
		result, apiErr = b.likes.SendLikes(ctx, d.UID, d.Region)
		return apiErr == nil
	})

	switch decision.Code {
	case services.DecisionChannelDenied:
		b.replyError(s, m, "Channel Not Allowed", config.Messages["invalid_channel"])
	case services.DecisionMissingParams:
		b.replyError(s, m, "Missing Parameters", config.Messages["missing_params"])
	case services.DecisionInvalidUID:
		b.replyError(s, m, "Invalid UID", config.Messages["invalid_uid"])
	case services.DecisionInvalidRegion:
		b.replyError(s, m, "Invalid Region", config.Messages["invalid_region"])
	case services.DecisionQuotaExceeded:
		b.replyError(s, m, "Daily Limit Reached", fmt.Sprintf(config.Messages["daily_limit"], decision.Limit))
	case services.DecisionAllowed:
		if apiErr != nil {
			log.WithFields(logrus.Fields{"error": apiErr}).Warn("Like request failed upstream")
			if errors.Is(apiErr, apperrors.ErrMaxLikes) {
				b.replyError(s, m, "Maximum Likes Reached", config.Messages["max_likes"])
			} else {
				b.replyError(s, m, "API Error", config.Messages["api_error"])
			}
			return
		}

		limitInfo := fmt.Sprintf("REMAINING: %d/%d", decision.Remaining, decision.Limit)
		if decision.Unlimited {
			limitInfo = "REMAINING: Unlimited"
		}
		log.WithFields(logrus.Fields{"uid": decision.UID, "region": decision.Region}).Info("Likes sent")
		b.replySuccess(s, m, "Likes Sent",
			formatLikeResponse(result, validator.RegionDisplayName(decision.Region), limitInfo))
	}
}

func (b *Bot) handleRemaining(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.policy.IsUnlimited(m.Author.ID) || b.policy.IsAdmin(m.Author.ID) {
		b.replySuccess(s, m, "Remaining Requests", "You have **unlimited** requests.")
		return
	}

	limit := b.policy.DailyLimitFor(m.Author.ID)
	remaining := b.usage.Remaining(m.Author.ID, limit)
	b.replySuccess(s, m, "Remaining Requests",
		fmt.Sprintf("You have **%d** of **%d** requests left today.", remaining, limit))
}

func (b *Bot) handleMyStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	stats := b.usage.UserStats(m.Author.ID)
	b.replySuccess(s, m, "Your Stats", fmt.Sprintf(
		"Used today: **%d**\nTotal requests: **%d**\nFirst used: %s\nLast used: %s",
		stats.DailyUsed, stats.TotalUsed, stats.FirstUsed, stats.LastUsed))
}

func (b *Bot) handleStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.requireAdmin(s, m) {
		return
	}

	stats := b.usage.AggregateStats()
	b.replySuccess(s, m, "Bot Stats", fmt.Sprintf(
		"Total users: **%d**\nActive today: **%d**\nTotal requests: **%d**",
		stats.TotalUsers, stats.ActiveToday, stats.TotalRequests))
}

func (b *Bot) handleSetLimit(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireAdmin(s, m) {
		return
	}
	if len(args) < 2 {
		b.replyError(s, m, "Missing Arguments", "Usage: `"+b.cfg.CommandPrefix+"setlimit <user> <limit>`")
		return
	}

	userID := parseUserID(args[0])
	limit, err := strconv.Atoi(args[1])
	if err != nil || limit < 0 {
		b.replyError(s, m, "Invalid Argument", "Limit must be a non-negative number.")
		return
	}

	if err := b.policy.SetDailyLimitFor(userID, limit); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Limit override not persisted")
	}
	b.replySuccess(s, m, "Limit Updated",
		fmt.Sprintf("Daily limit for <@%s> is now **%d**.", userID, limit))
}

func (b *Bot) handleResetLimit(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireAdmin(s, m) {
		return
	}
	if len(args) < 1 {
		b.replyError(s, m, "Missing Arguments", "Usage: `"+b.cfg.CommandPrefix+"resetlimit <user>`")
		return
	}

	userID := parseUserID(args[0])
	if err := b.usage.ResetDaily(userID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Daily reset not persisted")
	}
	b.replySuccess(s, m, "Usage Reset",
		fmt.Sprintf("Daily usage for <@%s> has been reset.", userID))
}

func (b *Bot) handleAddChannel(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireAdmin(s, m) {
		return
	}

	channelID := m.ChannelID
	if len(args) > 0 {
		channelID = args[0]
	}

	if err := b.policy.AddAllowedChannel(channelID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "channel": channelID}).Error("Channel add not persisted")
	}
	b.replySuccess(s, m, "Channel Allowed",
		fmt.Sprintf("<#%s> can now carry like commands.", channelID))
}

func (b *Bot) handleRemoveChannel(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireAdmin(s, m) {
		return
	}

	channelID := m.ChannelID
	if len(args) > 0 {
		channelID = args[0]
	}

	if err := b.policy.RemoveAllowedChannel(channelID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "channel": channelID}).Error("Channel remove not persisted")
	}
	b.replySuccess(s, m, "Channel Removed",
		fmt.Sprintf("<#%s> no longer carries like commands.", channelID))
}

func (b *Bot) handleUnlimited(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireAdmin(s, m) {
		return
	}
	if len(args) < 2 {
		b.replyError(s, m, "Missing Arguments", "Usage: `"+b.cfg.CommandPrefix+"unlimited <add|remove> <user>`")
		return
	}

	userID := parseUserID(args[1])
	switch args[0] {
	case "add":
		if err := b.policy.AddUnlimitedUser(userID); err != nil {
			logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Unlimited add not persisted")
		}
		b.replySuccess(s, m, "Unlimited Access", fmt.Sprintf("<@%s> now bypasses the daily quota.", userID))
	case "remove":
		if err := b.policy.RemoveUnlimitedUser(userID); err != nil {
			logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Unlimited remove not persisted")
		}
		b.replySuccess(s, m, "Unlimited Access", fmt.Sprintf("<@%s> is back on the daily quota.", userID))
	default:
		b.replyError(s, m, "Invalid Argument", "Usage: `"+b.cfg.CommandPrefix+"unlimited <add|remove> <user>`")
	}
}

// handleAdminToken mints a bearer token for the HTTP admin surface and
// DMs it, never posting it in the channel.
func (b *Bot) handleAdminToken(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.requireAdmin(s, m) {
		return
	}

	token, err := b.tokens.Issue(m.Author.ID)
	if err != nil {
		b.replyError(s, m, "Token Error", "Could not mint an admin token. Try again later.")
		return
	}

	dm, err := s.UserChannelCreate(m.Author.ID)
	if err == nil {
		_, err = s.ChannelMessageSend(dm.ID, "Your admin API token (valid 24h):\n```"+token+"```")
	}
	if err != nil {
		b.replyError(s, m, "Token Error", "Could not DM you the token. Check your privacy settings.")
		return
	}
	b.replySuccess(s, m, "Token Sent", "Check your DMs.")
}

func (b *Bot) requireAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if b.policy.IsAdmin(m.Author.ID) {
		return true
	}
	b.replyError(s, m, "Permission Denied", "This command is restricted to bot admins.")
	return false
}
