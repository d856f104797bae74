package bot

import (
	"fmt"

	"likebot-api/internal/logger"
	"likebot-api/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const (
	colorError   = 0xE74C3C
	colorSuccess = 0x2ECC71
)

func (b *Bot) replyError(s *discordgo.Session, m *discordgo.MessageCreate, title, description string) {
	b.sendEmbed(s, m, "❌ "+title, description, colorError)
}

func (b *Bot) replySuccess(s *discordgo.Session, m *discordgo.MessageCreate, title, description string) {
	b.sendEmbed(s, m, "✅ "+title, description, colorSuccess)
}

func (b *Bot) sendEmbed(s *discordgo.Session, m *discordgo.MessageCreate, title, description string, color int) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	if _, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
		logger.Logger.WithFields(logrus.Fields{
			"error":   err,
			"channel": m.ChannelID,
		}).Warn("Failed to send reply")
	}
}

// formatLikeResponse renders the account/result block shown after a
// successful like request. regionName is the human-readable region
// label, not the upstream code.
func formatLikeResponse(result *services.LikeResult, regionName, limitInfo string) string {
	return fmt.Sprintf("```\n"+
		"┌  ACCOUNT\n"+
		"├─ NICKNAME: %s\n"+
		"├─ UID: %s\n"+
		"├─ REGION: %s\n"+
		"└─ RESULT:\n"+
		"    ├─ ADDED: +%d\n"+
		"    ├─ BEFORE: %d\n"+
		"    └─ AFTER: %d\n"+
		"┌  DAILY LIMIT\n"+
		"└─ %s\n"+
		"```",
		result.Nickname, result.UID, regionName,
		result.LikesAdded, result.LikesBefore, result.LikesAfter,
		limitInfo)
}
