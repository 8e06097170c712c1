package services

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"prediction-league-service/logger"
	"prediction-league-service/scoring"
)

// TelegramNotifier 联赛群通知器。未配置 token 时所有发送都是空操作
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
}

// NewTelegramNotifier 创建 Telegram 通知器
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	if token == "" || chatID == 0 {
		logger.Printf("[TelegramNotifier] Disabled (no token or chat id)")
		return &TelegramNotifier{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Errorf("[TelegramNotifier] Failed to initialize bot: %v", err)
		return &TelegramNotifier{}
	}

	logger.Printf("[TelegramNotifier] Authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{
		bot:     bot,
		chatID:  chatID,
		enabled: true,
	}
}

// SendText 发送文本消息
func (n *TelegramNotifier) SendText(text string) {
	if n == nil || !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		logger.Errorf("[TelegramNotifier] Failed to send message: %v", err)
	}
}

// NotifyServiceStart 服务启动通知
func (n *TelegramNotifier) NotifyServiceStart(season int) {
	n.SendText(fmt.Sprintf("🏀 Prediction league service started (season %d)", season))
}

// NotifyEventSettled 赛事结算通知，附当前前三名
func (n *TelegramNotifier) NotifyEventSettled(team1, team2 string, team1Score, team2Score int, winner string, top []scoring.LeaderboardRow) {
	n.SendText(settlementAnnouncement(team1, team2, team1Score, team2Score, winner, top))
}

func settlementAnnouncement(team1, team2 string, team1Score, team2Score int, winner string, top []scoring.LeaderboardRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Final: %s %d - %d %s\n🏆 %s win! Points have been awarded.",
		team1, team1Score, team2Score, team2, winner)

	if len(top) > 0 {
		b.WriteString("\n\nLeaderboard:")
		for _, row := range top {
			fmt.Fprintf(&b, "\n%d. %s: %d pts", row.Rank, row.Name, row.Score)
		}
	}

	return b.String()
}

// NotifySeasonConcluded 赛季收官通知
func (n *TelegramNotifier) NotifySeasonConcluded(champion string) {
	n.SendText(fmt.Sprintf("🎉 The season is over! Champions: %s. Finals and MVP pick points are in.", champion))
}
