package services

import (
	"strings"
	"testing"

	"prediction-league-service/scoring"
)

func TestTelegramNotifierDisabled(t *testing.T) {
	// 未配置 token 时通知器必须是安全空操作
	notifier := NewTelegramNotifier("", 0)

	notifier.NotifyServiceStart(2026)
	notifier.NotifyEventSettled("Thunder", "Pacers", 103, 91, "Thunder", nil)
	notifier.NotifySeasonConcluded("Thunder")

	var nilNotifier *TelegramNotifier
	nilNotifier.SendText("should not panic")
}

func TestSettlementAnnouncementIncludesTopThree(t *testing.T) {
	top := []scoring.LeaderboardRow{
		{Rank: 1, Name: "Alice", Score: 42},
		{Rank: 2, Name: "Bob", Score: 30},
		{Rank: 3, Name: "Carol", Score: 12},
	}

	text := settlementAnnouncement("Thunder", "Pacers", 103, 91, "Thunder", top)

	if !strings.Contains(text, "Thunder 103 - 91 Pacers") {
		t.Errorf("expected final score in announcement, got %q", text)
	}
	for _, want := range []string{"1. Alice: 42 pts", "2. Bob: 30 pts", "3. Carol: 12 pts"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in announcement, got %q", want, text)
		}
	}
}

func TestSettlementAnnouncementWithoutLeaderboard(t *testing.T) {
	text := settlementAnnouncement("Thunder", "Pacers", 103, 91, "Thunder", nil)

	if strings.Contains(text, "Leaderboard") {
		t.Errorf("expected no leaderboard section, got %q", text)
	}
}
