package scoring

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func resolvedEvent(round Round, eventType EventType, t1, t2 string, s1, s2 int) Event {
	return Event{
		ID:         "ev1",
		Team1:      t1,
		Team2:      t2,
		Team1Score: s1,
		Team2Score: s2,
		Round:      round,
		EventType:  eventType,
		Status:     StatusResolved,
		StartTime:  time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC),
	}
}

func placedBet(id, userID, winner string, margin int) Bet {
	return Bet{
		ID:         id,
		UserID:     userID,
		EventID:    "ev1",
		WinnerTeam: strPtr(winner),
		WinMargin:  intPtr(margin),
	}
}

func TestDecideWinner(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 110, 102)

	winner, err := DecideWinner(ev)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if winner != "Thunder" {
		t.Errorf("Expected winner 'Thunder', got '%s'", winner)
	}

	ev.Team1Score, ev.Team2Score = 95, 99
	winner, err = DecideWinner(ev)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if winner != "Pacers" {
		t.Errorf("Expected winner 'Pacers', got '%s'", winner)
	}
}

func TestDecideWinnerTiedScore(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 100, 100)

	if _, err := DecideWinner(ev); !errors.Is(err, ErrTiedScore) {
		t.Errorf("Expected ErrTiedScore, got %v", err)
	}
}

func TestEvaluateEventWrongWinnerScoresZero(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 110, 102)

	// Margin matches exactly but the winner pick is wrong
	bets := []Bet{placedBet("b1", "u1", "Pacers", 8)}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("Expected 1 evaluation, got %d", len(evals))
	}
	if evals[0].PointsGained != 0 || evals[0].PointsGainedWinMargin != 0 {
		t.Errorf("Expected 0/0 points for wrong winner, got %d/%d",
			evals[0].PointsGained, evals[0].PointsGainedWinMargin)
	}
	if evals[0].Result != "Thunder" {
		t.Errorf("Expected result 'Thunder', got '%s'", evals[0].Result)
	}
}

func TestEvaluateEventFinalsGameExactMargin(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 110, 102)
	bets := []Bet{placedBet("b1", "u1", "Thunder", 8)}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if evals[0].PointsGained != 4 {
		t.Errorf("Expected 4 winner points, got %d", evals[0].PointsGained)
	}
	if evals[0].PointsGainedWinMargin != 8 {
		t.Errorf("Expected 8 margin points, got %d", evals[0].PointsGainedWinMargin)
	}
}

func TestEvaluateEventFirstRoundSeriesExactGames(t *testing.T) {
	ev := resolvedEvent(RoundFirst, EventSeries, "Celtics", "Heat", 4, 2)
	bets := []Bet{placedBet("b1", "u1", "Celtics", 6)}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if evals[0].PointsGained != 4 {
		t.Errorf("Expected 4 winner points, got %d", evals[0].PointsGained)
	}
	if evals[0].PointsGainedWinMargin != 6 {
		t.Errorf("Expected 6 exact-games points, got %d", evals[0].PointsGainedWinMargin)
	}
}

func TestEvaluateEventSeriesWrongGamesNoMarginPoints(t *testing.T) {
	ev := resolvedEvent(RoundSecond, EventSeries, "Celtics", "Heat", 4, 1)
	bets := []Bet{placedBet("b1", "u1", "Celtics", 7)}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if evals[0].PointsGained != 8 {
		t.Errorf("Expected 8 winner points, got %d", evals[0].PointsGained)
	}
	if evals[0].PointsGainedWinMargin != 0 {
		t.Errorf("Expected 0 margin points for wrong series length, got %d", evals[0].PointsGainedWinMargin)
	}
}

func TestEvaluateEventClosestMargin(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 110, 102)
	bets := []Bet{
		placedBet("b1", "u1", "Thunder", 5), // distance 3
		placedBet("b2", "u2", "Thunder", 7), // distance 1, closest
		placedBet("b3", "u3", "Pacers", 8),  // wrong winner, never in the running
	}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	byBet := make(map[string]Evaluation)
	for _, e := range evals {
		byBet[e.BetID] = e
	}

	if byBet["b1"].PointsGained != 4 || byBet["b1"].PointsGainedWinMargin != 0 {
		t.Errorf("Expected 4/0 for b1, got %d/%d", byBet["b1"].PointsGained, byBet["b1"].PointsGainedWinMargin)
	}
	if byBet["b2"].PointsGained != 4 || byBet["b2"].PointsGainedWinMargin != 6 {
		t.Errorf("Expected 4/6 for b2, got %d/%d", byBet["b2"].PointsGained, byBet["b2"].PointsGainedWinMargin)
	}
	if byBet["b3"].PointsGained != 0 || byBet["b3"].PointsGainedWinMargin != 0 {
		t.Errorf("Expected 0/0 for b3, got %d/%d", byBet["b3"].PointsGained, byBet["b3"].PointsGainedWinMargin)
	}
}

func TestEvaluateEventClosestMarginTieAwardsAll(t *testing.T) {
	ev := resolvedEvent(RoundPlayIn, EventPlayIn, "Hawks", "Bulls", 120, 110)
	bets := []Bet{
		placedBet("b1", "u1", "Hawks", 8),  // distance 2
		placedBet("b2", "u2", "Hawks", 12), // distance 2
		placedBet("b3", "u3", "Hawks", 15), // distance 5
	}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	byBet := make(map[string]Evaluation)
	for _, e := range evals {
		byBet[e.BetID] = e
	}

	if byBet["b1"].PointsGainedWinMargin != 3 {
		t.Errorf("Expected 3 closest points for b1, got %d", byBet["b1"].PointsGainedWinMargin)
	}
	if byBet["b2"].PointsGainedWinMargin != 3 {
		t.Errorf("Expected 3 closest points for b2, got %d", byBet["b2"].PointsGainedWinMargin)
	}
	if byBet["b3"].PointsGainedWinMargin != 0 {
		t.Errorf("Expected 0 margin points for b3, got %d", byBet["b3"].PointsGainedWinMargin)
	}
}

func TestEvaluateEventExactBetNotInClosestPool(t *testing.T) {
	ev := resolvedEvent(RoundConference, EventGame, "Nuggets", "Lakers", 105, 98)
	bets := []Bet{
		placedBet("b1", "u1", "Nuggets", 7),  // exact
		placedBet("b2", "u2", "Nuggets", 10), // closest among non-exact
	}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	byBet := make(map[string]Evaluation)
	for _, e := range evals {
		byBet[e.BetID] = e
	}

	if byBet["b1"].PointsGainedWinMargin != 4 {
		t.Errorf("Expected 4 exact points for b1, got %d", byBet["b1"].PointsGainedWinMargin)
	}
	if byBet["b2"].PointsGainedWinMargin != 3 {
		t.Errorf("Expected 3 closest points for b2, got %d", byBet["b2"].PointsGainedWinMargin)
	}
}

func TestEvaluateEventUnplacedBetSkipped(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 110, 102)
	bets := []Bet{
		{ID: "b1", UserID: "u1", EventID: "ev1"},
		placedBet("b2", "u2", "Thunder", 8),
	}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("Expected 1 evaluation, got %d", len(evals))
	}
	if evals[0].BetID != "b2" {
		t.Errorf("Expected evaluation for b2, got %s", evals[0].BetID)
	}
}

func TestEvaluateEventUnresolvedFails(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 0, 0)
	ev.Status = StatusLive

	if _, err := EvaluateEvent(DefaultRules(), ev, nil); !errors.Is(err, ErrEventNotResolved) {
		t.Errorf("Expected ErrEventNotResolved, got %v", err)
	}
}

func TestEvaluateEventTiedScoreFails(t *testing.T) {
	ev := resolvedEvent(RoundFinals, EventGame, "Thunder", "Pacers", 100, 100)

	if _, err := EvaluateEvent(DefaultRules(), ev, nil); !errors.Is(err, ErrTiedScore) {
		t.Errorf("Expected ErrTiedScore, got %v", err)
	}
}

func TestEvaluateEventUnknownRoundFails(t *testing.T) {
	ev := resolvedEvent(Round("preseason"), EventGame, "Thunder", "Pacers", 110, 102)

	if _, err := EvaluateEvent(DefaultRules(), ev, nil); !errors.Is(err, ErrUnknownRound) {
		t.Errorf("Expected ErrUnknownRound, got %v", err)
	}
}

func TestEvaluateEventPlayInGame(t *testing.T) {
	ev := resolvedEvent(RoundPlayIn, EventPlayIn, "Heat", "Bulls", 98, 92)
	bets := []Bet{placedBet("b1", "u1", "Heat", 6)}

	evals, err := EvaluateEvent(DefaultRules(), ev, bets)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if evals[0].PointsGained != 2 {
		t.Errorf("Expected 2 winner points, got %d", evals[0].PointsGained)
	}
	if evals[0].PointsGainedWinMargin != 4 {
		t.Errorf("Expected 4 exact points, got %d", evals[0].PointsGainedWinMargin)
	}
}
