package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesTable(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		round Round
		want  RoundRules
	}{
		{RoundPlayIn, RoundRules{CorrectWinnerPoints: 2, CorrectScoreDifferenceExact: 4, CorrectScoreDifferenceClosest: 3}},
		{RoundFirst, RoundRules{CorrectWinnerSeries: 4, CorrectWinnerExactGames: 6}},
		{RoundSecond, RoundRules{CorrectWinnerSeries: 8, CorrectWinnerExactGames: 12}},
		{RoundConference, RoundRules{CorrectWinnerSeries: 8, CorrectWinnerExactGames: 12, CorrectWinnerPoints: 2, CorrectScoreDifferenceExact: 4, CorrectScoreDifferenceClosest: 3}},
		{RoundFinals, RoundRules{CorrectWinnerSeries: 12, CorrectWinnerExactGames: 16, CorrectWinnerPoints: 4, CorrectScoreDifferenceExact: 8, CorrectScoreDifferenceClosest: 6}},
	}

	for _, tt := range tests {
		got, ok := rules.ForRound(tt.round)
		if !ok {
			t.Fatalf("Expected rules for round %s", tt.round)
		}
		if got != tt.want {
			t.Errorf("Round %s: expected %+v, got %+v", tt.round, tt.want, got)
		}
	}
}

func TestDefaultRulesCoverAllRounds(t *testing.T) {
	rules := DefaultRules()

	for _, round := range Rounds {
		if _, ok := rules.ForRound(round); !ok {
			t.Errorf("Missing rules for round %s", round)
		}
	}
}

func TestLoadRulesEmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rr, _ := rules.ForRound(RoundFinals)
	if rr.CorrectWinnerSeries != 12 {
		t.Errorf("Expected default finals value 12, got %d", rr.CorrectWinnerSeries)
	}
}

func TestLoadRulesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
rounds:
  finals:
    correctWinnerSeries: 15
    correctWinnerExactGames: 20
    correctWinnerPoints: 5
    correctScoreDifferenceExact: 10
    correctScoreDifferenceClosest: 7
specialBets:
  finalsChampion: 25
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rr, _ := rules.ForRound(RoundFinals)
	if rr.CorrectWinnerSeries != 15 {
		t.Errorf("Expected overridden value 15, got %d", rr.CorrectWinnerSeries)
	}

	// Untouched rounds keep defaults
	rr, _ = rules.ForRound(RoundFirst)
	if rr.CorrectWinnerSeries != 4 {
		t.Errorf("Expected default value 4, got %d", rr.CorrectWinnerSeries)
	}

	if rules.SpecialBets.FinalsChampion != 25 {
		t.Errorf("Expected overridden champion value 25, got %d", rules.SpecialBets.FinalsChampion)
	}
	if rules.SpecialBets.FinalsMvp != 10 {
		t.Errorf("Expected default mvp value 10, got %d", rules.SpecialBets.FinalsMvp)
	}
}

func TestLoadRulesUnknownRound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
rounds:
  preseason:
    correctWinnerPoints: 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("Expected error for unknown round")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules("/nonexistent/rules.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
