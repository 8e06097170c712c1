package web

import (
	"testing"
)

func TestDefaultSeasonFillsMissing(t *testing.T) {
	got := defaultSeason(nil, 2026)
	if got == nil || *got != 2026 {
		t.Fatalf("expected fallback season 2026, got %v", got)
	}
}

func TestDefaultSeasonKeepsExplicit(t *testing.T) {
	season := 2025
	got := defaultSeason(&season, 2026)
	if got == nil || *got != 2025 {
		t.Fatalf("expected explicit season 2025 to survive, got %v", got)
	}
}
