package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoundRules 单个轮次启用的计分档位。
// 值为 0 表示该档位在此轮次不启用。
type RoundRules struct {
	CorrectWinnerSeries           int `yaml:"correctWinnerSeries"`
	CorrectWinnerExactGames       int `yaml:"correctWinnerExactGames"`
	CorrectWinnerPoints           int `yaml:"correctWinnerPoints"`
	CorrectScoreDifferenceExact   int `yaml:"correctScoreDifferenceExact"`
	CorrectScoreDifferenceClosest int `yaml:"correctScoreDifferenceClosest"`
}

// SpecialBetRules 赛季长线投注(总冠军/FMVP)的奖励分值
type SpecialBetRules struct {
	FinalsChampion int `yaml:"finalsChampion"`
	FinalsMvp      int `yaml:"finalsMvp"`
}

// Rules 完整计分规则表
type Rules struct {
	Rounds      map[Round]RoundRules `yaml:"rounds"`
	SpecialBets SpecialBetRules      `yaml:"specialBets"`
}

// DefaultRules 默认计分规则。
// 后期轮次分值更高；conference 和 finals 同时包含系列赛和单场比赛，
// 因此两个档位族都启用。
func DefaultRules() Rules {
	return Rules{
		Rounds: map[Round]RoundRules{
			RoundPlayIn: {
				CorrectWinnerPoints:           2,
				CorrectScoreDifferenceExact:   4,
				CorrectScoreDifferenceClosest: 3,
			},
			RoundFirst: {
				CorrectWinnerSeries:     4,
				CorrectWinnerExactGames: 6,
			},
			RoundSecond: {
				CorrectWinnerSeries:     8,
				CorrectWinnerExactGames: 12,
			},
			RoundConference: {
				CorrectWinnerSeries:           8,
				CorrectWinnerExactGames:       12,
				CorrectWinnerPoints:           2,
				CorrectScoreDifferenceExact:   4,
				CorrectScoreDifferenceClosest: 3,
			},
			RoundFinals: {
				CorrectWinnerSeries:           12,
				CorrectWinnerExactGames:       16,
				CorrectWinnerPoints:           4,
				CorrectScoreDifferenceExact:   8,
				CorrectScoreDifferenceClosest: 6,
			},
		},
		SpecialBets: SpecialBetRules{
			FinalsChampion: 20,
			FinalsMvp:      10,
		},
	}
}

// LoadRules 从 YAML 文件加载规则覆盖。文件中未出现的轮次保留默认值，
// 便于新赛季只调整个别分值。path 为空时直接返回默认规则。
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	for round, rr := range override.Rounds {
		if !round.Valid() {
			return Rules{}, fmt.Errorf("rules file contains unknown round: %s", round)
		}
		rules.Rounds[round] = rr
	}
	if override.SpecialBets.FinalsChampion > 0 {
		rules.SpecialBets.FinalsChampion = override.SpecialBets.FinalsChampion
	}
	if override.SpecialBets.FinalsMvp > 0 {
		rules.SpecialBets.FinalsMvp = override.SpecialBets.FinalsMvp
	}

	return rules, nil
}

// ForRound 查找轮次对应的计分档位
func (r Rules) ForRound(round Round) (RoundRules, bool) {
	rr, ok := r.Rounds[round]
	return rr, ok
}
