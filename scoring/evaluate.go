package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrEventNotResolved 赛事尚未完结，不能计分
	ErrEventNotResolved = errors.New("event is not resolved")

	// ErrTiedScore 比分持平。NBA 季后赛不可能平局，出现即视为数据损坏
	ErrTiedScore = errors.New("event has a tied score")

	// ErrUnknownRound 轮次不在规则表中
	ErrUnknownRound = errors.New("no rules for round")
)

// DecideWinner 判定实际获胜球队。比分持平返回错误而不是默认一方，
// 静默选边会污染所有用户的积分。
func DecideWinner(ev Event) (string, error) {
	if ev.Team1Score == ev.Team2Score {
		return "", fmt.Errorf("%w: event %s (%d:%d)", ErrTiedScore, ev.ID, ev.Team1Score, ev.Team2Score)
	}
	if ev.Team1Score > ev.Team2Score {
		return ev.Team1, nil
	}
	return ev.Team2, nil
}

// EvaluateEvent 对一场已完结赛事的全部预测计分。
//
// 猜错胜者的预测两项得分都为 0，分差再准也不给分。
// 未提交的预测不参与计分，也不会出现在返回结果中。
//
// 单场类赛事的 closest 档位需要跨用户比较：在所有猜对胜者但分差不完全
// 准确的预测中，|预测分差-实际分差| 最小者获得 closest 分值；并列最小的
// 全部获得。已拿到 exact 档位的预测不再参与 closest。
func EvaluateEvent(rules Rules, ev Event, bets []Bet) ([]Evaluation, error) {
	if ev.Status != StatusResolved {
		return nil, fmt.Errorf("%w: event %s has status %s", ErrEventNotResolved, ev.ID, ev.Status)
	}

	rr, ok := rules.ForRound(ev.Round)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRound, ev.Round)
	}

	winner, err := DecideWinner(ev)
	if err != nil {
		return nil, err
	}

	evals := make([]Evaluation, 0, len(bets))
	// closest 档位候选: evals 下标 -> 与实际分差的距离
	closest := make(map[int]int)

	for _, bet := range bets {
		if !bet.Placed() {
			continue
		}

		eval := Evaluation{BetID: bet.ID, UserID: bet.UserID, Result: winner}

		if *bet.WinnerTeam != winner {
			evals = append(evals, eval)
			continue
		}

		if ev.EventType.IsSeries() {
			eval.PointsGained = rr.CorrectWinnerSeries
			// 系列赛的实际总场次 = 两队胜场之和
			totalGames := ev.Team1Score + ev.Team2Score
			if *bet.WinMargin == totalGames {
				eval.PointsGainedWinMargin = rr.CorrectWinnerExactGames
			}
		} else {
			eval.PointsGained = rr.CorrectWinnerPoints
			margin := ev.Team1Score - ev.Team2Score
			if margin < 0 {
				margin = -margin
			}
			if *bet.WinMargin == margin {
				eval.PointsGainedWinMargin = rr.CorrectScoreDifferenceExact
			} else if rr.CorrectScoreDifferenceClosest > 0 {
				distance := *bet.WinMargin - margin
				if distance < 0 {
					distance = -distance
				}
				closest[len(evals)] = distance
			}
		}

		evals = append(evals, eval)
	}

	// closest 档位: 距离最小者得分，并列全部得分
	if len(closest) > 0 {
		best := -1
		for _, distance := range closest {
			if best < 0 || distance < best {
				best = distance
			}
		}
		for idx, distance := range closest {
			if distance == best {
				evals[idx].PointsGainedWinMargin = rr.CorrectScoreDifferenceClosest
			}
		}
	}

	return evals, nil
}
