package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BetsPlaced 成功提交的预测数
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_bets_placed_total",
		Help: "Number of successfully placed bets",
	})

	// PlacementsRejected 被拒绝的下注请求数，按原因分类
	PlacementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_placements_rejected_total",
		Help: "Number of rejected bet placements",
	}, []string{"reason"})

	// EventsSettled 已结算的赛事数
	EventsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_events_settled_total",
		Help: "Number of settled events",
	})

	// FeedMessages 结果消息队列收到的消息数，按处理结果分类
	FeedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_feed_messages_total",
		Help: "Number of result feed messages consumed",
	}, []string{"outcome"})
)
