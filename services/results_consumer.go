package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"prediction-league-service/logger"
	"prediction-league-service/metrics"
	"prediction-league-service/scoring"
)

// ResultMessage 结果消息队列里的比赛结果
type ResultMessage struct {
	EventID    string `json:"eventId"`
	Team1Score int    `json:"team1Score"`
	Team2Score int    `json:"team2Score"`
	Status     string `json:"status"`
}

// resultApplier 结算入口，便于单测替换
type resultApplier interface {
	ApplyResult(eventID string, team1Score, team2Score int) error
}

// eventStatusUpdater 赛事生命周期更新入口
type eventStatusUpdater interface {
	UpdateEventStatus(eventID, status string) error
}

// ResultsConsumer 消费比赛结果消息。resolved 状态的消息走结算流程，
// 其余状态只更新赛事生命周期
type ResultsConsumer struct {
	url        string
	queue      string
	settlement resultApplier
	events     eventStatusUpdater
	done       chan bool

	// mu 保护 conn/channel: consume 协程写入，Stop 从主协程读取
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewResultsConsumer(url, queue string, settlement *SettlementService, events *EventStore) *ResultsConsumer {
	return &ResultsConsumer{
		url:        url,
		queue:      queue,
		settlement: settlement,
		events:     events,
		done:       make(chan bool),
	}
}

// Start 连接消息队列并开始消费，断线后自动重连
func (c *ResultsConsumer) Start() error {
	for {
		if err := c.consume(); err != nil {
			logger.Errorf("[ResultsConsumer] Connection lost: %v, reconnecting in 5s...", err)
		}

		select {
		case <-c.done:
			return nil
		case <-time.After(5 * time.Second):
		}
	}
}

// Stop 停止消费
func (c *ResultsConsumer) Stop() {
	close(c.done)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *ResultsConsumer) consume() error {
	conn, err := amqp.DialConfig(c.url, amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	c.mu.Lock()
	c.channel = channel
	c.mu.Unlock()

	// 队列声明成幂等操作，服务和推送方谁先起都行
	if _, err := channel.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	deliveries, err := channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Printf("[ResultsConsumer] Consuming from queue %s", c.queue)

	for {
		select {
		case <-c.done:
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(delivery)
		}
	}
}

func (c *ResultsConsumer) handleDelivery(delivery amqp.Delivery) {
	var msg ResultMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		logger.Errorf("[ResultsConsumer] Malformed message: %v", err)
		metrics.FeedMessages.WithLabelValues("malformed").Inc()
		// 坏消息重投也没用，直接丢弃
		delivery.Nack(false, false)
		return
	}

	switch msg.Status {
	case string(scoring.StatusResolved):
		err := c.settlement.ApplyResult(msg.EventID, msg.Team1Score, msg.Team2Score)
		switch {
		case err == nil:
			metrics.FeedMessages.WithLabelValues("settled").Inc()
		case errors.Is(err, ErrAlreadyResolved):
			// 消息重复投递，结算早已完成
			metrics.FeedMessages.WithLabelValues("duplicate").Inc()
		case errors.Is(err, scoring.ErrTiedScore), errors.Is(err, scoring.ErrUnknownRound):
			// 计分错误是确定性的，重投只会原样失败，直接丢弃
			logger.Errorf("[ResultsConsumer] Unprocessable result for event %s: %v", msg.EventID, err)
			metrics.FeedMessages.WithLabelValues("unprocessable").Inc()
			delivery.Nack(false, false)
			return
		default:
			logger.Errorf("[ResultsConsumer] Failed to settle event %s: %v", msg.EventID, err)
			metrics.FeedMessages.WithLabelValues("error").Inc()
			delivery.Nack(false, true)
			return
		}

	case string(scoring.StatusLive), string(scoring.StatusScheduled):
		if err := c.events.UpdateEventStatus(msg.EventID, msg.Status); err != nil {
			logger.Errorf("[ResultsConsumer] Failed to update event %s status: %v", msg.EventID, err)
			metrics.FeedMessages.WithLabelValues("error").Inc()
			delivery.Nack(false, true)
			return
		}
		metrics.FeedMessages.WithLabelValues("status_update").Inc()

	default:
		logger.Errorf("[ResultsConsumer] Unknown status %q for event %s", msg.Status, msg.EventID)
		metrics.FeedMessages.WithLabelValues("unknown_status").Inc()
	}

	delivery.Ack(false)
}
