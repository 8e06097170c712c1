package services

import (
	"fmt"
	"testing"

	"github.com/streadway/amqp"

	"prediction-league-service/scoring"
)

// fakeAcknowledger 记录最后一次 ack/nack 调用
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

type fakeApplier struct {
	err    error
	called bool
}

func (f *fakeApplier) ApplyResult(eventID string, team1Score, team2Score int) error {
	f.called = true
	return f.err
}

type fakeStatusUpdater struct {
	err    error
	status string
}

func (f *fakeStatusUpdater) UpdateEventStatus(eventID, status string) error {
	f.status = status
	return f.err
}

func deliverResult(t *testing.T, consumer *ResultsConsumer, body string) *fakeAcknowledger {
	t.Helper()
	ack := &fakeAcknowledger{}
	consumer.handleDelivery(amqp.Delivery{Acknowledger: ack, Body: []byte(body)})
	return ack
}

func TestHandleDeliverySettles(t *testing.T) {
	applier := &fakeApplier{}
	consumer := &ResultsConsumer{settlement: applier, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","team1Score":103,"team2Score":91,"status":"resolved"}`)

	if !applier.called {
		t.Fatal("expected ApplyResult to be called")
	}
	if !ack.acked || ack.nacked {
		t.Errorf("expected message to be acked, got ack=%v nack=%v", ack.acked, ack.nacked)
	}
}

func TestHandleDeliveryTiedScoreNotRequeued(t *testing.T) {
	// 平分是确定性计分错误，重投永远不会成功
	applier := &fakeApplier{err: fmt.Errorf("failed to evaluate event ev1: %w", scoring.ErrTiedScore)}
	consumer := &ResultsConsumer{settlement: applier, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","team1Score":100,"team2Score":100,"status":"resolved"}`)

	if !ack.nacked {
		t.Fatal("expected message to be nacked")
	}
	if ack.requeue {
		t.Error("tied-score message must not be requeued")
	}
}

func TestHandleDeliveryUnknownRoundNotRequeued(t *testing.T) {
	applier := &fakeApplier{err: fmt.Errorf("%w: preseason", scoring.ErrUnknownRound)}
	consumer := &ResultsConsumer{settlement: applier, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","team1Score":103,"team2Score":91,"status":"resolved"}`)

	if !ack.nacked || ack.requeue {
		t.Errorf("expected drop without requeue, got nack=%v requeue=%v", ack.nacked, ack.requeue)
	}
}

func TestHandleDeliveryTransientErrorRequeued(t *testing.T) {
	applier := &fakeApplier{err: fmt.Errorf("connection refused")}
	consumer := &ResultsConsumer{settlement: applier, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","team1Score":103,"team2Score":91,"status":"resolved"}`)

	if !ack.nacked || !ack.requeue {
		t.Errorf("expected requeue on transient failure, got nack=%v requeue=%v", ack.nacked, ack.requeue)
	}
}

func TestHandleDeliveryDuplicateAcked(t *testing.T) {
	applier := &fakeApplier{err: fmt.Errorf("%w: ev1", ErrAlreadyResolved)}
	consumer := &ResultsConsumer{settlement: applier, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","team1Score":103,"team2Score":91,"status":"resolved"}`)

	if !ack.acked || ack.nacked {
		t.Errorf("duplicate delivery should be acked, got ack=%v nack=%v", ack.acked, ack.nacked)
	}
}

func TestHandleDeliveryMalformedDropped(t *testing.T) {
	consumer := &ResultsConsumer{settlement: &fakeApplier{}, events: &fakeStatusUpdater{}}

	ack := deliverResult(t, consumer, `not json`)

	if !ack.nacked || ack.requeue {
		t.Errorf("malformed message should be dropped, got nack=%v requeue=%v", ack.nacked, ack.requeue)
	}
}

func TestHandleDeliveryStatusUpdate(t *testing.T) {
	updater := &fakeStatusUpdater{}
	consumer := &ResultsConsumer{settlement: &fakeApplier{}, events: updater}

	ack := deliverResult(t, consumer, `{"eventId":"ev1","status":"live"}`)

	if updater.status != "live" {
		t.Errorf("expected status update to live, got %q", updater.status)
	}
	if !ack.acked {
		t.Error("status update should be acked")
	}
}

func TestResultsConsumerStopWithoutStart(t *testing.T) {
	consumer := NewResultsConsumer("amqp://localhost", "game-results", nil, nil)

	// 没有建立过连接时 Stop 也必须安全
	consumer.Stop()

	select {
	case <-consumer.done:
	default:
		t.Error("expected done channel to be closed")
	}
}
