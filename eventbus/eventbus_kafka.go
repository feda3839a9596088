package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"

	"risk-monitor/logger"
	"risk-monitor/models"
)

// KafkaBus publishes notifications through a confluent-kafka-go producer.
type KafkaBus struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaBus initializes the producer and starts the delivery report
// drain goroutine.
func NewKafkaBus(brokers, topic string) (*KafkaBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("notification delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaBus{producer: p, topic: topic}, nil
}

// Close flushes pending messages and shuts down the producer.
func (k *KafkaBus) Close() {
	if k.producer == nil {
		return
	}
	if remaining := k.producer.Flush(5000); remaining > 0 {
		logger.Log.Warnf("%d notifications still unflushed at shutdown", remaining)
	}
	k.producer.Close()
}

func (k *KafkaBus) AnalysisCompleted(ctx context.Context, runID string, articlesProcessed, eventsWritten int) {
	k.publish(ctx, Notification{
		Type:              TypeAnalysisCompleted,
		RunID:             runID,
		ArticlesProcessed: articlesProcessed,
		EventsWritten:     eventsWritten,
	})
}

func (k *KafkaBus) SummaryGenerated(ctx context.Context, summary *models.Summary) {
	k.publish(ctx, Notification{
		Type:          TypeSummaryGenerated,
		RunID:         summary.RunID,
		SummaryID:     summary.ID.Hex(),
		OverallStatus: summary.OverallStatus,
		AlertLevel:    summary.AlertLevel,
	})
}

// publish sends one notification and waits for its delivery report. Every
// failure path logs and returns; the caller never sees an error.
func (k *KafkaBus) publish(ctx context.Context, n Notification) {
	n.ID = uuid.NewString()
	n.OccurredAt = time.Now()

	data, err := json.Marshal(n)
	if err != nil {
		logger.Log.Errorf("failed to marshal notification %s: %v", n.Type, err)
		return
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(n.ID),
	}, deliveryChan)
	if err != nil {
		logger.Log.Errorf("failed to produce notification %s: %v", n.Type, err)
		return
	}

	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			logger.Log.Errorf("notification %s not delivered: %v", n.Type, m.TopicPartition.Error)
		}
	case <-ctx.Done():
		logger.Log.Warnf("gave up waiting for delivery of notification %s: %v", n.Type, ctx.Err())
	}
}
