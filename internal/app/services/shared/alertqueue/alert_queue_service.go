package alertqueue

import (
	"context"
	"sync"
	"vitaltrend-service/internal/app/contracts"
	"vitaltrend-service/internal/pkg/constvars"
	"vitaltrend-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DeadLetterQueueSuffix = "_dlq"
)

// Service publishes high-risk blood pressure alerts to RabbitMQ so a
// downstream notifier can reach the care team. The dashboard never
// consumes from this queue.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Declare standard queue (durable)
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	// Declare dead-letter queue (durable)
	_, err = ch.QueueDeclare(
		queueName+DeadLetterQueueSuffix,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	// Enable publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// PublishAlert publishes a persistent alert message and waits for the broker confirm.
func (s *Service) PublishAlert(ctx context.Context, message *contracts.AlertQueueMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AlertQueue.PublishAlert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, message.PatientID),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	err = s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirm := <-s.confirms:
		if !confirm.Ack {
			return exceptions.ErrQueuePublishNotConfirmed(nil)
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}

	return nil
}
