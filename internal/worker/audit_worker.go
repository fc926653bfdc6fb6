package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sunlighthq/tasks-service/internal/entity"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/client"
	"github.com/sunlighthq/tasks-service/internal/repository"
)

// AuditWorker drains the audit queue into the task_audit table. It holds its
// own connection so a slow consumer never blocks the publisher channel.
type AuditWorker struct {
	rabbitMQURL string
	auditRepo   repository.ITaskAuditRepository
}

func NewAuditWorker(rabbitMQURL string, auditRepo repository.ITaskAuditRepository) *AuditWorker {
	return &AuditWorker{
		rabbitMQURL: rabbitMQURL,
		auditRepo:   auditRepo,
	}
}

// Start consumes until ctx is cancelled, reconnecting after channel loss.
func (w *AuditWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("audit worker stopped")
			return
		default:
			if err := w.run(ctx); err != nil {
				log.Printf("❌ audit worker: %v, reconnecting in 5s...", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
		}
	}
}

func (w *AuditWorker) run(ctx context.Context) error {
	conn, err := amqp.Dial(w.rabbitMQURL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(
		client.AuditQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := channel.Consume(
		client.AuditQueueName,
		"audit_worker", // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	log.Println("✅ audit worker consuming")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.processMessage(msg)
		}
	}
}

func (w *AuditWorker) processMessage(msg amqp.Delivery) {
	ctx := context.Background()

	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("❌ malformed audit message, dropping: %v", err)
		msg.Nack(false, false) // poison, do not requeue
		return
	}

	audit, err := toTaskAudit(&auditMsg)
	if err != nil {
		log.Printf("❌ cannot convert audit message, dropping: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := w.auditRepo.Create(ctx, audit); err != nil {
		log.Printf("❌ failed to save audit record: %v", err)
		msg.Nack(false, true) // store hiccup, retry later
		return
	}

	msg.Ack(false)
}

func toTaskAudit(msg *entity.AuditMessage) (*entity.TaskAudit, error) {
	audit := &entity.TaskAudit{
		UserID:     msg.UserID,
		Action:     msg.Action,
		EntityType: "task",
		EntityID:   msg.EntityID,
		ChangedAt:  msg.Timestamp,
	}

	var err error
	if audit.OldValues, err = marshalValues(msg.OldValues); err != nil {
		return nil, err
	}
	if audit.NewValues, err = marshalValues(msg.NewValues); err != nil {
		return nil, err
	}
	if audit.Changes, err = marshalValues(msg.Changes); err != nil {
		return nil, err
	}

	return audit, nil
}

func marshalValues(values map[string]any) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(body)
	return &s, nil
}
