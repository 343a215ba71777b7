package timeslotevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

const readRetryDelay = time.Second

// Reader источник сообщений, *kafka.Reader удовлетворяет интерфейсу
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// AvailabilityGenerator запускает генерацию слотов специалиста
type AvailabilityGenerator interface {
	Execute(ctx context.Context, req *generate_availabilities.Request) (*generate_availabilities.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к Kafka
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NewReader создает kafka reader в составе consumer group
func NewReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Consumer запускает генерацию слотов по событиям об изменении рабочих окон
type Consumer struct {
	reader    Reader
	generator AvailabilityGenerator
	logger    Logger
}

// NewConsumer создает новый consumer
func NewConsumer(reader Reader, generator AvailabilityGenerator, logger Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		generator: generator,
		logger:    logger,
	}
}

// Run читает сообщения до отмены контекста
// Ошибки обработки логируются, сообщение не перечитывается
func (c *Consumer) Run(ctx context.Context) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("TimeSlotEvents: failed to close reader: %v", err)
		}
	}()

	c.logger.Info("TimeSlotEvents: consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("TimeSlotEvents: consumer stopped")
				return
			}
			c.logger.Error("TimeSlotEvents: read error: %v", err)

			select {
			case <-ctx.Done():
				c.logger.Info("TimeSlotEvents: consumer stopped")
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		if err := c.HandleMessage(ctx, msg); err != nil {
			c.logger.Error("TimeSlotEvents: failed to handle message partition=%d offset=%d: %v",
				msg.Partition, msg.Offset, err)
		}
	}
}

// HandleMessage разбирает одно сообщение и запускает генерацию
func (c *Consumer) HandleMessage(ctx context.Context, msg kafka.Message) error {
	event, err := ParseEvent(msg.Value)
	if err != nil {
		return err
	}

	resp, err := c.generator.Execute(ctx, &generate_availabilities.Request{PractitionerID: event.PractitionerID})
	if err != nil {
		return fmt.Errorf("%w: practitioner=%d: %w", ErrGenerationFailed, event.PractitionerID, err)
	}

	c.logger.Info("TimeSlotEvents: %s for practitioner=%d, generated %d availabilities",
		event.EventType, event.PractitionerID, len(resp.Availabilities))
	return nil
}

// ParseEvent разбирает и проверяет тело сообщения
func ParseEvent(value []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	switch event.EventType {
	case EventTimeSlotCreated, EventTimeSlotModified:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, event.EventType)
	}

	if event.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerId must be positive", ErrInvalidEvent)
	}

	return &event, nil
}
