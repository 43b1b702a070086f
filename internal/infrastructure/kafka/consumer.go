package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

// reader — то, что консьюмеру нужно от kafka.Reader.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает события операций и передаёт их в use case (запись в аналитику).
type Consumer struct {
	r       reader
	uc      ports.ICalculatorUseCase
	log     *slog.Logger
	retries int
	backoff time.Duration
}

// NewConsumer создаёт консьюмера по конфигу, use case и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.ICalculatorUseCase, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// Run в цикле читает сообщения и коммитит обработанные. Битые сообщения коммитятся и пропускаются.
// Ошибку обработки консьюмер повторяет на месте (retries раз, пауза удваивается от backoff);
// если все попытки неудачны, сообщение логируется и коммитится: доставка не больше одного раза.
// Выход по отмене ctx или при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		if !c.handle(ctx, msg) {
			continue
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle возвращает true, если сообщение можно коммитить. false — только при отмене ctx:
// тогда сообщение остаётся незакоммиченным и достанется следующему консьюмеру группы.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) bool {
	var op domain.Operation
	if err := json.Unmarshal(msg.Value, &op); err != nil || op.ID == "" {
		c.log.Warn("kafka bad message, skip", "error", err, "partition", msg.Partition, "offset", msg.Offset)
		return true
	}

	wait := c.backoff
	for attempt := 0; ; attempt++ {
		err := c.uc.HandleOperationEvent(ctx, op)
		if err == nil {
			return true
		}
		if attempt >= c.retries {
			c.log.Error("kafka handle failed, message dropped", "error", err, "attempts", attempt+1,
				"operation_id", op.ID, "partition", msg.Partition, "offset", msg.Offset)
			return true
		}
		c.log.Warn("kafka handle error, retry", "error", err, "attempt", attempt+1, "partition", msg.Partition, "offset", msg.Offset)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
		wait *= 2
	}
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
