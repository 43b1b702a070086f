package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config — настройки Kafka. Переменные: CALCULATOR_KAFKA_ENABLED, BROKERS, TOPIC, GROUP_ID, HANDLE_RETRIES, RETRY_BACKOFF.
type Config struct {
	Enabled       bool          `envconfig:"ENABLED" default:"false"`
	Brokers       string        `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic         string        `envconfig:"TOPIC" default:"operations"`
	GroupID       string        `envconfig:"GROUP_ID" default:"exprcalc-analytics"`
	WriteTimeout  time.Duration `envconfig:"WRITE_TIMEOUT" default:"5s"`
	HandleRetries int           `envconfig:"HANDLE_RETRIES" default:"3"` // повторы обработки сообщения до пропуска
	RetryBackoff  time.Duration `envconfig:"RETRY_BACKOFF" default:"500ms"`
}

// brokersSlice возвращает список брокеров из строки (через запятую), пустые элементы отбрасываются.
func (c *Config) brokersSlice() []string {
	var out []string
	if c != nil {
		for _, p := range strings.Split(c.Brokers, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return []string{"localhost:9092"}
	}
	return out
}

// Client — конфиг и фабрики продюсера/консьюмера. Подключение к брокеру при создании Writer/Reader.
type Client struct {
	cfg *Config
}

// New создаёт клиент по конфигу.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Client{cfg: cfg}
}

// Producer создаёт продюсера операций. Ключ сообщения — ID пользователя, поэтому события
// одного пользователя попадают в одну партицию (Hash-балансировщик).
func (c *Client) Producer() *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(c.cfg.brokersSlice()...),
		Topic:        c.cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: c.cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{w: w}
}

// Consumer создаёт консьюмера топика в consumer group.
func (c *Client) Consumer() *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.brokersSlice(),
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
	return &Consumer{r: r, retries: c.cfg.HandleRetries, backoff: c.cfg.RetryBackoff}
}
