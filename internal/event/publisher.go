package event

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Типы событий
const (
	UserRegistered = "user.registered"
	QuizSubmitted  = "quiz.submitted"
)

// Publisher публикует доменные события
type Publisher interface {
	Publish(eventType string, payload interface{}) error
	Close() error
}

// Envelope — формат сообщения в обменнике
type Envelope struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NoOpPublisher используется, когда брокер не настроен
type NoOpPublisher struct{}

// Publish ничего не делает
func (NoOpPublisher) Publish(string, interface{}) error { return nil }

// Close ничего не делает
func (NoOpPublisher) Close() error { return nil }

// AMQPPublisher публикует события в topic-обменник RabbitMQ.
// Тип события используется как routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex // amqp.Channel не безопасен для конкурентной публикации
}

// NewAMQPPublisher подключается к брокеру и объявляет обменник
func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish сериализует событие в JSON и публикует его
func (p *AMQPPublisher) Publish(eventType string, payload interface{}) error {
	body, err := Encode(eventType, payload, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Close закрывает канал и соединение
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("[EventPublisher] Ошибка закрытия канала: %v", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Encode формирует тело сообщения
func Encode(eventType string, payload interface{}, at time.Time) ([]byte, error) {
	return json.Marshal(Envelope{Type: eventType, Payload: payload, OccurredAt: at.UTC()})
}
