// Package kafka publica las transacciones confirmadas del ledger en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

var _ ledger.EventPublisher = (*Publisher)(nil)

// EventTransactionRecorded tipo de evento en el header "event-type".
const EventTransactionRecorded = "TransactionRecorded"

// TransactionRecorded payload JSON del evento.
type TransactionRecorded struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	ProductID        string    `json:"product_id"`
	UnitPrice        string    `json:"unit_price"`
	Quantity         int64     `json:"quantity"`
	Total            string    `json:"total"`
	CreatedAt        time.Time `json:"created_at"`
	ProductQuantity  int64     `json:"product_quantity"`
	ProductSalePrice string    `json:"product_sale_price"`
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher escribe un mensaje por transacción, con el ID de producto como clave de partición.
type Publisher struct {
	w writer
}

// NewPublisher construye el publisher sobre un kafka.Writer.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{w: &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// PublishTransaction publica el evento TransactionRecorded.
func (p *Publisher) PublishTransaction(ctx context.Context, tx *entity.Transaction) error {
	msg, err := buildMessage(tx)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close vacía el buffer y cierra el writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

func buildMessage(tx *entity.Transaction) (kafkago.Message, error) {
	event := TransactionRecorded{
		ID:        tx.ID,
		Kind:      tx.Kind,
		ProductID: tx.ProductID,
		UnitPrice: tx.UnitPrice.String(),
		Quantity:  tx.Quantity,
		Total:     tx.Total.String(),
		CreatedAt: tx.CreatedAt,
	}
	if tx.Product != nil {
		event.ProductQuantity = tx.Product.Quantity
		event.ProductSalePrice = tx.Product.SalePrice.String()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serializar evento: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(tx.ProductID),
		Value: body,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(EventTransactionRecorded)},
		},
	}, nil
}
