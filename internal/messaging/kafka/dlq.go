package kafka

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// ErrNotDeadLetter - сообщение в DLQ-топике не похоже на запись outbox worker'а.
var ErrNotDeadLetter = errors.New("message is not an outbox dead letter")

// DecodeDeadLetter разбирает значение из DLQ-топика: Envelope, внутри которого domain.DeadLetter.
func DecodeDeadLetter(value []byte) (domain.DeadLetter, error) {
	var envelope Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return domain.DeadLetter{}, fmt.Errorf("%w: %v", ErrNotDeadLetter, err)
	}
	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return domain.DeadLetter{}, ErrNotDeadLetter
	}

	var letter domain.DeadLetter
	if err := json.Unmarshal(envelope.Payload, &letter); err != nil {
		return domain.DeadLetter{}, fmt.Errorf("decode dead letter payload: %w", err)
	}
	if letter.OutboxID == "" {
		letter.OutboxID = envelope.ID
	}
	if letter.OutboxID == "" || letter.EventType == "" {
		return domain.DeadLetter{}, ErrNotDeadLetter
	}
	if len(letter.Payload) == 0 || string(letter.Payload) == "null" {
		return domain.DeadLetter{}, fmt.Errorf("dead letter %s has no original payload", letter.OutboxID)
	}
	return letter, nil
}
