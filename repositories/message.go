//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"support-relay/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	ListMessages() ([]domain.Message, error)
}

// MessageRepository is the append-only message log.
type MessageRepository struct {
	db *badger.DB
}

func NewMessageRepository(db *badger.DB) MessageRepository {
	return MessageRepository{db: db}
}

type diskMessage struct {
	ID         string `cbor:"id"`
	SenderID   int64  `cbor:"sender_id"`
	SenderName string `cbor:"sender_name"`
	Text       string `cbor:"text"`
	Lang       string `cbor:"lang,omitempty"`
	At         int64  `cbor:"at"` // unix nanoseconds
}

// StoreMessage persists a message under "msg:{timestamp_padded}:{uuid}":
//  1. The 19-digit zero padding makes lexicographic order chronological.
//  2. The UUID disambiguates two messages landing on the same nanosecond.
func (r MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%019d:%s", message.SubmittedAt.UnixNano(), message.ID)
	data, err := marshal(fromMessage(message))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ListMessages returns every stored message, most recent first. The
// padded timestamp in the key makes a reverse prefix scan come out
// already sorted.
func (r MessageRepository) ListMessages() ([]domain.Message, error) {
	var raw [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("msg:")
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk backwards.
		seekKey := append([]byte{}, prefix...)
		seekKey = append(seekKey, []byte("9999999999999999999")...)

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				raw = append(raw, append([]byte{}, val...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var messages []domain.Message
	for _, b := range raw {
		var dm diskMessage
		if err := unmarshal(b, &dm); err != nil {
			return nil, err
		}
		message, err := toMessage(dm)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:         message.ID.String(),
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Text:       message.Text,
		Lang:       message.Lang,
		At:         message.SubmittedAt.UnixNano(),
	}
}

func toMessage(dm diskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(dm.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:          parsedID,
		SenderID:    dm.SenderID,
		SenderName:  dm.SenderName,
		Text:        dm.Text,
		Lang:        dm.Lang,
		SubmittedAt: time.Unix(0, dm.At).UTC(),
	}, nil
}
