//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"fmt"

	"support-relay/domain"
	"support-relay/errors"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	UpsertUser(user domain.User) error
	GetUserByName(name string) (domain.User, error)
	ListUsers() ([]domain.User, error)
}

// UserRepository persists users in BadgerDB under "user:{id}". One key
// per platform identity, overwritten on every inbound event so the
// display name tracks renames.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) UserRepository {
	return UserRepository{db: db}
}

type diskUser struct {
	ID          int64  `cbor:"id"`
	DisplayName string `cbor:"display_name"`
}

func userKey(id int64) []byte {
	return []byte(fmt.Sprintf("user:%d", id))
}

func (r UserRepository) UpsertUser(user domain.User) error {
	data, err := marshal(diskUser{ID: user.ID, DisplayName: user.DisplayName})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.ID), data)
	})
}

// GetUserByName scans the users prefix for an exact display-name match.
// A linear scan is fine at support-bot volumes; a secondary index would
// buy nothing here.
func (r UserRepository) GetUserByName(name string) (domain.User, error) {
	var found *domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		return forEachUser(txn, func(u domain.User) bool {
			if u.DisplayName == name {
				found = &u
				return false
			}
			return true
		})
	})
	if err != nil {
		return domain.User{}, err
	}
	if found == nil {
		return domain.User{}, errors.ErrUserNotFound
	}
	return *found, nil
}

// ListUsers returns every known user in key order (ascending id string).
// The order is an iteration detail, not a contract.
func (r UserRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		return forEachUser(txn, func(u domain.User) bool {
			users = append(users, u)
			return true
		})
	})
	return users, err
}

// forEachUser iterates the "user:" prefix, stopping when fn returns
// false.
func forEachUser(txn *badger.Txn, fn func(domain.User) bool) error {
	prefix := []byte("user:")
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var du diskUser
		err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &du)
		})
		if err != nil {
			return err
		}
		if !fn(domain.User{ID: du.ID, DisplayName: du.DisplayName}) {
			return nil
		}
	}
	return nil
}
