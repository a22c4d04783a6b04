package repositories

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"encoding/json"
	errs "errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

var lastIdentityKey = []byte("identity:last")

type IIdentityRepository interface {
	Save(identity domain.Identity) error
	Load() (domain.Identity, error)
}

// IdentityRepository remembers the last identity used on this machine so the
// terminal client does not ask for it again.
type IdentityRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewIdentityRepository(db *badger.DB, log *slog.Logger) IIdentityRepository {
	return &IdentityRepository{db: db, log: log}
}

func (r IdentityRepository) Save(identity domain.Identity) error {
	if identity.Name == "" {
		return errors.ErrEmptyName
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(lastIdentityKey, data)
	})
	if err != nil {
		return fmt.Errorf("could not save identity: %w", err)
	}
	r.log.Debug("Identity saved", "name", identity.Name)
	return nil
}

// Load returns ErrIdentityNotFound when nothing was saved yet.
func (r IdentityRepository) Load() (domain.Identity, error) {
	var identity domain.Identity
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(lastIdentityKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &identity)
		})
	})
	if errs.Is(err, badger.ErrKeyNotFound) {
		return domain.Identity{}, errors.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("could not load identity: %w", err)
	}
	return identity, nil
}
