package ops

import (
	"context"

	"github.com/jacksmith/mealmix/internal/model"
	"go.uber.org/zap"
)

// SavedRecipesKey is the fixed key holding the serialized saved-name list.
const SavedRecipesKey = "savedRecipes"

// NameStore persists the saved-name list under SavedRecipesKey.
type NameStore struct {
	store Store
	log   *zap.Logger
}

// NewNameStore returns a NameStore over s. A nil logger discards logs.
func NewNameStore(s Store, log *zap.Logger) *NameStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &NameStore{store: s, log: log}
}

// Load reads the saved-name list. It never fails: a missing key, a read
// error, or a value that is not a JSON array all yield an empty list, and
// the discarded error is logged.
func (n *NameStore) Load(ctx context.Context) model.NameList {
	raw, ok, err := n.store.Get(ctx, SavedRecipesKey)
	if err != nil {
		n.log.Warn("failed to read saved recipes, starting empty",
			zap.String("key", SavedRecipesKey), zap.Error(err))
		return model.NameList{}
	}
	if !ok {
		return model.NameList{}
	}

	names, err := model.DecodeNames(raw)
	if err != nil {
		n.log.Warn("malformed saved recipes, starting empty",
			zap.String("key", SavedRecipesKey), zap.Error(err))
		return model.NameList{}
	}
	return names
}

// Save serializes and writes names.
func (n *NameStore) Save(ctx context.Context, names model.NameList) error {
	raw, err := model.EncodeNames(names)
	if err != nil {
		return err
	}
	return n.store.Set(ctx, SavedRecipesKey, raw)
}
