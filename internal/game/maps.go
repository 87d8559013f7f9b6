package game

import (
	"context"
	"fmt"

	"github.com/pixil98/go-tilequest/internal/storage"
	"github.com/pixil98/go-tilequest/internal/world"
)

// MapSource loads authored maps by name and version suffix.
type MapSource interface {
	Area(ctx context.Context, name, version string) (*world.AreaSpec, error)
}

// StoredMaps serves maps out of an asset store. Assets are keyed by map name
// followed by the version suffix, e.g. "map2" and "map2_3".
type StoredMaps struct {
	store storage.Storer[*world.AreaSpec]
}

func NewStoredMaps(st storage.Storer[*world.AreaSpec]) *StoredMaps {
	return &StoredMaps{store: st}
}

func (m *StoredMaps) Area(_ context.Context, name, version string) (*world.AreaSpec, error) {
	spec := m.store.Get(name + version)
	if spec == nil {
		return nil, fmt.Errorf("%w: %s%s", ErrUnknownMap, name, version)
	}
	return spec, nil
}
