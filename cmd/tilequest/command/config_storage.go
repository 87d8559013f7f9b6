package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/storage"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

const defaultStorylineID = "storyline"

type StorageConfig struct {
	Storyline StorylineConfig                `json:"storyline"`
	Maps      AssetConfig[*world.AreaSpec]   `json:"maps"`
	Commands  AssetConfig[*commands.Command] `json:"commands"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Storyline.Validate("storyline"))
	el.Add(c.Maps.Validate("maps"))
	el.Add(c.Commands.Validate("commands"))
	return el.Err()
}

// LoadWorld loads the storyline and every map, and checks that each map
// fits the storyline.
func (c *StorageConfig) LoadWorld() (*story.Book, *storage.FileStore[*world.AreaSpec], error) {
	book, err := c.Storyline.Load()
	if err != nil {
		return nil, nil, err
	}

	maps, err := c.Maps.BuildFileStore()
	if err != nil {
		return nil, nil, fmt.Errorf("creating map store: %w", err)
	}

	el := errors.NewErrorList()
	for id, spec := range maps.GetAll() {
		el.Add(book.ValidateArea(id, spec))
	}
	if err := el.Err(); err != nil {
		return nil, nil, fmt.Errorf("checking maps: %w", err)
	}

	return book, maps, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// StorylineConfig points at the directory holding the storyline asset.
type StorylineConfig struct {
	AssetConfig[*story.Book]
	ID string `json:"id"`
}

func (c *StorylineConfig) Load() (*story.Book, error) {
	st, err := c.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating storyline store: %w", err)
	}

	id := c.ID
	if id == "" {
		id = defaultStorylineID
	}
	book := st.Get(id)
	if book == nil {
		return nil, fmt.Errorf("storyline %q not found in %s", id, c.Path)
	}
	return book, nil
}
