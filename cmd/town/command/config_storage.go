package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/storage"
	"github.com/pixil98/go-town/internal/town"
)

type StorageConfig struct {
	Layout   AssetConfig[*town.AreaDefinition] `json:"layout"`
	Catalogs AssetConfig[*town.Catalog]        `json:"catalogs"`
	Profiles AssetConfig[*town.Appearance]     `json:"profiles"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Layout.Validate("layout"))
	el.Add(c.Catalogs.Validate("catalogs"))
	el.Add(c.Profiles.Validate("profiles"))

	return el.Err()
}

// BuildCatalogs loads the option catalogs and picks out the hair and
// outfit sets by category.
func (c *StorageConfig) BuildCatalogs() (town.WardrobeCatalogs, error) {
	store, err := c.Catalogs.BuildFileStore()
	if err != nil {
		return town.WardrobeCatalogs{}, fmt.Errorf("creating catalog store: %w", err)
	}

	var catalogs town.WardrobeCatalogs
	for id, cat := range store.GetAll() {
		switch cat.Category {
		case town.CategoryHair:
			if catalogs.Hair != nil {
				return town.WardrobeCatalogs{}, fmt.Errorf("catalog %q: second hair catalog", id)
			}
			catalogs.Hair = cat
		case town.CategoryOutfit:
			if catalogs.Outfit != nil {
				return town.WardrobeCatalogs{}, fmt.Errorf("catalog %q: second outfit catalog", id)
			}
			catalogs.Outfit = cat
		}
	}
	return catalogs, nil
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
