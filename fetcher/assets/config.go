package assets

import (
	"errors"
	"fmt"
)

// Consts used across the package.
const (
	championPrefix = "ddragon:champion:"
	itemPrefix     = "ddragon:item:"
	latestVersion  = "latest"
)

// ErrUnknownKind is returned when a catalog kind is not champion or item.
var ErrUnknownKind = errors.New("unknown catalog kind")

// Kind of a catalog.
type Kind int

const (
	KindChampion Kind = iota
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindChampion:
		return "champion"
	case KindItem:
		return "item"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Document is a raw Data Dragon entry, as decoded from the json.
type Document = map[string]any

// Definition for extracting the catalog data.
type fullCatalog struct {
	Data map[string]Document `json:"data"`
}
