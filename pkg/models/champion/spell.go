package champion

import "lolbrowser/pkg/models/image"

// Struct for holding a champion spell or passive.
type Spell struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Tooltip      string      `json:"tooltip"`
	CooldownBurn string      `json:"cooldownBurn"`
	CostBurn     string      `json:"costBurn"`
	MaxRank      int         `json:"maxrank"`
	Image        image.Image `json:"image"`
}
