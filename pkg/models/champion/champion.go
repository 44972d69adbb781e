package champion

import "lolbrowser/pkg/models/image"

// Struct for holding a champion data.
// Summary fields come from champion.json, the rest from champion/<id>.json.
type Champion struct {
	ID      string      `json:"id"`
	Key     string      `json:"key"`
	Name    string      `json:"name"`
	Title   string      `json:"title"`
	Blurb   string      `json:"blurb"`
	Lore    string      `json:"lore"`
	Tags    []string    `json:"tags"`
	Partype string      `json:"partype"`
	Image   image.Image `json:"image"`
	Stats   Stats       `json:"stats"`

	Skins     []Skin   `json:"skins"`
	AllyTips  []string `json:"allytips"`
	EnemyTips []string `json:"enemytips"`
	Spells    []Spell  `json:"spells"`
	Passive   Spell    `json:"passive"`
}

// Struct for a single champion skin.
type Skin struct {
	ID      string `json:"id"`
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Chromas bool   `json:"chromas"`
}
