package item

import "lolbrowser/pkg/models/image"

// Struct for holding the item gold.
type Gold struct {
	Base        int  `json:"base"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
	Purchasable bool `json:"purchasable"`
}

// Struct for holding a item data.
type Item struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Plaintext   string             `json:"plaintext"`
	Image       image.Image        `json:"image"`
	Gold        Gold               `json:"gold"`
	Tags        []string           `json:"tags"`
	From        []string           `json:"from"`
	Into        []string           `json:"into"`
	Stats       map[string]float64 `json:"stats"`
}
