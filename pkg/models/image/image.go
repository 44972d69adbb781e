package image

// Model for a Data Dragon image reference, being used by different other models.
type Image struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	W      uint16 `json:"w"`
	H      uint16 `json:"h"`
}
