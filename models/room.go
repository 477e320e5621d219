package models

// RoomCatalogItem is a decorable piece defined at build time. Positions and
// width are percentages of the room scene's bounding box.
type RoomCatalogItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cost         int     `json:"cost"`
	Description  string  `json:"description"`
	Vibe         string  `json:"vibe"`
	Image        string  `json:"image"`
	Width        float64 `json:"width"`
	DefaultX     float64 `json:"defaultX"`
	DefaultY     float64 `json:"defaultY"`
	ZIndex       int     `json:"zIndex,omitempty"`
	DefaultOwned bool    `json:"defaultOwned,omitempty"`
}

// RoomItemState is the per-user persisted slice of a room item: ownership,
// placement and position. X/Y are optional on the wire; absent means "use the
// catalog default".
type RoomItemState struct {
	ID     string   `json:"id"`
	Owned  bool     `json:"owned"`
	Placed bool     `json:"placed"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// RoomItem is a catalog item merged with the user's saved state. Unlike
// RoomItemState its position is always resolved.
type RoomItem struct {
	RoomCatalogItem
	Owned  bool    `json:"owned"`
	Placed bool    `json:"placed"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// DefaultRoomCatalog enumerates every decorable item. The catalog is the
// authoritative item list; persisted state never introduces ids outside it.
var DefaultRoomCatalog = []RoomCatalogItem{
	{
		ID:           "dirtyshower",
		Name:         "grimy shower stall",
		Cost:         0,
		Description:  "where we start — cracked tile and mildew galore.",
		Vibe:         "baseline",
		Image:        "dirtyshower.png",
		DefaultOwned: true,
		Width:        36,
		DefaultX:     12,
		DefaultY:     56,
		ZIndex:       2,
	},
	{
		ID:          "bathtub",
		Name:        "fresh soak tub",
		Cost:        420,
		Description: "new porcelain fix to finally ditch the grime.",
		Vibe:        "glow up",
		Image:       "bathtub.png",
		Width:       42,
		DefaultX:    72,
		DefaultY:    62,
		ZIndex:      4,
	},
	{
		ID:          "sink",
		Name:        "floating sink",
		Cost:        240,
		Description: "speed-run your hand washing with a clean basin.",
		Vibe:        "fresh start",
		Image:       "sink.png",
		Width:       24,
		DefaultX:    20,
		DefaultY:    62,
		ZIndex:      5,
	},
	{
		ID:          "rug",
		Name:        "sunrise rug",
		Cost:        180,
		Description: "warm base so ShowerBot never steps onto cold tile.",
		Vibe:        "cozy landing",
		Image:       "rug.png",
		Width:       48,
		DefaultX:    50,
		DefaultY:    86,
		ZIndex:      1,
	},
	{
		ID:          "mirror",
		Name:        "frameless mirror",
		Cost:        260,
		Description: "glow-up lighting for post-game selfies.",
		Vibe:        "confidence",
		Image:       "mirror.png",
		Width:       24,
		DefaultX:    18,
		DefaultY:    20,
		ZIndex:      3,
	},
	{
		ID:          "speaker",
		Name:        "steam-proof speaker",
		Cost:        220,
		Description: "pump lo-fi while decorating or grinding.",
		Vibe:        "lo-fi mode",
		Image:       "speaker.png",
		Width:       16,
		DefaultX:    38,
		DefaultY:    18,
		ZIndex:      6,
	},
	{
		ID:          "candle",
		Name:        "lavender candle",
		Cost:        140,
		Description: "soft glow for chill-down time after ladders.",
		Vibe:        "chill mode",
		Image:       "candle.png",
		Width:       10,
		DefaultX:    64,
		DefaultY:    40,
		ZIndex:      5,
	},
	{
		ID:          "rubberduck",
		Name:        "ShowerBot rubber duck",
		Cost:        90,
		Description: "personal hype coach floating by the tub.",
		Vibe:        "ShowerBot buddy",
		Image:       "rubberduck.png",
		Width:       12,
		DefaultX:    62,
		DefaultY:    70,
		ZIndex:      6,
	},
}
