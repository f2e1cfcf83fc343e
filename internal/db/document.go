package db

// Document is the whole persisted state: one JSON file on disk, one of
// these in memory. Every collection is kept non-nil so the file always
// round-trips as arrays, never null.
type Document struct {
	Trades []Trade `json:"trades"`
	Users  []User  `json:"users"`
	Clubs  []Club  `json:"clubs"`
}

type Trade struct {
	ID        string  `json:"id"`
	Company   string  `json:"company"`
	Leverage  float64 `json:"leverage"`
	Type      string  `json:"type"` // "leverage" | "inverse"
	Quantity  float64 `json:"quantity"`
	User      string  `json:"user"`
	CreatedAt int64   `json:"createdAt"` // unix milliseconds
}

type User struct {
	ID          string   `json:"id"`
	Stage       float64  `json:"stage"`
	MaxStage    float64  `json:"maxStage"`
	Attempts    float64  `json:"attempts"`
	ClubName    *string  `json:"clubName"`
	TotalAssets *float64 `json:"totalAssets"`
}

// Club is reserved; the collection is persisted but never populated yet.
type Club struct {
	Name string `json:"name"`
}

// Score is the ranking value for a user: explicit totalAssets when one was
// ever stored, otherwise the user's best stage.
func (u User) Score() float64 {
	if u.TotalAssets != nil {
		return *u.TotalAssets
	}
	return u.MaxStage
}

func defaultDocument() Document {
	return Document{
		Trades: []Trade{},
		Users:  []User{},
		Clubs:  []Club{},
	}
}

func (d *Document) normalize() {
	if d.Trades == nil {
		d.Trades = []Trade{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Clubs == nil {
		d.Clubs = []Club{}
	}
}
