package song

import "fmt"

// Song is one catalog entry with the play-history stats that drive
// scoring bonuses.
type Song struct {
	ID             string
	Name           string
	IsCover        bool
	OriginalArtist string
	TimesPlayed    int
	// AvgGap is the average number of shows between plays. Kept as a
	// float so fractional gaps from the stats feed survive intact; the
	// bust-out threshold compares against whole shows either way.
	AvgGap     float64
	DebutDate  string
	LastPlayed string
}

func (s Song) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("song id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("song name is required")
	}
	if s.IsCover && s.OriginalArtist == "" {
		return fmt.Errorf("original artist is required for cover %s", s.ID)
	}
	if s.TimesPlayed < 0 {
		return fmt.Errorf("times played cannot be negative: %s", s.ID)
	}
	if s.AvgGap < 0 {
		return fmt.Errorf("avg gap cannot be negative: %s", s.ID)
	}

	return nil
}

// Catalog is an id-indexed view over the song table, built once and
// shared read-only across goroutines.
type Catalog map[string]Song

func NewCatalog(songs []Song) Catalog {
	catalog := make(Catalog, len(songs))
	for _, s := range songs {
		catalog[s.ID] = s
	}
	return catalog
}

func (c Catalog) GetByID(id string) (Song, bool) {
	s, ok := c[id]
	return s, ok
}

func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

func (c Catalog) Len() int {
	return len(c)
}
