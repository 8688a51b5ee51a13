package draft

import (
	"fmt"
	"time"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
)

// DraftSize is the fixed number of songs in every draft.
const DraftSize = 15

// SongScore is the per-song scoring result attached to a draft once
// its show has been scored.
type SongScore struct {
	SongID    string
	Played    bool
	Segment   show.Segment
	IsOpener  bool
	IsCloser  bool
	IsBustOut bool
	IsCover   bool
	Points    int
	Breakdown []string
}

// Draft is one user's predicted setlist for one show.
type Draft struct {
	ID         string
	UserID     string
	ShowID     string
	LeagueID   string
	SongIDs    []string
	CreatedAt  time.Time
	Scored     bool
	TotalScore int
	SongScores []SongScore
}

func (d Draft) ValidateBasic() error {
	if d.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	if d.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if d.ShowID == "" {
		return fmt.Errorf("show id is required")
	}
	if len(d.SongIDs) == 0 {
		return fmt.Errorf("draft songs are required")
	}

	return nil
}

// Clone deep-copies the draft so scoring can return a scored copy
// without mutating the stored original.
func (d Draft) Clone() Draft {
	out := d
	out.SongIDs = append([]string(nil), d.SongIDs...)
	if d.SongScores != nil {
		out.SongScores = make([]SongScore, len(d.SongScores))
		for i, s := range d.SongScores {
			s.Breakdown = append([]string(nil), s.Breakdown...)
			out.SongScores[i] = s
		}
	}
	return out
}
