package leaderboard

import (
	"math"
	"sort"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
)

// Entry is one user's aggregated standing. Numeric stats cover scored
// drafts only; Drafts keeps the user's full draft list, unscored
// included, for drill-down views.
type Entry struct {
	UserID           string
	TotalPoints      int
	ShowsPlayed      int
	BestShow         int
	AvgPointsPerShow int
	Drafts           []draft.Draft
}

// Aggregate folds drafts into per-user standings. Unscored drafts stay
// in the entry's draft list but never count toward the stats; a user
// with no scored drafts gets no entry. The result is ordered by total
// points descending, ties broken by user id ascending so ranking stays
// deterministic.
func Aggregate(drafts []draft.Draft) []Entry {
	byUser := make(map[string]*Entry)
	for _, d := range drafts {
		if d.UserID == "" {
			continue
		}

		e, ok := byUser[d.UserID]
		if !ok {
			e = &Entry{UserID: d.UserID}
			byUser[d.UserID] = e
		}
		e.Drafts = append(e.Drafts, d)

		if !d.Scored {
			continue
		}
		e.TotalPoints += d.TotalScore
		e.ShowsPlayed++
		if d.TotalScore > e.BestShow {
			e.BestShow = d.TotalScore
		}
	}

	entries := make([]Entry, 0, len(byUser))
	for _, e := range byUser {
		if e.ShowsPlayed == 0 {
			continue
		}
		e.AvgPointsPerShow = int(math.Round(float64(e.TotalPoints) / float64(e.ShowsPlayed)))
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})

	return entries
}
