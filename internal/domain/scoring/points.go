package scoring

import (
	"fmt"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

// Point values for the fixed scoring rubric.
const (
	PointsPlayedSet1   = 10
	PointsPlayedSet2   = 10
	PointsPlayedEncore = 15
	OpenerBonus        = 20
	CloserBonus        = 15
	BustOutBonus       = 25
	CoverBonus         = 20

	// BustOutGapThreshold is the average show gap at or above which a
	// song counts as a bust-out.
	BustOutGapThreshold = 50
)

// NotPlayedBreakdown is the single breakdown line for a pick that did
// not appear in the setlist.
const NotPlayedBreakdown = "Not played"

// PointsBreakdown exposes the rubric for clients that render it.
func PointsBreakdown() map[string]int {
	return map[string]int{
		"playedSet1":   PointsPlayedSet1,
		"playedSet2":   PointsPlayedSet2,
		"playedEncore": PointsPlayedEncore,
		"openerBonus":  OpenerBonus,
		"closerBonus":  CloserBonus,
		"bustOutBonus": BustOutBonus,
		"coverBonus":   CoverBonus,
	}
}

// ScoreDraft evaluates every pick of a draft against the actual
// setlist and returns a scored copy. The input draft is not mutated
// and scoring the result again yields the same scores.
func ScoreDraft(d draft.Draft, s show.Show, catalog song.Catalog) draft.Draft {
	scored := d.Clone()
	scored.SongScores = make([]draft.SongScore, 0, len(d.SongIDs))

	total := 0
	for _, songID := range d.SongIDs {
		songScore := scoreSong(songID, s, catalog)
		total += songScore.Points
		scored.SongScores = append(scored.SongScores, songScore)
	}

	scored.Scored = true
	scored.TotalScore = total
	return scored
}

func scoreSong(songID string, s show.Show, catalog song.Catalog) draft.SongScore {
	entry, inCatalog := catalog.GetByID(songID)
	found, played := s.FindSong(songID)
	if !played || !inCatalog {
		return draft.SongScore{
			SongID:    songID,
			Breakdown: []string{NotPlayedBreakdown},
		}
	}

	points := 0
	breakdown := make([]string, 0, 4)

	switch found.Segment {
	case show.SegmentSet1:
		points += PointsPlayedSet1
		breakdown = append(breakdown, bonusLine("Set 1", PointsPlayedSet1))
	case show.SegmentSet2:
		points += PointsPlayedSet2
		breakdown = append(breakdown, bonusLine("Set 2", PointsPlayedSet2))
	case show.SegmentEncore:
		points += PointsPlayedEncore
		breakdown = append(breakdown, bonusLine("Encore", PointsPlayedEncore))
	}

	if found.Entry.IsOpener {
		points += OpenerBonus
		breakdown = append(breakdown, bonusLine("Opener", OpenerBonus))
	}
	if found.Entry.IsCloser {
		points += CloserBonus
		breakdown = append(breakdown, bonusLine("Closer", CloserBonus))
	}

	isBustOut := entry.AvgGap >= BustOutGapThreshold
	if isBustOut {
		points += BustOutBonus
		breakdown = append(breakdown, bonusLine("Bust-out", BustOutBonus))
	}
	if entry.IsCover {
		points += CoverBonus
		breakdown = append(breakdown, bonusLine("Cover", CoverBonus))
	}

	return draft.SongScore{
		SongID:    songID,
		Played:    true,
		Segment:   found.Segment,
		IsOpener:  found.Entry.IsOpener,
		IsCloser:  found.Entry.IsCloser,
		IsBustOut: isBustOut,
		IsCover:   entry.IsCover,
		Points:    points,
		Breakdown: breakdown,
	}
}

func bonusLine(label string, points int) string {
	return fmt.Sprintf("%s: +%d", label, points)
}
