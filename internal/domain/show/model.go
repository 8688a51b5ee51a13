package show

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownSegment  = errors.New("unknown setlist segment")
	ErrEmptySetlist    = errors.New("completed show has empty setlist")
	ErrAlreadyComplete = errors.New("show is already completed")
	ErrNotCompleted    = errors.New("show setlist is not completed")
)

// Segment identifies which part of the show a setlist entry belongs to.
type Segment string

const (
	SegmentSet1   Segment = "set1"
	SegmentSet2   Segment = "set2"
	SegmentEncore Segment = "encore"
)

var AllSegments = map[Segment]struct{}{
	SegmentSet1:   {},
	SegmentSet2:   {},
	SegmentEncore: {},
}

// Label returns the display form used in flattened setlist views.
func (s Segment) Label() string {
	switch s {
	case SegmentSet1:
		return "Set 1"
	case SegmentSet2:
		return "Set 2"
	case SegmentEncore:
		return "Encore"
	}
	return string(s)
}

// SetlistEntry is one performed song within a segment.
type SetlistEntry struct {
	SongID   string
	Position int
	IsOpener bool
	IsCloser bool
}

// Show holds one concert and, once completed, its actual setlist.
type Show struct {
	ID          string
	Date        string
	Venue       string
	City        string
	State       string
	ShowNumber  int
	IsCompleted bool
	Set1        []SetlistEntry
	Set2        []SetlistEntry
	Encore      []SetlistEntry
	UpdatedAt   time.Time
}

func (s Show) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("show id is required")
	}
	if s.Date == "" {
		return fmt.Errorf("show date is required")
	}
	if s.Venue == "" {
		return fmt.Errorf("show venue is required")
	}
	if s.IsCompleted && len(s.Set1)+len(s.Set2)+len(s.Encore) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySetlist, s.ID)
	}

	return nil
}

// FoundSong reports where a drafted song landed in the actual setlist.
type FoundSong struct {
	Segment Segment
	Entry   SetlistEntry
}

// FindSong scans set 1, then set 2, then the encore and returns the
// first entry matching the song id. A song repeated across segments
// counts only at its first appearance.
func (s Show) FindSong(songID string) (FoundSong, bool) {
	for _, entry := range s.Set1 {
		if entry.SongID == songID {
			return FoundSong{Segment: SegmentSet1, Entry: entry}, true
		}
	}
	for _, entry := range s.Set2 {
		if entry.SongID == songID {
			return FoundSong{Segment: SegmentSet2, Entry: entry}, true
		}
	}
	for _, entry := range s.Encore {
		if entry.SongID == songID {
			return FoundSong{Segment: SegmentEncore, Entry: entry}, true
		}
	}
	return FoundSong{}, false
}

// FlatEntry is one row of the flattened whole-show setlist view.
type FlatEntry struct {
	SongID   string
	Segment  string
	IsOpener bool
	IsCloser bool
}

// Flatten lists every performed song in show order with its segment
// label and position flags.
func (s Show) Flatten() []FlatEntry {
	out := make([]FlatEntry, 0, len(s.Set1)+len(s.Set2)+len(s.Encore))
	for _, segment := range []struct {
		label   string
		entries []SetlistEntry
	}{
		{SegmentSet1.Label(), s.Set1},
		{SegmentSet2.Label(), s.Set2},
		{SegmentEncore.Label(), s.Encore},
	} {
		for _, entry := range segment.entries {
			out = append(out, FlatEntry{
				SongID:   entry.SongID,
				Segment:  segment.label,
				IsOpener: entry.IsOpener,
				IsCloser: entry.IsCloser,
			})
		}
	}
	return out
}

// BuildSegment turns an ordered song id list into setlist entries.
// Each segment's first song is its opener and its last song its
// closer, so a one-song encore is both.
func BuildSegment(segment Segment, songIDs []string) ([]SetlistEntry, error) {
	if _, ok := AllSegments[segment]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSegment, segment)
	}

	entries := make([]SetlistEntry, 0, len(songIDs))
	for i, id := range songIDs {
		if id == "" {
			return nil, fmt.Errorf("song id at position %d is required", i+1)
		}
		entries = append(entries, SetlistEntry{
			SongID:   id,
			Position: i + 1,
			IsOpener: i == 0,
			IsCloser: i == len(songIDs)-1,
		})
	}
	return entries, nil
}
