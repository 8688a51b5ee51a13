package memory

import (
	"context"
	"fmt"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

// Seed loads the 2024 MSG New Year's run plus one upcoming show, with
// a catalog covering every performed song. Used by the memory driver
// so a fresh process has something to score.
func Seed(ctx context.Context, songs *SongRepository, shows *ShowRepository) error {
	for _, s := range SeedSongs() {
		if err := songs.Upsert(ctx, s); err != nil {
			return fmt.Errorf("seed song %s: %w", s.ID, err)
		}
	}
	for _, s := range SeedShows() {
		if err := shows.Upsert(ctx, s); err != nil {
			return fmt.Errorf("seed show %s: %w", s.ID, err)
		}
	}
	return nil
}

// SeedSongs is the bootstrap catalog. Exported so the postgres driver
// can seed an empty database from the same fixtures.
func SeedSongs() []song.Song {
	return []song.Song{
		{ID: "46-days", Name: "46 Days", TimesPlayed: 188, AvgGap: 4.2},
		{ID: "ac-dc-bag", Name: "AC/DC Bag", TimesPlayed: 359, AvgGap: 3.8, DebutDate: "1985-05-03"},
		{ID: "also-sprach-zarathustra", Name: "Also Sprach Zarathustra", IsCover: true, OriginalArtist: "Eumir Deodato", TimesPlayed: 147, AvgGap: 6.1},
		{ID: "bathtub-gin", Name: "Bathtub Gin", TimesPlayed: 321, AvgGap: 4.5, DebutDate: "1989-05-26"},
		{ID: "blaze-on", Name: "Blaze On", TimesPlayed: 112, AvgGap: 3.1, DebutDate: "2015-07-21"},
		{ID: "bouncing-around-the-room", Name: "Bouncing Around the Room", TimesPlayed: 428, AvgGap: 3.4},
		{ID: "bug", Name: "Bug", TimesPlayed: 121, AvgGap: 8.7},
		{ID: "buried-alive", Name: "Buried Alive", TimesPlayed: 48, AvgGap: 61, DebutDate: "1990-02-16"},
		{ID: "carini", Name: "Carini", TimesPlayed: 133, AvgGap: 7.2},
		{ID: "cavern", Name: "Cavern", TimesPlayed: 405, AvgGap: 3.6},
		{ID: "chalk-dust-torture", Name: "Chalk Dust Torture", TimesPlayed: 462, AvgGap: 2.9},
		{ID: "character-zero", Name: "Character Zero", TimesPlayed: 298, AvgGap: 4.1},
		{ID: "cities", Name: "Cities", IsCover: true, OriginalArtist: "Talking Heads", TimesPlayed: 71, AvgGap: 18.3},
		{ID: "crosseyed-and-painless", Name: "Crosseyed and Painless", IsCover: true, OriginalArtist: "Talking Heads", TimesPlayed: 64, AvgGap: 15.4, DebutDate: "1996-10-31"},
		{ID: "david-bowie", Name: "David Bowie", TimesPlayed: 401, AvgGap: 4.0},
		{ID: "dirt", Name: "Dirt", TimesPlayed: 98, AvgGap: 12.6},
		{ID: "divided-sky", Name: "Divided Sky", TimesPlayed: 387, AvgGap: 4.3},
		{ID: "down-with-disease", Name: "Down with Disease", TimesPlayed: 312, AvgGap: 3.5},
		{ID: "evolve", Name: "Evolve", TimesPlayed: 34, AvgGap: 5.8, DebutDate: "2023-07-11"},
		{ID: "fee", Name: "Fee", TimesPlayed: 201, AvgGap: 11.9, DebutDate: "1987-03-23"},
		{ID: "first-tube", Name: "First Tube", TimesPlayed: 162, AvgGap: 5.5},
		{ID: "fluffhead", Name: "Fluffhead", TimesPlayed: 212, AvgGap: 8.9, DebutDate: "1986-10-15"},
		{ID: "free", Name: "Free", TimesPlayed: 272, AvgGap: 4.4},
		{ID: "fuego", Name: "Fuego", TimesPlayed: 97, AvgGap: 6.3, DebutDate: "2014-05-20"},
		{ID: "ghost", Name: "Ghost", TimesPlayed: 241, AvgGap: 4.8},
		{ID: "golgi-apparatus", Name: "Golgi Apparatus", TimesPlayed: 441, AvgGap: 3.2},
		{ID: "guyute", Name: "Guyute", TimesPlayed: 152, AvgGap: 10.8},
		{ID: "harpua", Name: "Harpua", TimesPlayed: 45, AvgGap: 72, DebutDate: "1987-09-27"},
		{ID: "harry-hood", Name: "Harry Hood", TimesPlayed: 394, AvgGap: 4.1},
		{ID: "heavy-things", Name: "Heavy Things", TimesPlayed: 141, AvgGap: 7.4},
		{ID: "horn", Name: "Horn", TimesPlayed: 148, AvgGap: 12.1},
		{ID: "julius", Name: "Julius", TimesPlayed: 228, AvgGap: 5.3},
		{ID: "light", Name: "Light", TimesPlayed: 139, AvgGap: 5.1, DebutDate: "2009-06-04"},
		{ID: "limb-by-limb", Name: "Limb by Limb", TimesPlayed: 151, AvgGap: 7.8},
		{ID: "llama", Name: "Llama", TimesPlayed: 191, AvgGap: 9.6},
		{ID: "loving-cup", Name: "Loving Cup", IsCover: true, OriginalArtist: "The Rolling Stones", TimesPlayed: 107, AvgGap: 10.3, DebutDate: "1993-02-03"},
		{ID: "maze", Name: "Maze", TimesPlayed: 292, AvgGap: 4.9},
		{ID: "mercury", Name: "Mercury", TimesPlayed: 54, AvgGap: 6.7, DebutDate: "2015-08-15"},
		{ID: "mikes-song", Name: "Mike's Song", TimesPlayed: 501, AvgGap: 3.0},
		{ID: "mound", Name: "Mound", TimesPlayed: 119, AvgGap: 16.2},
		{ID: "my-friend-my-friend", Name: "My Friend, My Friend", TimesPlayed: 131, AvgGap: 13.5},
		{ID: "no-men-in-no-mans-land", Name: "No Men in No Man's Land", TimesPlayed: 78, AvgGap: 4.6, DebutDate: "2015-07-25"},
		{ID: "oblivion", Name: "Oblivion", TimesPlayed: 21, AvgGap: 3.9, DebutDate: "2024-07-19"},
		{ID: "piper", Name: "Piper", TimesPlayed: 231, AvgGap: 4.7},
		{ID: "poor-heart", Name: "Poor Heart", TimesPlayed: 302, AvgGap: 6.0},
		{ID: "possum", Name: "Possum", TimesPlayed: 521, AvgGap: 2.8, DebutDate: "1985-05-03"},
		{ID: "punch-you-in-the-eye", Name: "Punch You in the Eye", TimesPlayed: 201, AvgGap: 6.4},
		{ID: "reba", Name: "Reba", TimesPlayed: 329, AvgGap: 5.2},
		{ID: "rift", Name: "Rift", TimesPlayed: 211, AvgGap: 7.1},
		{ID: "run-like-an-antelope", Name: "Run Like an Antelope", TimesPlayed: 441, AvgGap: 3.3},
		{ID: "sample-in-a-jar", Name: "Sample in a Jar", TimesPlayed: 348, AvgGap: 3.7},
		{ID: "sand", Name: "Sand", TimesPlayed: 172, AvgGap: 4.5},
		{ID: "silent-in-the-morning", Name: "Silent in the Morning", TimesPlayed: 122, AvgGap: 14.8},
		{ID: "simple", Name: "Simple", TimesPlayed: 241, AvgGap: 5.0},
		{ID: "slave-to-the-traffic-light", Name: "Slave to the Traffic Light", TimesPlayed: 232, AvgGap: 6.6},
		{ID: "sparkle", Name: "Sparkle", TimesPlayed: 251, AvgGap: 7.7},
		{ID: "stash", Name: "Stash", TimesPlayed: 401, AvgGap: 3.9},
		{ID: "stealing-time", Name: "Stealing Time from the Faulty Plan", TimesPlayed: 101, AvgGap: 7.9, DebutDate: "2009-10-30"},
		{ID: "steam", Name: "Steam", TimesPlayed: 51, AvgGap: 13.2, DebutDate: "2011-08-15"},
		{ID: "suzy-greenberg", Name: "Suzy Greenberg", TimesPlayed: 312, AvgGap: 5.4},
		{ID: "taste", Name: "Taste", TimesPlayed: 201, AvgGap: 6.2},
		{ID: "the-sloth", Name: "The Sloth", TimesPlayed: 91, AvgGap: 55, DebutDate: "1986-04-01"},
		{ID: "the-wedge", Name: "The Wedge", TimesPlayed: 181, AvgGap: 8.3},
		{ID: "theme-from-the-bottom", Name: "Theme from the Bottom", TimesPlayed: 231, AvgGap: 5.7},
		{ID: "thread", Name: "Thread", TimesPlayed: 18, AvgGap: 4.4, DebutDate: "2021-08-13"},
		{ID: "tube", Name: "Tube", TimesPlayed: 161, AvgGap: 7.0},
		{ID: "tweezer", Name: "Tweezer", TimesPlayed: 412, AvgGap: 3.1, DebutDate: "1990-02-03"},
		{ID: "tweezer-reprise", Name: "Tweezer Reprise", TimesPlayed: 391, AvgGap: 3.2},
		{ID: "twists", Name: "Twist", TimesPlayed: 221, AvgGap: 5.6},
		{ID: "weekapaug-groove", Name: "Weekapaug Groove", TimesPlayed: 481, AvgGap: 3.1},
		{ID: "wolfmans-brother", Name: "Wolfman's Brother", TimesPlayed: 281, AvgGap: 4.2},
		{ID: "ya-mar", Name: "Ya Mar", IsCover: true, OriginalArtist: "Cyril Ferguson", TimesPlayed: 141, AvgGap: 12.4},
	}
}

func SeedShows() []show.Show {
	msg := func(id, date string, number int, set1, set2, encore []string) show.Show {
		s := show.Show{
			ID:          id,
			Date:        date,
			Venue:       "Madison Square Garden",
			City:        "New York",
			State:       "NY",
			ShowNumber:  number,
			IsCompleted: true,
		}
		s.Set1, _ = show.BuildSegment(show.SegmentSet1, set1)
		s.Set2, _ = show.BuildSegment(show.SegmentSet2, set2)
		s.Encore, _ = show.BuildSegment(show.SegmentEncore, encore)
		return s
	}

	return []show.Show{
		msg("2024-12-28", "2024-12-28", 1,
			[]string{"buried-alive", "ac-dc-bag", "46-days", "sample-in-a-jar", "stash", "limb-by-limb", "bouncing-around-the-room", "bathtub-gin"},
			[]string{"crosseyed-and-painless", "steam", "no-men-in-no-mans-land", "dirt", "guyute", "the-sloth", "heavy-things", "slave-to-the-traffic-light"},
			[]string{"evolve", "character-zero"},
		),
		msg("2024-12-29", "2024-12-29", 2,
			[]string{"divided-sky", "fee", "maze", "sand", "the-wedge", "rift", "taste", "golgi-apparatus"},
			[]string{"down-with-disease", "cities", "fuego", "reba", "thread", "bug", "oblivion", "cavern"},
			[]string{"stealing-time", "mound"},
		),
		msg("2024-12-30", "2024-12-30", 3,
			[]string{"fluffhead", "horn", "poor-heart", "suzy-greenberg", "theme-from-the-bottom", "ya-mar", "free", "possum"},
			[]string{"twists", "simple", "mercury", "carini", "blaze-on", "my-friend-my-friend", "tube", "run-like-an-antelope"},
			[]string{"silent-in-the-morning", "loving-cup"},
		),
		msg("2024-12-31", "2024-12-31", 4,
			[]string{"chalk-dust-torture", "sparkle", "mikes-song", "weekapaug-groove", "julius", "first-tube", "punch-you-in-the-eye", "llama"},
			[]string{"also-sprach-zarathustra", "ghost", "piper", "light", "wolfmans-brother", "harry-hood", "david-bowie", "tweezer"},
			[]string{"harpua", "tweezer-reprise"},
		),
		{
			ID:         "2025-07-15",
			Date:       "2025-07-15",
			Venue:      "The Gorge Amphitheatre",
			City:       "George",
			State:      "WA",
			ShowNumber: 5,
		},
	}
}
