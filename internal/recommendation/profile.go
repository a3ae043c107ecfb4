package recommendation

import (
	"sort"
)

const (
	weightReadOrReading = 3
	weightShelfDefault  = 1
	lovedMinRating      = 4
)

// Profile is one user's genre preference signal.
type Profile struct {
	// GenreWeight accumulates per-genre weight: 3 per read/reading item,
	// 1 per other shelf entry. Legacy items that are not read/reading
	// contribute nothing.
	GenreWeight map[string]int
	// LovedGenres lists the normalized genre of every read/reading item
	// rated >= 4, in input order, duplicates kept. Frequency matters
	// downstream.
	LovedGenres []string
}

func BuildProfile(items []HistoryItem) Profile {
	p := Profile{GenreWeight: make(map[string]int)}
	for _, it := range items {
		genre := NormalizeGenre(it.Genre)
		if genre == "" {
			continue
		}
		switch {
		case it.Status.IsReadOrReading():
			p.GenreWeight[genre] += weightReadOrReading
		case it.Source == SourceShelf:
			p.GenreWeight[genre] += weightShelfDefault
		}
		if it.Status.IsReadOrReading() && it.Rating >= lovedMinRating {
			p.LovedGenres = append(p.LovedGenres, genre)
		}
	}
	return p
}

// TopGenres returns the n heaviest genres. Ties break alphabetically so two
// identical profiles always rank the same way.
func TopGenres(p Profile, n int) []string {
	type genreWeight struct {
		genre  string
		weight int
	}
	ranked := make([]genreWeight, 0, len(p.GenreWeight))
	for g, w := range p.GenreWeight {
		ranked = append(ranked, genreWeight{genre: g, weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].genre < ranked[j].genre
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	top := make([]string, 0, n)
	for _, gw := range ranked[:n] {
		top = append(top, gw.genre)
	}
	return top
}
