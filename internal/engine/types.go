package engine

// Rank grades a mission the way hunter gates are graded, E lowest to S highest.
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

func (r Rank) IsValid() bool {
	switch r {
	case RankE, RankD, RankC, RankB, RankA, RankS:
		return true
	default:
		return false
	}
}

// DefaultRank is used when user input is missing.
const DefaultRank Rank = RankE

// Categories are free-form; these are the ones the default catalogs use.
const (
	CategoryBody   = "body"
	CategoryMind   = "mind"
	CategoryArt    = "art"
	CategorySocial = "social"
	CategoryCareer = "career"
)
