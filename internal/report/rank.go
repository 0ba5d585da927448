package report

import "sort"

// Candidate is one (key, score) pair offered for ranking. A nil Score marks
// an absent value — such candidates are dropped before ranking, mirroring a
// strict is-not-null filter.
type Candidate struct {
	Key   string
	Score *int
}

// Ranked is one ranked entry.
type Ranked struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
	Rank  int    `json:"rank"`
}

// Rank orders candidates descending by score and assigns standard
// competition ranks: equal scores share a rank, and the next distinct
// score's rank is 1 + the number of entries strictly above it, so ties
// consume rank slots ([10,10,8] → [1,1,3]).
//
// Candidates with a nil score are excluded. Ties keep input order.
func Rank(candidates []Candidate) []Ranked {
	scored := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if c.Score == nil {
			continue
		}
		scored = append(scored, Ranked{Key: c.Key, Score: *c.Score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	for i := range scored {
		if i > 0 && scored[i].Score == scored[i-1].Score {
			scored[i].Rank = scored[i-1].Rank
			continue
		}
		scored[i].Rank = i + 1
	}
	return scored
}
