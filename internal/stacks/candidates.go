// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scored candidates for secondary attributes

package stacks

// Candidate is a scored proposal for a runtime version or a command
type Candidate struct {
	Value string `json:"value"`
	Score int    `json:"score"`
}

// CandidateSet accumulates candidates by value. Adding an existing value
// sums the scores; insertion order is kept for tie-breaks. The zero value
// is ready to use.
type CandidateSet struct {
	items []Candidate
	index map[string]int
}

// Add proposes a value. Empty values are ignored.
func (s *CandidateSet) Add(value string, score int) {
	if value == "" {
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[value]; ok {
		s.items[i].Score += score
		return
	}
	s.index[value] = len(s.items)
	s.items = append(s.items, Candidate{Value: value, Score: score})
}

// Merge adds every candidate of other, in other's order
func (s *CandidateSet) Merge(other CandidateSet) {
	for _, c := range other.items {
		s.Add(c.Value, c.Score)
	}
}

// Best returns the value with the highest cumulative score. The earliest
// inserted value wins a tie.
func (s CandidateSet) Best() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	best := s.items[0]
	for _, c := range s.items[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best.Value, true
}

// BestOr returns Best or fallback when the set is empty
func (s CandidateSet) BestOr(fallback string) string {
	if v, ok := s.Best(); ok {
		return v
	}
	return fallback
}

// Items returns a copy of the candidates in insertion order
func (s CandidateSet) Items() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct values
func (s CandidateSet) Len() int {
	return len(s.items)
}
