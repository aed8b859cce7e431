// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Weighted tallies and note sets

package aggregate

import "sort"

// Entry is one tallied value with its cumulative score
type Entry struct {
	Value string `json:"value"`
	Score int    `json:"score"`
}

// Tally accumulates scores per value, remembering first insertion order.
// The zero value is ready to use.
type Tally struct {
	entries []Entry
	index   map[string]int
}

// Add sums score into value. Empty values are ignored.
func (t *Tally) Add(value string, score int) {
	if value == "" {
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[value]; ok {
		t.entries[i].Score += score
		return
	}
	t.index[value] = len(t.entries)
	t.entries = append(t.entries, Entry{Value: value, Score: score})
}

// Score returns the cumulative score of value
func (t *Tally) Score(value string) int {
	if i, ok := t.index[value]; ok {
		return t.entries[i].Score
	}
	return 0
}

// Len returns the number of distinct values
func (t *Tally) Len() int {
	return len(t.entries)
}

// Total returns the sum of all scores
func (t *Tally) Total() int {
	total := 0
	for _, e := range t.entries {
		total += e.Score
	}
	return total
}

// Sorted returns the entries by descending score. Equal scores keep
// their insertion order.
func (t *Tally) Sorted() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// NoteSet keeps distinct notes in first-seen order
type NoteSet struct {
	notes []string
	seen  map[string]bool
}

// Add records notes that were not seen before
func (s *NoteSet) Add(notes ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, n := range notes {
		if s.seen[n] {
			continue
		}
		s.seen[n] = true
		s.notes = append(s.notes, n)
	}
}

// Items returns the notes in insertion order
func (s *NoteSet) Items() []string {
	out := make([]string, len(s.notes))
	copy(out, s.notes)
	return out
}
