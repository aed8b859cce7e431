// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Candidate set tests

package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/repo-analyzer/internal/stacks"
)

func TestCandidateSet_SumsDuplicates(t *testing.T) {
	var set stacks.CandidateSet
	set.Add("go test ./...", 70)
	set.Add("pytest", 60)
	set.Add("pytest", 60)
	set.Add("", 100)

	assert.Equal(t, 2, set.Len())
	best, ok := set.Best()
	require.True(t, ok)
	assert.Equal(t, "pytest", best)
	assert.Equal(t, []stacks.Candidate{{Value: "go test ./...", Score: 70}, {Value: "pytest", Score: 120}}, set.Items())
}

func TestCandidateSet_FirstInsertedWinsTie(t *testing.T) {
	var set stacks.CandidateSet
	set.Add("node-20", 60)
	set.Add("python-3.12", 60)

	assert.Equal(t, "node-20", set.BestOr(stacks.Unknown))
}

func TestCandidateSet_EmptyAndMerge(t *testing.T) {
	var empty stacks.CandidateSet
	_, ok := empty.Best()
	assert.False(t, ok)
	assert.Equal(t, stacks.Unknown, empty.BestOr(stacks.Unknown))

	var a, b stacks.CandidateSet
	a.Add("x", 1)
	b.Add("y", 5)
	b.Add("x", 5)
	a.Merge(b)
	assert.Equal(t, []stacks.Candidate{{Value: "x", Score: 6}, {Value: "y", Score: 5}}, a.Items())
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, stacks.IsPlaceholder(""))
	assert.True(t, stacks.IsPlaceholder("unknown"))
	assert.True(t, stacks.IsPlaceholder("none"))
	assert.False(t, stacks.IsPlaceholder("go"))

	v := stacks.DefaultVerdict()
	assert.Equal(t, "unknown", v.Language)
	assert.Equal(t, "none", v.Framework)
	assert.Zero(t, v.Score)
}
