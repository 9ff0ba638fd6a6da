package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

func TestAggregateSkillGaps_CountsEveryOccurrence(t *testing.T) {
	results := []types.MatchResult{
		{JobID: "job_a", MissingSkills: []string{"aws", "docker"}},
		{JobID: "job_b", MissingSkills: []string{"aws"}},
		{JobID: "job_c", MissingSkills: []string{"aws", "kubernetes"}},
	}

	gaps := AggregateSkillGaps(results)

	assert.Equal(t, map[string]int{
		"aws":        3,
		"docker":     1,
		"kubernetes": 1,
	}, gaps)
}

func TestAggregateSkillGaps_CountsSumToOccurrences(t *testing.T) {
	results := []types.MatchResult{
		{MissingSkills: []string{"aws", "docker"}},
		{MissingSkills: []string{"spark"}},
		{MissingSkills: nil},
	}

	gaps := AggregateSkillGaps(results)

	total := 0
	for _, count := range gaps {
		total += count
	}
	assert.Equal(t, 3, total)
}

func TestAggregateSkillGaps_Empty(t *testing.T) {
	gaps := AggregateSkillGaps(nil)
	require.NotNil(t, gaps)
	assert.Empty(t, gaps)

	gaps = AggregateSkillGaps([]types.MatchResult{{JobID: "job_a"}})
	assert.Empty(t, gaps)
}

func TestSortedSkillGaps_OrderedByCountThenSkill(t *testing.T) {
	sorted := SortedSkillGaps(map[string]int{
		"spark":  2,
		"aws":    3,
		"docker": 2,
		"gcp":    1,
	})

	assert.Equal(t, []types.SkillGap{
		{Skill: "aws", Count: 3},
		{Skill: "docker", Count: 2},
		{Skill: "spark", Count: 2},
		{Skill: "gcp", Count: 1},
	}, sorted)
}

func TestSortedSkillGaps_Empty(t *testing.T) {
	sorted := SortedSkillGaps(map[string]int{})
	require.NotNil(t, sorted)
	assert.Empty(t, sorted)
}
