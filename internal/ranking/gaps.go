package ranking

import (
	"sort"

	"github.com/jonathan/job-matcher/internal/types"
)

// AggregateSkillGaps counts how many ranked jobs required each skill the
// resume lacks. Pure aggregation: every missing-skill occurrence across the
// results is counted exactly once.
func AggregateSkillGaps(results []types.MatchResult) map[string]int {
	gaps := make(map[string]int)
	for _, result := range results {
		for _, skill := range result.MissingSkills {
			gaps[skill]++
		}
	}
	return gaps
}

// SortedSkillGaps flattens gap counts into a stable slice ordered by count
// descending, then skill ascending, for presentation and artifacts.
func SortedSkillGaps(gaps map[string]int) []types.SkillGap {
	out := make([]types.SkillGap, 0, len(gaps))
	for skill, count := range gaps {
		out = append(out, types.SkillGap{Skill: skill, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}
