package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// maxMissingInDisplay caps the missing-skill list in the display string; the
// artifact keeps the full list.
const maxMissingInDisplay = 5

// commonSkills returns the sorted intersection of the resume and job skill
// sets, lowercased.
func commonSkills(resumeSkills, jobSkills []string) []string {
	resumeSet := toSet(resumeSkills)
	common := make([]string, 0, len(jobSkills))
	seen := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := resumeSet[key]; ok {
			common = append(common, key)
		}
	}
	sort.Strings(common)
	return common
}

// missingSkills returns the sorted job skills absent from the resume,
// lowercased.
func missingSkills(resumeSkills, jobSkills []string) []string {
	resumeSet := toSet(resumeSkills)
	missing := make([]string, 0, len(jobSkills))
	seen := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := resumeSet[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		set[strings.ToLower(skill)] = struct{}{}
	}
	return set
}

// Explanation formats a match result for display: the final score, the
// common skills, and up to five skills to learn. Empty sections are omitted.
func Explanation(result *types.MatchResult) string {
	lines := []string{fmt.Sprintf("Score: %.2f", result.FinalScore)}
	if len(result.CommonSkills) > 0 {
		lines = append(lines, "Common: "+strings.Join(result.CommonSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		missing := result.MissingSkills
		if len(missing) > maxMissingInDisplay {
			missing = missing[:maxMissingInDisplay]
		}
		lines = append(lines, "Learn: "+strings.Join(missing, ", "))
	}
	return strings.Join(lines, " | ")
}
