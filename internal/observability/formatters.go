// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeProfile outputs a human-readable summary of the built resume profile.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Resume:   %s\n", profile.ResumeID))
	sb.WriteString(fmt.Sprintf("Vector:   %d dimensions\n", len(profile.Vector)))
	if profile.Summary != "" {
		summary := profile.Summary
		if len(summary) > 45 {
			summary = summary[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", summary))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobPostings outputs the top fetched postings with skills.
func (p *Printer) PrintJobPostings(postings []types.JobPosting) {
	if len(postings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total postings: %d\n\n", len(postings)))

	count := min(len(postings), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := postings[i]
		title := job.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %s (%s)\n", job.Company, job.Location))
		if len(job.Skills) > 0 {
			skills := strings.Join(job.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(postings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(postings)-maxItemsToShow))
	}

	p.printBox("FETCHED JOB POSTINGS", sb.String())
}

// PrintMatchReport outputs the top ranked matches with score components.
func (p *Printer) PrintMatchReport(report *types.MatchReport) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs ranked for %s: %d\n\n", report.ResumeID, len(report.Results)))

	count := min(len(report.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := report.Results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.JobID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (semantic %.2f, keyword %.2f)\n",
			result.FinalScore, result.SemanticScore, result.KeywordOverlap))
		if len(result.CommonSkills) > 0 {
			skills := strings.Join(result.CommonSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Common: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(report.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(report.Results)-maxItemsToShow))
	}

	p.printBox("TOP MATCHES", sb.String())
}

// PrintSkillGaps outputs the skills missing from the resume, most wanted first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSkillGaps(gaps []types.SkillGap) {
	if len(gaps) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SKILL GAPS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d missing skills:\n\n", len(gaps)))

	count := min(len(gaps), maxItemsToShow)
	for i := 0; i < count; i++ {
		gap := gaps[i]
		sb.WriteString(fmt.Sprintf("⚠ %s (%d jobs)\n", gap.Skill, gap.Count))
	}

	if len(gaps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more skills", len(gaps)-maxItemsToShow))
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCourseSuggestions outputs course picks for the top missing skills.
func (p *Printer) PrintCourseSuggestions(courses []types.CourseSuggestion) {
	if len(courses) == 0 {
		return
	}

	var sb strings.Builder

	count := min(len(courses), maxItemsToShow)
	for i := 0; i < count; i++ {
		suggestion := courses[i]
		sb.WriteString(fmt.Sprintf("%s:\n", suggestion.Skill))
		for _, course := range suggestion.Courses {
			name := course
			if len(name) > 50 {
				name = name[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(courses) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more skills", len(courses)-maxItemsToShow))
	}

	p.printBox("COURSE SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
