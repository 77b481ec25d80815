// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/types"
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
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most limit runes, marking the cut with "..."
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// PrintPayload outputs every section of a merged payload.
func (p *Printer) PrintPayload(payload *types.FinalPayload) {
	if payload == nil {
		return
	}
	p.PrintProfile(payload)
	p.PrintWorkExperience(payload.ProcessedWorkExperience)
	p.PrintSkills(payload.Skills, payload.Certifications)
}

// PrintProfile outputs the contact block, objective and education.
func (p *Printer) PrintProfile(payload *types.FinalPayload) {
	var sb strings.Builder

	if info := payload.PersonalInformation; info != nil {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", info.FullName))
		if info.Email != "" {
			sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
		}
		if info.Phone != "" {
			sb.WriteString(fmt.Sprintf("Phone:    %s\n", info.Phone))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Objective: %s\n", payload.Objective))

	if len(payload.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, edu := range payload.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.Institution))
		}
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkExperience outputs each processed entry with its responsibility segments. The
// rewritten entry is marked.
func (p *Printer) PrintWorkExperience(entries []types.ProcessedWorkExperience) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	for i, entry := range entries {
		marker := ""
		if len(entry.NewResponsibility) > 0 {
			marker = " [rewritten]"
		}
		sb.WriteString(fmt.Sprintf("%s, %s%s\n", entry.Position, entry.Company, marker))
		sb.WriteString(fmt.Sprintf("  %s - %s\n", entry.StartDate, entry.EndDate))

		segments := make([]string, 0, len(entry.NewResponsibility)+len(entry.Responsibility))
		for _, item := range entry.NewResponsibility {
			segments = append(segments, item.NewResponsibility)
		}
		for _, item := range entry.Responsibility {
			segments = append(segments, item.Responsibility)
		}

		count := min(len(segments), maxItemsToShow)
		for _, segment := range segments[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", segment))
		}
		if len(segments) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(segments)-maxItemsToShow))
		}
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs deduplicated skills and certifications.
func (p *Printer) PrintSkills(skills []types.Skill, certifications []types.Certification) {
	if len(skills) == 0 && len(certifications) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills: %d\n", len(skills)))
	count := min(len(skills), maxItemsToShow*2)
	for _, skill := range skills[:count] {
		sb.WriteString(fmt.Sprintf("  • %s", skill.Name))
		if skill.ProficiencyLevel != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", skill.ProficiencyLevel))
		}
		sb.WriteString("\n")
	}
	if len(skills) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-count))
	}

	if len(certifications) > 0 {
		sb.WriteString("\nCertifications:\n")
		for _, cert := range certifications {
			sb.WriteString(fmt.Sprintf("  • %s", cert.Name))
			if cert.IssuingOrganization != "" {
				sb.WriteString(fmt.Sprintf(" - %s", cert.IssuingOrganization))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
