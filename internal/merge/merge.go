// Package merge combines the extraction and rewrite results into the final response payload.
package merge

import (
	"errors"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/types"
)

// ResponsibilityDelimiter separates sentence-like segments of a responsibility text.
const ResponsibilityDelimiter = ". "

var (
	// ErrMissingProfile is returned when no profile was extracted.
	ErrMissingProfile = errors.New("profile extraction result is required")
	// ErrMissingSkills is returned when no skills and certifications were extracted.
	ErrMissingSkills = errors.New("skills extraction result is required")
	// ErrMissingRewrite is returned when a non-empty work history has no rewritten top entry.
	ErrMissingRewrite = errors.New("rewrite result for the top work experience is missing")
)

// SplitResponsibilities splits text on ". ". Text without the delimiter yields one segment.
func SplitResponsibilities(text string) []string {
	return strings.Split(text, ResponsibilityDelimiter)
}

// DedupSkills concatenates resume skills and job description skills, keeping the first record
// seen for each exact name.
func DedupSkills(resumeSkills, jobSkills []types.Skill) []types.Skill {
	seen := make(map[string]struct{}, len(resumeSkills)+len(jobSkills))
	result := make([]types.Skill, 0, len(resumeSkills)+len(jobSkills))

	for _, group := range [][]types.Skill{resumeSkills, jobSkills} {
		for _, skill := range group {
			if _, ok := seen[skill.Name]; ok {
				continue
			}
			seen[skill.Name] = struct{}{}
			result = append(result, skill)
		}
	}
	return result
}

// Merge assembles the final payload. The top work experience is replaced by its rewritten
// counterpart; every other entry passes through with its responsibility text split into segments.
// rewritten may be nil only when the work history is empty.
func Merge(profile *types.Profile, history *types.WorkHistory, skills *types.SkillsCerts, rewritten *types.RewrittenWorkHistory) (*types.FinalPayload, error) {
	if profile == nil {
		return nil, ErrMissingProfile
	}
	if skills == nil {
		return nil, ErrMissingSkills
	}

	var entries []types.WorkExperience
	if history != nil {
		entries = history.WorkExperience
	}

	processed := make([]types.ProcessedWorkExperience, 0, len(entries))
	if len(entries) > 0 {
		if rewritten == nil || len(rewritten.WorkExperience) == 0 {
			return nil, ErrMissingRewrite
		}
		processed = append(processed, processTop(entries[0], rewritten.WorkExperience[0]))
		for _, entry := range entries[1:] {
			processed = append(processed, processEntry(entry))
		}
	}

	return &types.FinalPayload{
		PersonalInformation:     copyPersonalInformation(profile.PersonalInformation),
		Education:               copySlice(profile.Education),
		Objective:               profile.Objective,
		ProcessedWorkExperience: processed,
		Skills:                  DedupSkills(skills.Skills, skills.JobDescriptionSkills),
		Certifications:          copySlice(skills.Certifications),
		WorkExperience:          copySlice(entries),
	}, nil
}

// processTop takes the rewritten entry's fields, falling back to the original entry for any
// field the rewrite left empty.
func processTop(original types.WorkExperience, rewrite types.RewrittenWorkExperience) types.ProcessedWorkExperience {
	segments := SplitResponsibilities(rewrite.NewResponsibility)
	items := make([]types.NewResponsibilityItem, len(segments))
	for i, s := range segments {
		items[i] = types.NewResponsibilityItem{NewResponsibility: s}
	}

	return types.ProcessedWorkExperience{
		Company:           firstNonEmpty(rewrite.Company, original.Company),
		Position:          firstNonEmpty(rewrite.Position, original.Position),
		StartDate:         firstNonEmpty(rewrite.StartDate, original.StartDate),
		EndDate:           firstNonEmpty(rewrite.EndDate, original.EndDate),
		NewResponsibility: items,
	}
}

func processEntry(entry types.WorkExperience) types.ProcessedWorkExperience {
	segments := SplitResponsibilities(entry.Responsibility)
	items := make([]types.ResponsibilityItem, len(segments))
	for i, s := range segments {
		items[i] = types.ResponsibilityItem{Responsibility: s}
	}

	return types.ProcessedWorkExperience{
		Company:        entry.Company,
		Position:       entry.Position,
		StartDate:      entry.StartDate,
		EndDate:        entry.EndDate,
		Responsibility: items,
	}
}

func copyPersonalInformation(info *types.PersonalInformation) *types.PersonalInformation {
	if info == nil {
		return nil
	}
	cp := *info
	return &cp
}

// copySlice returns a copy that never aliases in and is never nil.
func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
