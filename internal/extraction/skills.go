package extraction

import (
	"strings"

	"github.com/jonathan/resume-rewriter/internal/types"
)

// NormalizeSkills splits skill names that enumerate several skills ("AWS, Azure") into one
// record per item, each carrying the original proficiency and years. Separators inside
// parentheses or brackets are left alone.
func NormalizeSkills(skills []types.Skill) []types.Skill {
	result := make([]types.Skill, 0, len(skills))
	for _, skill := range skills {
		names := splitSkillNames(skill.Name)
		if len(names) == 0 {
			continue
		}
		for _, name := range names {
			s := skill
			s.Name = name
			result = append(result, s)
		}
	}
	return result
}

func splitSkillNames(name string) []string {
	var names []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if item := strings.TrimSpace(current.String()); item != "" {
			names = append(names, item)
		}
		current.Reset()
	}

	for _, r := range name {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',', ';', '，':
			if depth == 0 {
				flush()
				continue
			}
		}
		current.WriteRune(r)
	}
	flush()

	return names
}
