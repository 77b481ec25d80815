package extraction

import (
	"testing"

	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name string
		in   []types.Skill
		want []types.Skill
	}{
		{
			name: "single skill untouched",
			in:   []types.Skill{{Name: "Go", ProficiencyLevel: "Expert"}},
			want: []types.Skill{{Name: "Go", ProficiencyLevel: "Expert"}},
		},
		{
			name: "comma list carries level and years",
			in:   []types.Skill{{Name: "Ansible, saltstack", ProficiencyLevel: "Advanced", YearsOfExperience: "4"}},
			want: []types.Skill{
				{Name: "Ansible", ProficiencyLevel: "Advanced", YearsOfExperience: "4"},
				{Name: "saltstack", ProficiencyLevel: "Advanced", YearsOfExperience: "4"},
			},
		},
		{
			name: "semicolons and full-width commas",
			in:   []types.Skill{{Name: "Python; SQL，Spark"}},
			want: []types.Skill{{Name: "Python"}, {Name: "SQL"}, {Name: "Spark"}},
		},
		{
			name: "parenthesized list kept whole",
			in:   []types.Skill{{Name: "Microsoft Office (Word, Excel), Jira"}},
			want: []types.Skill{{Name: "Microsoft Office (Word, Excel)"}, {Name: "Jira"}},
		},
		{
			name: "empty items dropped",
			in:   []types.Skill{{Name: "Docker, , "}, {Name: "  "}},
			want: []types.Skill{{Name: "Docker"}},
		},
		{
			name: "nil input",
			in:   nil,
			want: []types.Skill{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkills(tt.in))
		})
	}
}
