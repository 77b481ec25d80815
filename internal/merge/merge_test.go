package merge

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitResponsibilities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"three sentences", "Did X. Did Y. Did Z", []string{"Did X", "Did Y", "Did Z"}},
		{"no delimiter", "Owned the billing platform", []string{"Owned the billing platform"}},
		{"trailing period kept", "Did X. Did Y.", []string{"Did X", "Did Y."}},
		{"period without space", "Node.js and Vue.js", []string{"Node.js and Vue.js"}},
		{"empty text", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitResponsibilities(tt.text))
		})
	}
}

func TestDedupSkills(t *testing.T) {
	resume := []types.Skill{
		{Name: "AWS", ProficiencyLevel: "Advanced", YearsOfExperience: "5"},
		{Name: "Docker", ProficiencyLevel: "Intermediate"},
	}
	job := []types.Skill{
		{Name: "AWS", ProficiencyLevel: "Required"},
		{Name: "Kubernetes"},
	}

	got := DedupSkills(resume, job)

	require.Len(t, got, 3)
	assert.Equal(t, resume[0], got[0])
	assert.Equal(t, "Docker", got[1].Name)
	assert.Equal(t, "Kubernetes", got[2].Name)
}

func TestDedupSkills_ExactNameMatch(t *testing.T) {
	got := DedupSkills(
		[]types.Skill{{Name: "aws"}, {Name: "AWS"}, {Name: "AWS "}, {Name: "aws"}},
		nil,
	)

	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"aws", "AWS", "AWS "}, names)
}

func TestDedupSkills_Empty(t *testing.T) {
	got := DedupSkills(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func sampleHistory() *types.WorkHistory {
	return &types.WorkHistory{WorkExperience: []types.WorkExperience{
		{Company: "Acme", Position: "Lead Engineer", StartDate: "2021", EndDate: "Present", Responsibility: "Led the team. Shipped the API"},
		{Company: "Globex", Position: "Engineer", StartDate: "2018", EndDate: "2021", Responsibility: "Built pipelines. Wrote tests. Ran on-call"},
		{Company: "Initech", Position: "Intern", StartDate: "2017", EndDate: "2018", Responsibility: "Fixed bugs"},
	}}
}

func TestMerge_ReplacesOnlyTopEntry(t *testing.T) {
	history := sampleHistory()
	original := make([]types.WorkExperience, len(history.WorkExperience))
	copy(original, history.WorkExperience)

	rewritten := &types.RewrittenWorkHistory{WorkExperience: []types.RewrittenWorkExperience{
		{Company: "Acme", Position: "Lead Engineer", StartDate: "2021", EndDate: "Present", NewResponsibility: "Directed 8 engineers. Delivered a 99.9% uptime API"},
	}}
	profile := &types.Profile{Objective: "Lead platform teams"}
	skills := &types.SkillsCerts{}

	payload, err := Merge(profile, history, skills, rewritten)
	require.NoError(t, err)

	require.Len(t, payload.ProcessedWorkExperience, 3)

	top := payload.ProcessedWorkExperience[0]
	assert.Equal(t, "Acme", top.Company)
	assert.Nil(t, top.Responsibility)
	assert.Equal(t, []types.NewResponsibilityItem{
		{NewResponsibility: "Directed 8 engineers"},
		{NewResponsibility: "Delivered a 99.9% uptime API"},
	}, top.NewResponsibility)

	second := payload.ProcessedWorkExperience[1]
	assert.Equal(t, "Globex", second.Company)
	assert.Nil(t, second.NewResponsibility)
	assert.Equal(t, []types.ResponsibilityItem{
		{Responsibility: "Built pipelines"},
		{Responsibility: "Wrote tests"},
		{Responsibility: "Ran on-call"},
	}, second.Responsibility)

	third := payload.ProcessedWorkExperience[2]
	assert.Equal(t, []types.ResponsibilityItem{{Responsibility: "Fixed bugs"}}, third.Responsibility)

	assert.Equal(t, original, payload.WorkExperience)
	assert.Equal(t, original, history.WorkExperience)
	assert.Equal(t, "Lead platform teams", payload.Objective)
}

func TestMerge_WorkExperienceIsNotAliased(t *testing.T) {
	history := sampleHistory()
	rewritten := &types.RewrittenWorkHistory{WorkExperience: []types.RewrittenWorkExperience{{NewResponsibility: "x"}}}

	payload, err := Merge(&types.Profile{Objective: "o"}, history, &types.SkillsCerts{}, rewritten)
	require.NoError(t, err)

	payload.WorkExperience[0].Company = "Changed"
	assert.Equal(t, "Acme", history.WorkExperience[0].Company)
}

func TestMerge_TopFallsBackToOriginalFields(t *testing.T) {
	rewritten := &types.RewrittenWorkHistory{WorkExperience: []types.RewrittenWorkExperience{
		{Position: "Staff Engineer", NewResponsibility: "Scaled the API"},
	}}

	payload, err := Merge(&types.Profile{Objective: "o"}, sampleHistory(), &types.SkillsCerts{}, rewritten)
	require.NoError(t, err)

	top := payload.ProcessedWorkExperience[0]
	assert.Equal(t, "Acme", top.Company)
	assert.Equal(t, "Staff Engineer", top.Position)
	assert.Equal(t, "2021", top.StartDate)
	assert.Equal(t, "Present", top.EndDate)
}

func TestMerge_SkillsAndCertifications(t *testing.T) {
	skills := &types.SkillsCerts{
		Skills:               []types.Skill{{Name: "AWS"}, {Name: "Docker"}},
		JobDescriptionSkills: []types.Skill{{Name: "AWS"}, {Name: "Kubernetes"}},
		Certifications:       []types.Certification{{Name: "CKA", IssuingOrganization: "CNCF"}},
	}

	payload, err := Merge(&types.Profile{Objective: "o"}, &types.WorkHistory{}, skills, nil)
	require.NoError(t, err)

	assert.Equal(t, []types.Skill{{Name: "AWS"}, {Name: "Docker"}, {Name: "Kubernetes"}}, payload.Skills)
	assert.Equal(t, skills.Certifications, payload.Certifications)
}

func TestMerge_EmptyWorkHistory(t *testing.T) {
	payload, err := Merge(&types.Profile{Objective: "o"}, nil, &types.SkillsCerts{}, nil)
	require.NoError(t, err)

	assert.Empty(t, payload.ProcessedWorkExperience)
	assert.Empty(t, payload.WorkExperience)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"processed_work_experience":[]`)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Contains(t, string(data), `"personal_information":null`)
}

func TestMerge_Errors(t *testing.T) {
	_, err := Merge(nil, sampleHistory(), &types.SkillsCerts{}, nil)
	assert.ErrorIs(t, err, ErrMissingProfile)

	_, err = Merge(&types.Profile{}, sampleHistory(), nil, nil)
	assert.ErrorIs(t, err, ErrMissingSkills)

	_, err = Merge(&types.Profile{}, sampleHistory(), &types.SkillsCerts{}, nil)
	assert.ErrorIs(t, err, ErrMissingRewrite)

	_, err = Merge(&types.Profile{}, sampleHistory(), &types.SkillsCerts{}, &types.RewrittenWorkHistory{})
	assert.ErrorIs(t, err, ErrMissingRewrite)
}

func TestMerge_PayloadJSONShape(t *testing.T) {
	rewritten := &types.RewrittenWorkHistory{WorkExperience: []types.RewrittenWorkExperience{{NewResponsibility: "A. B"}}}
	payload, err := Merge(&types.Profile{Objective: "o"}, sampleHistory(), &types.SkillsCerts{}, rewritten)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	processed := decoded["processed_work_experience"].([]any)
	top := processed[0].(map[string]any)
	assert.Equal(t, []any{map[string]any{"new_responsibility": "A"}, map[string]any{"new_responsibility": "B"}}, top["new_responsibility"])
	assert.NotContains(t, top, "responsibility")

	rest := processed[1].(map[string]any)
	assert.NotContains(t, rest, "new_responsibility")
	assert.Contains(t, rest, "responsibility")

	original := decoded["work_experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Led the team. Shipped the API", original["responsibility"])
}
