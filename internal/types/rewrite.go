//nolint:revive // types is a standard Go package name pattern
package types

// RewrittenWorkExperience is a WorkExperience whose responsibility text was rewritten for the target job
type RewrittenWorkExperience struct {
	Company           string `json:"company"`
	Position          string `json:"position"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	NewResponsibility string `json:"new_responsibility"`
}

// RewrittenWorkHistory wraps the rewritten top entry (wrapper for schema, always one element)
type RewrittenWorkHistory struct {
	WorkExperience []RewrittenWorkExperience `json:"work_experience"`
}
