//nolint:revive // types is a standard Go package name pattern
package types

// ResponsibilityItem is one sentence-like segment of an original responsibility text
type ResponsibilityItem struct {
	Responsibility string `json:"responsibility"`
}

// NewResponsibilityItem is one sentence-like segment of a rewritten responsibility text
type NewResponsibilityItem struct {
	NewResponsibility string `json:"new_responsibility"`
}

// ProcessedWorkExperience is a work entry whose responsibility text has been split into segments.
// The rewritten top entry carries NewResponsibility; every other entry carries Responsibility.
type ProcessedWorkExperience struct {
	Company           string                  `json:"company"`
	Position          string                  `json:"position"`
	StartDate         string                  `json:"start_date"`
	EndDate           string                  `json:"end_date"`
	NewResponsibility []NewResponsibilityItem `json:"new_responsibility,omitempty"`
	Responsibility    []ResponsibilityItem    `json:"responsibility,omitempty"`
}

// FinalPayload is the merged response returned to the caller
type FinalPayload struct {
	PersonalInformation     *PersonalInformation      `json:"personal_information"`
	Education               []Education               `json:"education"`
	Objective               string                    `json:"objective"`
	ProcessedWorkExperience []ProcessedWorkExperience `json:"processed_work_experience"`
	Skills                  []Skill                   `json:"skills"`
	Certifications          []Certification           `json:"certifications"`
	WorkExperience          []WorkExperience          `json:"work_experience"`
}
