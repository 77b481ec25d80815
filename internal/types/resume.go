// Package types provides type definitions for structured data used throughout the resume-rewriter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInformation represents the contact block extracted from a resume
type PersonalInformation struct {
	FullName        string `json:"full_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	LinkedIn        string `json:"linkedin,omitempty"`
	PersonalWebsite string `json:"personal_website,omitempty"`
}

// Education represents one education entry (degrees only, not certificates)
type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// Profile is the first extraction result: contact info, education and a generated objective
type Profile struct {
	PersonalInformation *PersonalInformation `json:"personal_information"`
	Education           []Education          `json:"education"`
	Objective           string               `json:"objective"`
}

// WorkExperience represents one employment record as extracted from the resume
type WorkExperience struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Responsibility string `json:"responsibility"`
}

// WorkHistory represents the ordered work experience list, most recent first (wrapper for schema)
type WorkHistory struct {
	WorkExperience []WorkExperience `json:"work_experience"`
}

// Top returns the most recent entry, or false when the history is empty.
func (w *WorkHistory) Top() (WorkExperience, bool) {
	if w == nil || len(w.WorkExperience) == 0 {
		return WorkExperience{}, false
	}
	return w.WorkExperience[0], true
}

// Skill represents a skill or tool with its level
type Skill struct {
	Name              string `json:"name"`
	ProficiencyLevel  string `json:"proficiency_level"`
	YearsOfExperience string `json:"years_of_experience"`
}

// Certification represents a professional certification
type Certification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpiryDate          string `json:"expiry_date"`
}

// SkillsCerts is the third extraction result. JobDescriptionSkills are sourced from the job
// description rather than the resume.
type SkillsCerts struct {
	Skills               []Skill         `json:"skills"`
	Certifications       []Certification `json:"certifications"`
	JobDescriptionSkills []Skill         `json:"job_description_skills"`
}
