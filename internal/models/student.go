package models

// StudentProfile holds the descriptive fields shared by every student view.
type StudentProfile struct {
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	LinkedinURL string   `json:"linkedinUrl,omitempty"`
	Languages   []string `json:"languages"`
	Program     string   `json:"program,omitempty"`
	Background  string   `json:"background,omitempty"`
	Image       string   `json:"image,omitempty"`
	Projects    []string `json:"projects"`
}

// Student is a stored student whose cohort is referenced by identifier.
type Student struct {
	ID string `json:"_id"`
	StudentProfile
	CohortID *string `json:"cohort"`
}

// StudentDetail is a student with its cohort reference resolved. Cohort is
// nil when the student has no cohort or the reference dangles.
type StudentDetail struct {
	ID string `json:"_id"`
	StudentProfile
	Cohort *Cohort `json:"cohort"`
}

// StudentPatch carries the fields present in an update payload. A CohortID
// pointing at an empty string clears the reference.
type StudentPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	LinkedinURL *string
	Languages   *[]string
	Program     *string
	Background  *string
	Image       *string
	Projects    *[]string
	CohortID    *string
}

// Empty reports whether the patch changes nothing.
func (p StudentPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.LinkedinURL == nil && p.Languages == nil && p.Program == nil && p.Background == nil &&
		p.Image == nil && p.Projects == nil && p.CohortID == nil
}

// Apply merges the patch into s.
func (p StudentPatch) Apply(s *Student) {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.LinkedinURL != nil {
		s.LinkedinURL = *p.LinkedinURL
	}
	if p.Languages != nil {
		s.Languages = *p.Languages
	}
	if p.Program != nil {
		s.Program = *p.Program
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
	if p.Projects != nil {
		s.Projects = *p.Projects
	}
	if p.CohortID != nil {
		if *p.CohortID == "" {
			s.CohortID = nil
		} else {
			id := *p.CohortID
			s.CohortID = &id
		}
	}
}

// Normalize replaces nil lists with empty ones so they render as arrays.
func (p *StudentProfile) Normalize() {
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.Projects == nil {
		p.Projects = []string{}
	}
}
