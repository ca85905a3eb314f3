package models

import "time"

// Cohort represents one training cohort.
type Cohort struct {
	ID             string     `json:"_id"`
	CohortSlug     string     `json:"cohortSlug,omitempty"`
	CohortName     string     `json:"cohortName,omitempty"`
	Program        string     `json:"program,omitempty"`
	Format         string     `json:"format,omitempty"`
	Campus         string     `json:"campus,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	InProgress     *bool      `json:"inProgress,omitempty"`
	ProgramManager string     `json:"programManager,omitempty"`
	LeadTeacher    string     `json:"leadTeacher,omitempty"`
	TotalHours     *float64   `json:"totalHours,omitempty"`
}

// CohortPatch carries the fields present in an update payload. Nil fields are
// left untouched.
type CohortPatch struct {
	CohortSlug     *string
	CohortName     *string
	Program        *string
	Format         *string
	Campus         *string
	StartDate      *time.Time
	EndDate        *time.Time
	InProgress     *bool
	ProgramManager *string
	LeadTeacher    *string
	TotalHours     *float64

	// Clear flags remove the optional non-text fields.
	ClearStartDate  bool
	ClearEndDate    bool
	ClearInProgress bool
	ClearTotalHours bool
}

// Empty reports whether the patch changes nothing.
func (p CohortPatch) Empty() bool {
	return p.CohortSlug == nil && p.CohortName == nil && p.Program == nil && p.Format == nil &&
		p.Campus == nil && p.StartDate == nil && p.EndDate == nil && p.InProgress == nil &&
		p.ProgramManager == nil && p.LeadTeacher == nil && p.TotalHours == nil &&
		!p.ClearStartDate && !p.ClearEndDate && !p.ClearInProgress && !p.ClearTotalHours
}

// Apply merges the patch into c.
func (p CohortPatch) Apply(c *Cohort) {
	if p.CohortSlug != nil {
		c.CohortSlug = *p.CohortSlug
	}
	if p.CohortName != nil {
		c.CohortName = *p.CohortName
	}
	if p.Program != nil {
		c.Program = *p.Program
	}
	if p.Format != nil {
		c.Format = *p.Format
	}
	if p.Campus != nil {
		c.Campus = *p.Campus
	}
	if p.StartDate != nil {
		c.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = p.EndDate
	}
	if p.InProgress != nil {
		c.InProgress = p.InProgress
	}
	if p.ProgramManager != nil {
		c.ProgramManager = *p.ProgramManager
	}
	if p.LeadTeacher != nil {
		c.LeadTeacher = *p.LeadTeacher
	}
	if p.TotalHours != nil {
		c.TotalHours = p.TotalHours
	}
	if p.ClearStartDate {
		c.StartDate = nil
	}
	if p.ClearEndDate {
		c.EndDate = nil
	}
	if p.ClearInProgress {
		c.InProgress = nil
	}
	if p.ClearTotalHours {
		c.TotalHours = nil
	}
}
