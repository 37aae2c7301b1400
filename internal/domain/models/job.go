// internal/domain/models/job.go
package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enumerated field values for Job. Writes that fall outside these sets are
// rejected at the store boundary before anything reaches Mongo.
var (
	Industries = []string{
		"Business",
		"Information Technology",
		"Banking",
		"Education/Training",
		"Telecommunication",
		"Others",
	}

	JobTypes = []string{"Permanent", "Temporary", "Internship"}

	EducationLevels = []string{"Bachelors", "Masters", "PhD"}

	ExperienceLevels = []string{"No Experience", "1-2 Years", "2-5 Years", "5+ Years"}
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 1000

	// DefaultListingDays is how long a posting stays open when no
	// explicit last date is given.
	DefaultListingDays = 7
)

// Location is a GeoJSON point plus the structured address the geocoder
// resolved it from. Coordinates are [longitude, latitude] per GeoJSON.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formatted_address,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Application is an opaque record of one submitted application. Excluded
// from default read projections.
type Application struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Resume    string             `bson:"resume,omitempty" json:"resume,omitempty"`
	AppliedAt time.Time          `bson:"applied_at" json:"appliedAt"`
}

// Job is a single posting. Slug is derived from Title on every write that
// changes the title; Location is derived from Address via the geocoder and
// is never empty on a persisted document.
type Job struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Slug                string             `bson:"slug" json:"slug"`
	Description         string             `bson:"description" json:"description"`
	Email               string             `bson:"email,omitempty" json:"email,omitempty"`
	Address             string             `bson:"address" json:"address"`
	Company             string             `bson:"company" json:"company"`
	Location            *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Industry            []string           `bson:"industry" json:"industry"`
	JobType             string             `bson:"job_type" json:"jobType"`
	MinEducation        string             `bson:"min_education" json:"minEducation"`
	Experience          string             `bson:"experience" json:"experience"`
	Positions           int                `bson:"positions" json:"positions"`
	Salary              float64            `bson:"salary" json:"salary"`
	PostingDate         time.Time          `bson:"posting_date" json:"postingDate"`
	LastDate            time.Time          `bson:"last_date" json:"lastDate"`
	ApplicationsApplied []Application      `bson:"applications_applied,omitempty" json:"applicationsApplied,omitempty"`
	PostedBy            primitive.ObjectID `bson:"posted_by,omitempty" json:"postedBy,omitempty"`
}

// Validate checks required fields, length limits, and enum membership.
// It returns the first failing field's message, matching the error
// contract for validation failures.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return fmt.Errorf("please enter a job title")
	}
	if len(j.Title) > MaxTitleLen {
		return fmt.Errorf("job title cannot exceed %d characters", MaxTitleLen)
	}
	if strings.TrimSpace(j.Description) == "" {
		return fmt.Errorf("please enter a job description")
	}
	if len(j.Description) > MaxDescriptionLen {
		return fmt.Errorf("job description cannot exceed %d characters", MaxDescriptionLen)
	}
	if j.Email != "" {
		if _, err := mail.ParseAddress(j.Email); err != nil {
			return fmt.Errorf("please enter a valid email address")
		}
	}
	if strings.TrimSpace(j.Address) == "" {
		return fmt.Errorf("please enter a job address")
	}
	if strings.TrimSpace(j.Company) == "" {
		return fmt.Errorf("please enter a company name")
	}
	if len(j.Industry) == 0 {
		return fmt.Errorf("please select at least one industry")
	}
	for _, ind := range j.Industry {
		if !oneOf(ind, Industries) {
			return fmt.Errorf("please select a valid industry")
		}
	}
	if !oneOf(j.JobType, JobTypes) {
		return fmt.Errorf("please select a valid job type")
	}
	if !oneOf(j.MinEducation, EducationLevels) {
		return fmt.Errorf("please select a valid education level")
	}
	if !oneOf(j.Experience, ExperienceLevels) {
		return fmt.Errorf("please select a valid experience level")
	}
	if j.Positions < 1 {
		return fmt.Errorf("positions must be at least 1")
	}
	if j.Salary <= 0 {
		return fmt.Errorf("please enter a salary amount")
	}
	return nil
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}
