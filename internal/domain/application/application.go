package application

import (
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

type Status string

// The status set is closed but unordered: any status may follow any other.
// StatusApplied is the initial status for every creation path.
const (
	StatusPending  Status = "pending"
	StatusApplied  Status = "applied"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func NormalizeStatus(status Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(status))))
}

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusApplied, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// FormData is the snapshot a student submits with an application. Resume holds
// the blob-store handle, empty when no file was uploaded.
type FormData struct {
	Name       string   `json:"name,omitempty"`
	SRN        string   `json:"srn,omitempty"`
	College    string   `json:"college,omitempty"`
	Class10    string   `json:"class10,omitempty"`
	Class12    string   `json:"class12,omitempty"`
	Degree     string   `json:"degree,omitempty"`
	DegreeCGPA string   `json:"degree_cgpa,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Projects   string   `json:"projects,omitempty"`
	Resume     string   `json:"resume,omitempty"`
}

// Application denormalizes EmployerID from the job at creation time so
// ownership checks need no join.
type Application struct {
	ID         common.UUID `json:"id"`
	StudentID  common.UUID `json:"student_id"`
	EmployerID common.UUID `json:"employer_id"`
	JobID      common.UUID `json:"job_id"`
	Form       FormData    `json:"form_data"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type JobSummary struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	Description string `json:"description"`
}

type StudentSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EmployerSummary struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
}

// Details is an application expanded with summaries of the referenced records.
type Details struct {
	Application
	Job      *JobSummary      `json:"job,omitempty"`
	Student  *StudentSummary  `json:"student,omitempty"`
	Employer *EmployerSummary `json:"employer,omitempty"`
}
