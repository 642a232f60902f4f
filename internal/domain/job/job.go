package job

import (
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Job struct {
	ID          common.UUID `json:"id"`
	EmployerID  common.UUID `json:"employer_id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Salary      string      `json:"salary,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
