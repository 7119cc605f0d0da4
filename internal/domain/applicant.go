package domain

import "time"

type ApplicantStatus string

const (
	ApplicantStatusPending  ApplicantStatus = "Pending"
	ApplicantStatusAccepted ApplicantStatus = "Accepted"
	ApplicantStatusRejected ApplicantStatus = "Rejected"
)

type Applicant struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	CVURL         string          `json:"cv"`
	Status        ApplicantStatus `json:"status"`
	InterviewDate *time.Time      `json:"interviewDate"`
	Feedback      string          `json:"feedback"`
	MeetingLink   string          `json:"meetingLink"`
	Interviewer   string          `json:"interviewer"`
	CreatedAt     time.Time       `json:"createdAt"`
	Version       int32           `json:"-"`
}
