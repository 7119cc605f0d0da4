package domain

import "time"

// EnrollmentRequest 是学生的报名申请，确认缴费后才会转为正式学员。
// RequestID 是对外暴露的标识，避免把自增主键泄露给前端。
type EnrollmentRequest struct {
	ID           int64     `json:"-"`
	RequestID    string    `json:"requestID"`
	GroupID      int64     `json:"groupID"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	StudentPhone string    `json:"studentPhone"`
	Paid         bool      `json:"paid"`
	CreatedAt    time.Time `json:"createdAt"`
}

type EnrolledStudent struct {
	ID           int64     `json:"-"`
	GroupID      int64     `json:"groupID"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	StudentPhone string    `json:"studentPhone"`
	EnrolledAt   time.Time `json:"enrolledAt"`
}

type StudentAction string

const (
	StudentActionEnrolled    StudentAction = "enrolled"
	StudentActionRemoved     StudentAction = "removed"
	StudentActionTransferred StudentAction = "transferred"
)

type StudentHistoryAction struct {
	Action      StudentAction `json:"action"`
	FromGroupID *int64        `json:"fromGroupID"`
	ToGroupID   *int64        `json:"toGroupID"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
}

type StudentHistory struct {
	ID           int64                  `json:"id"`
	StudentEmail string                 `json:"studentEmail"`
	Actions      []StudentHistoryAction `json:"actions"`
	CreatedAt    time.Time              `json:"createdAt"`
}
