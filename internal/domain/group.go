package domain

import "time"

type Feedback string

const (
	FeedbackUpcoming  Feedback = "upcoming"
	FeedbackDone      Feedback = "done"
	FeedbackCancelled Feedback = "cancelled"
	FeedbackPostponed Feedback = "postponed"
)

// SessionSlot 是还没有绑定到具体日期的每周循环模式（星期 + 时间）。
type SessionSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// GroupSession 是训练组的一次具体课程。
// SessionDate 以 2006-01-02 格式的字符串存储，空字符串表示尚未投影到日历上；
// 历史数据中存在格式损坏的日期，改期操作会跳过这些课程而不是整体失败。
type GroupSession struct {
	ID             int64    `json:"id"`
	Day            string   `json:"day"`
	Time           string   `json:"time"`
	SessionDate    string   `json:"sessionDate"`
	Feedback       Feedback `json:"feedback"`
	CustomFeedback string   `json:"customFeedback"`
}

// LockedSession 记录分配教练时一次每周课程在教练空闲时间中锁定的时间窗口，
// 随分配事务一起落库，作为后续结算和排课审计的依据。
type LockedSession struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Group struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Level         int32          `json:"level"`
	StartDate     time.Time      `json:"startDate"`
	NumberOfWeeks int32          `json:"numberOfWeeks"`
	Category      Category       `json:"category"`
	Seats         int32          `json:"seats"`
	CoachID       *int64         `json:"coachID"`
	Sessions      []GroupSession `json:"sessions"`
	IsFinished    bool           `json:"isFinished"`
	Paused        bool           `json:"paused"`
	PausedDate    *time.Time     `json:"pausedDate"`
	PauseEndDate  *time.Time     `json:"pauseEndDate"`
	ResumeDate    *time.Time     `json:"resumeDate"`
	CreatedAt     time.Time      `json:"createdAt"`
	Version       int32          `json:"-"`
}

// SessionView 是日程查询的扁平化结果，组的元信息和单次课程的信息合并在一起。
type SessionView struct {
	GroupID        int64    `json:"groupID"`
	GroupName      string   `json:"groupName"`
	Category       Category `json:"category"`
	Level          int32    `json:"level"`
	Seats          int32    `json:"seats"`
	Day            string   `json:"day"`
	Time           string   `json:"time"`
	Feedback       Feedback `json:"feedback"`
	CustomFeedback string   `json:"customFeedback"`
}
