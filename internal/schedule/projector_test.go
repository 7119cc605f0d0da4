package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestProjectNearestOccurrence(t *testing.T) {
	// 2024-01-06 是周六，周一的朴素候选是 2024-01-08；
	// 投影当天为 2024-01-06 时，01-08 比 01-01 和 01-15 都更近
	sessions, err := Project(date(t, "2024-01-06"), 1, []domain.SessionSlot{{Day: "monday", Time: "18:00"}}, date(t, "2024-01-06"))
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].SessionDate != "2024-01-08" {
		t.Errorf("projected date = %s, want 2024-01-08", sessions[0].SessionDate)
	}
	if sessions[0].Day != "monday" {
		t.Errorf("projected day = %s, want monday", sessions[0].Day)
	}
	if sessions[0].Feedback != domain.FeedbackUpcoming {
		t.Errorf("feedback = %s, want upcoming", sessions[0].Feedback)
	}
}

func TestProjectBackfillsPastStart(t *testing.T) {
	// 开始日期在录入日期之前时，投影要回填已经上过的课程并标记为 done
	sessions, err := Project(date(t, "2024-01-01"), 3, []domain.SessionSlot{{Day: "monday", Time: "10:00"}}, date(t, "2024-01-02"))
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	wantDates := []string{"2024-01-01", "2024-01-08", "2024-01-15"}
	wantFeedback := []domain.Feedback{domain.FeedbackDone, domain.FeedbackUpcoming, domain.FeedbackUpcoming}

	for i, session := range sessions {
		if session.SessionDate != wantDates[i] {
			t.Errorf("session %d date = %s, want %s", i, session.SessionDate, wantDates[i])
		}
		if session.Feedback != wantFeedback[i] {
			t.Errorf("session %d feedback = %s, want %s", i, session.Feedback, wantFeedback[i])
		}
	}
}

func TestProjectCountAndOrdering(t *testing.T) {
	slots := []domain.SessionSlot{
		{Day: "saturday", Time: "18:00"},
		{Day: "tuesday", Time: "16:00"},
		{Day: "thursday", Time: "20:00"},
	}

	sessions, err := Project(date(t, "2024-03-02"), 4, slots, date(t, "2024-03-02"))
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if len(sessions) != 4*len(slots) {
		t.Fatalf("got %d sessions, want %d", len(sessions), 4*len(slots))
	}

	for i := 1; i < len(sessions); i++ {
		if sessions[i].SessionDate < sessions[i-1].SessionDate {
			t.Fatalf("sessions out of order at %d: %s after %s", i, sessions[i].SessionDate, sessions[i-1].SessionDate)
		}
	}

	// 每次课程的日历日期所在的星期必须和存储的星期一致
	for i, session := range sessions {
		parsed, err := ParseDate(session.SessionDate)
		if err != nil {
			t.Fatalf("session %d has unparsable date %q", i, session.SessionDate)
		}
		if WeekdayName(parsed.Weekday()) != session.Day {
			t.Errorf("session %d: date %s is a %s, stored day is %s", i, session.SessionDate, WeekdayName(parsed.Weekday()), session.Day)
		}
	}
}

func TestProjectSlotOnStartWeekday(t *testing.T) {
	// 模式的星期和开始日期同一天且就是投影当天时，应该落在当天
	sessions, err := Project(date(t, "2024-01-08"), 1, []domain.SessionSlot{{Day: "monday", Time: "18:00"}}, date(t, "2024-01-08"))
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if sessions[0].SessionDate != "2024-01-08" {
		t.Errorf("projected date = %s, want 2024-01-08", sessions[0].SessionDate)
	}
}

func TestProjectTodayIsUpcomingInWesternTimezone(t *testing.T) {
	// now 带着西五区的本地时间时，当天（2024-01-08）的课程必须还是 upcoming；
	// 直接用 time.Time 比较会把本地零点换算成 UTC 的 05:00，从而误标为 done
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	sessions, err := Project(date(t, "2024-01-06"), 1, []domain.SessionSlot{{Day: "monday", Time: "18:00"}}, now)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if sessions[0].SessionDate != "2024-01-08" {
		t.Fatalf("projected date = %s, want 2024-01-08", sessions[0].SessionDate)
	}
	if sessions[0].Feedback != domain.FeedbackUpcoming {
		t.Errorf("feedback = %s, want upcoming", sessions[0].Feedback)
	}
}

func TestNearestOccurrenceTieFavorsLater(t *testing.T) {
	// 三个候选日两两相隔七天，today 取正中间再加半天时，
	// 整数天数截断会让前后两个候选距离相同，这时要取较晚的那个
	candidate := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	got := nearestOccurrence(candidate, today)
	if FormatDate(got) != "2024-01-11" {
		t.Errorf("nearestOccurrence = %s, want 2024-01-11", FormatDate(got))
	}
}

func TestProjectInvalidWeekday(t *testing.T) {
	_, err := Project(date(t, "2024-01-06"), 1, []domain.SessionSlot{{Day: "moonday", Time: "18:00"}}, date(t, "2024-01-06"))
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("Project error = %v, want ErrInvalidWeekday", err)
	}
}
