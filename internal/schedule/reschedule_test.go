package schedule

import (
	"errors"
	"testing"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func TestPauseShiftsOnlySessionsInWindow(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "monday", Time: "18:00", SessionDate: "2024-01-08"},
		{Day: "wednesday", Time: "18:00", SessionDate: "2024-01-10"},
		{Day: "monday", Time: "18:00", SessionDate: "2024-01-15"},
	}

	// 暂停窗口为 3 天，只有 01-10 落在窗口内：01-10 + 3 天 = 01-13（周六）
	rescheduled, skipped, err := Pause(sessions, date(t, "2024-01-09"), date(t, "2024-01-12"))
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped sessions: %v", skipped)
	}
	if len(rescheduled) != len(sessions) {
		t.Fatalf("session count changed: got %d, want %d", len(rescheduled), len(sessions))
	}

	wantDates := []string{"2024-01-08", "2024-01-13", "2024-01-15"}
	wantDays := []string{"monday", "saturday", "monday"}
	for i := range rescheduled {
		if rescheduled[i].SessionDate != wantDates[i] {
			t.Errorf("session %d date = %s, want %s", i, rescheduled[i].SessionDate, wantDates[i])
		}
		if rescheduled[i].Day != wantDays[i] {
			t.Errorf("session %d day = %s, want %s", i, rescheduled[i].Day, wantDays[i])
		}
	}

	// 原切片不应被修改
	if sessions[1].SessionDate != "2024-01-10" {
		t.Error("Pause mutated its input")
	}
}

func TestPauseInclusiveBoundaries(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "tuesday", Time: "18:00", SessionDate: "2024-01-09"},
		{Day: "friday", Time: "18:00", SessionDate: "2024-01-12"},
	}

	rescheduled, _, err := Pause(sessions, date(t, "2024-01-09"), date(t, "2024-01-12"))
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}

	// 窗口两端的课程都要平移 3 天
	if rescheduled[0].SessionDate != "2024-01-12" || rescheduled[1].SessionDate != "2024-01-15" {
		t.Errorf("boundary sessions = %s, %s; want 2024-01-12, 2024-01-15", rescheduled[0].SessionDate, rescheduled[1].SessionDate)
	}
}

func TestPauseInvalidRange(t *testing.T) {
	_, _, err := Pause(nil, date(t, "2024-01-12"), date(t, "2024-01-09"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Pause error = %v, want ErrInvalidRange", err)
	}

	_, _, err = Pause(nil, date(t, "2024-01-09"), date(t, "2024-01-09"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Pause with equal dates error = %v, want ErrInvalidRange", err)
	}
}

func TestPauseSkipsMalformedDates(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "monday", Time: "18:00", SessionDate: "garbage"},
		{Day: "wednesday", Time: "18:00", SessionDate: "2024-01-10"},
	}

	rescheduled, skipped, err := Pause(sessions, date(t, "2024-01-09"), date(t, "2024-01-12"))
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}

	if len(skipped) != 1 || skipped[0].Index != 0 || skipped[0].Value != "garbage" {
		t.Fatalf("skipped = %v, want the first session reported", skipped)
	}

	for _, session := range rescheduled {
		switch session.Day {
		case "monday":
			if session.SessionDate != "garbage" {
				t.Errorf("malformed session was modified: %q", session.SessionDate)
			}
		case "saturday":
			if session.SessionDate != "2024-01-13" {
				t.Errorf("valid session date = %s, want 2024-01-13", session.SessionDate)
			}
		}
	}
}

func TestPauseAndResumeKeepUnprojectedSessions(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "monday", Time: "10:00", SessionDate: ""},
		{Day: "wednesday", Time: "10:00", SessionDate: "2024-01-10"},
	}

	// 空日期表示尚未投影，不是坏数据：既不平移也不计入 skipped
	paused, skipped, err := Pause(sessions, date(t, "2024-01-09"), date(t, "2024-01-11"))
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unprojected session was reported as skipped: %v", skipped)
	}
	if paused[0].SessionDate != "" || paused[0].Day != "monday" {
		t.Errorf("unprojected session was modified: %+v", paused[0])
	}
	if paused[1].SessionDate != "2024-01-12" {
		t.Errorf("projected session date = %s, want 2024-01-12", paused[1].SessionDate)
	}

	resumed, skipped := Resume(sessions, date(t, "2024-01-10"))
	if len(skipped) != 0 {
		t.Fatalf("unprojected session was reported as skipped: %v", skipped)
	}
	if resumed[0].SessionDate != "" || resumed[0].Day != "monday" {
		t.Errorf("unprojected session was modified: %+v", resumed[0])
	}
}

func TestResumeReanchorsByWeekday(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "monday", Time: "18:00", SessionDate: "2024-01-08"},
		{Day: "friday", Time: "18:00", SessionDate: "2024-01-12"},
		{Day: "monday", Time: "18:00", SessionDate: "2024-01-22"},
	}

	// 2024-01-10 是周三：01-08 在恢复日之前不动；
	// 周五的课锚定到 01-12（本周五）；远处的周一课被拉回到 01-15
	rescheduled, skipped := Resume(sessions, date(t, "2024-01-10"))
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped sessions: %v", skipped)
	}

	wantDates := []string{"2024-01-08", "2024-01-12", "2024-01-15"}
	for i := range rescheduled {
		if rescheduled[i].SessionDate != wantDates[i] {
			t.Errorf("session %d date = %s, want %s", i, rescheduled[i].SessionDate, wantDates[i])
		}
	}
}

func TestPauseThenResumeIsNotIdentity(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "monday", Time: "18:00", SessionDate: "2024-01-08"},
		{Day: "thursday", Time: "18:00", SessionDate: "2024-01-11"},
	}

	paused, _, err := Pause(sessions, date(t, "2024-01-08"), date(t, "2024-01-11"))
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}

	// 平移 3 天：01-08 → 01-11（周四）、01-11 → 01-14（周日）
	resumed, _ := Resume(paused, date(t, "2024-01-11"))

	// 恢复按各自当前的星期重新锚定：周四课回到 01-11，周日课落到 01-14。
	// 两套算法刻意不对称，课程不会回到暂停前的日期
	wantDates := []string{"2024-01-11", "2024-01-14"}
	wantDays := []string{"thursday", "sunday"}
	for i := range resumed {
		if resumed[i].SessionDate != wantDates[i] {
			t.Errorf("session %d date = %s, want %s", i, resumed[i].SessionDate, wantDates[i])
		}
		if resumed[i].Day != wantDays[i] {
			t.Errorf("session %d day = %s, want %s", i, resumed[i].Day, wantDays[i])
		}
		if resumed[i].SessionDate == sessions[i].SessionDate {
			t.Errorf("session %d returned to its pre-pause date", i)
		}
	}
}

func TestResumePreservesCountAndWeekdayInvariant(t *testing.T) {
	sessions := []domain.GroupSession{
		{Day: "sunday", Time: "09:00", SessionDate: "2024-02-04"},
		{Day: "tuesday", Time: "09:00", SessionDate: "2024-02-06"},
		{Day: "saturday", Time: "09:00", SessionDate: "2024-02-10"},
	}

	rescheduled, _ := Resume(sessions, date(t, "2024-02-07"))
	if len(rescheduled) != len(sessions) {
		t.Fatalf("session count changed: got %d, want %d", len(rescheduled), len(sessions))
	}

	for i, session := range rescheduled {
		parsed, err := ParseDate(session.SessionDate)
		if err != nil {
			t.Fatalf("session %d has unparsable date %q", i, session.SessionDate)
		}
		if WeekdayName(parsed.Weekday()) != session.Day {
			t.Errorf("session %d: date %s is a %s, stored day is %s", i, session.SessionDate, WeekdayName(parsed.Weekday()), session.Day)
		}
	}
}
