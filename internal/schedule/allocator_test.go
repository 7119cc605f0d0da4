package schedule

import (
	"errors"
	"testing"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func mondayAvailability(intervals ...domain.TimeInterval) domain.WeeklyAvailability {
	wa := make(domain.WeeklyAvailability)
	for _, name := range weekdayNames {
		wa[name] = domain.DaySchedule{Selected: false, Intervals: []domain.TimeInterval{}}
	}
	wa["monday"] = domain.DaySchedule{Selected: true, Intervals: intervals}
	return wa
}

func TestAssignLocksCoveringInterval(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "09:00", EndTime: "11:00"})

	updated, locked, err := Assign(availability, []domain.SessionSlot{{Day: "monday", Time: "09:00"}}, 1)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	if len(locked) != 1 {
		t.Fatalf("got %d locked sessions, want 1", len(locked))
	}
	want := domain.LockedSession{Day: "monday", StartTime: "09:00", EndTime: "10:00"}
	if locked[0] != want {
		t.Errorf("locked = %+v, want %+v", locked[0], want)
	}

	if len(updated["monday"].Intervals) != 0 {
		t.Errorf("covering interval was not removed: %+v", updated["monday"].Intervals)
	}

	// 传入的空闲时间不能被修改，更新只体现在返回值上
	if len(availability["monday"].Intervals) != 1 {
		t.Error("Assign mutated its input availability")
	}
}

func TestAssignRejectsIntervalTooShort(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "09:00", EndTime: "11:00"})

	// 3 小时的课程需要覆盖到 12:00，09:00-11:00 的时间段不够长
	_, _, err := Assign(availability, []domain.SessionSlot{{Day: "monday", Time: "09:00"}}, 3)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Assign error = %v, want *ConflictError", err)
	}
	if conflict.Day != "monday" || conflict.Time != "09:00" || conflict.Duration != 3 {
		t.Errorf("conflict = %+v", conflict)
	}

	if len(availability["monday"].Intervals) != 1 {
		t.Error("availability was mutated on conflict")
	}
}

func TestAssignAllOrNothing(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "09:00", EndTime: "11:00"})

	slots := []domain.SessionSlot{
		{Day: "monday", Time: "09:00"},
		{Day: "tuesday", Time: "09:00"}, // 周二没有空闲时间段
	}

	updated, locked, err := Assign(availability, slots, 1)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Assign error = %v, want *ConflictError", err)
	}
	if conflict.Day != "tuesday" {
		t.Errorf("conflict day = %s, want tuesday", conflict.Day)
	}
	if updated != nil || locked != nil {
		t.Error("Assign returned partial results on conflict")
	}

	// 第一节课虽然本可以分配成功，冲突后周一的时间段必须原样保留
	if len(availability["monday"].Intervals) != 1 {
		t.Error("availability was mutated despite the batch failing")
	}
}

func TestAssignConsumesIntervalsSequentially(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "09:00", EndTime: "11:00"})

	slots := []domain.SessionSlot{
		{Day: "monday", Time: "09:00"},
		{Day: "monday", Time: "09:00"},
	}

	// 第一节课消耗掉唯一的时间段后，第二节课必须冲突
	_, _, err := Assign(availability, slots, 1)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Assign error = %v, want *ConflictError", err)
	}
}

func TestAssignRemovesEveryIntervalStartingInWindow(t *testing.T) {
	availability := mondayAvailability(
		domain.TimeInterval{StartTime: "09:00", EndTime: "12:00"},
		domain.TimeInterval{StartTime: "10:00", EndTime: "10:30"},
		domain.TimeInterval{StartTime: "14:00", EndTime: "16:00"},
	)

	updated, _, err := Assign(availability, []domain.SessionSlot{{Day: "monday", Time: "09:00"}}, 2)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	// 起点落在 [09:00, 11:00) 内的两个时间段都被消耗，14:00 的保留
	remaining := updated["monday"].Intervals
	if len(remaining) != 1 || remaining[0].StartTime != "14:00" {
		t.Errorf("remaining intervals = %+v, want only 14:00-16:00", remaining)
	}
}

func TestAssignUnselectedDayConflicts(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "09:00", EndTime: "11:00"})

	_, _, err := Assign(availability, []domain.SessionSlot{{Day: "sunday", Time: "09:00"}}, 1)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Assign error = %v, want *ConflictError", err)
	}
	if conflict.Day != "sunday" {
		t.Errorf("conflict day = %s, want sunday", conflict.Day)
	}
}

func TestAssignInvalidWeekday(t *testing.T) {
	availability := mondayAvailability()

	_, _, err := Assign(availability, []domain.SessionSlot{{Day: "workday", Time: "09:00"}}, 1)
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("Assign error = %v, want ErrInvalidWeekday", err)
	}
}

func TestAssignFractionalDuration(t *testing.T) {
	availability := mondayAvailability(domain.TimeInterval{StartTime: "18:00", EndTime: "19:30"})

	_, locked, err := Assign(availability, []domain.SessionSlot{{Day: "monday", Time: "18:00"}}, 1.5)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if locked[0].EndTime != "19:30" {
		t.Errorf("locked end = %s, want 19:30", locked[0].EndTime)
	}
}
