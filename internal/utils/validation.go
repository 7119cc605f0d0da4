package utils

import (
	"fmt"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/schedule"
)

// ValidateWeeklyAvailability 检查周空闲时间的结构是否合法：
// 星期名称可识别、时间为 HH:MM 的 24 小时制、每个时间段的结束晚于开始。
// 时间段之间是否重叠不在这里检查，分配器会把重叠的时间段各自独立处理。
func ValidateWeeklyAvailability(wa domain.WeeklyAvailability) error {
	for day, ds := range wa {
		if _, err := schedule.WeekdayIndex(day); err != nil {
			return err
		}

		for i, interval := range ds.Intervals {
			start, err := schedule.ParseClock(interval.StartTime)
			if err != nil {
				return fmt.Errorf("%s 的第 %d 个时间段开始时间格式错误", day, i+1)
			}
			end, err := schedule.ParseClock(interval.EndTime)
			if err != nil {
				return fmt.Errorf("%s 的第 %d 个时间段结束时间格式错误", day, i+1)
			}
			if start >= end {
				return fmt.Errorf("%s 的第 %d 个时间段结束时间必须晚于开始时间", day, i+1)
			}
		}
	}

	return nil
}

// ValidateSessionSlots 检查每周循环课程模式的星期和时间格式。
func ValidateSessionSlots(slots []domain.SessionSlot) error {
	for i, slot := range slots {
		if _, err := schedule.WeekdayIndex(slot.Day); err != nil {
			return fmt.Errorf("第 %d 个课程的星期无效: %w", i+1, err)
		}
		if _, err := schedule.ParseClock(slot.Time); err != nil {
			return fmt.Errorf("第 %d 个课程的时间格式错误", i+1)
		}
	}

	return nil
}

// ValidateCategory 检查业务方向是否在固定的取值之内。
func ValidateCategory(category domain.Category) error {
	for _, c := range domain.Categories {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("无效的业务方向 %q", category)
}
