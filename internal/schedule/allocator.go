package schedule

import (
	"math"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// Assign 把一个训练组的全部课程分配到教练的周空闲时间上。
//
// 对每次课程，在对应星期里查找起点落在课程窗口 [start, start+duration) 内、
// 且结束时间不早于课程结束的空闲时间段；找到后把起点落在窗口内的时间段
// 全部从该天移除，并记录课程锁定的时间窗口。
//
// 任何一次课程找不到可用时间段时整批失败，返回 *ConflictError，
// 此时传入的空闲时间不会有任何改动：所有查找和删除都在深拷贝上进行，
// 全部课程成功后才把副本作为结果返回（整批要么全部锁定要么全不锁定）。
func Assign(availability domain.WeeklyAvailability, slots []domain.SessionSlot, durationHours float64) (domain.WeeklyAvailability, []domain.LockedSession, error) {
	working := availability.Clone()
	locked := make([]domain.LockedSession, 0, len(slots))

	durationMinutes := int(math.Round(durationHours * 60))

	for _, slot := range slots {
		dayIndex, err := WeekdayIndex(slot.Day)
		if err != nil {
			return nil, nil, err
		}
		day := weekdayNames[dayIndex]

		sessionStart, err := ParseClock(slot.Time)
		if err != nil {
			return nil, nil, err
		}
		sessionEnd := sessionStart + durationMinutes

		daySchedule, ok := working[day]
		if !ok || !daySchedule.Selected {
			return nil, nil, &ConflictError{Day: day, Time: FormatClock(sessionStart), Duration: durationHours}
		}

		remaining := make([]domain.TimeInterval, 0, len(daySchedule.Intervals))
		covered := false

		for _, interval := range daySchedule.Intervals {
			intervalStart, err := ParseClock(interval.StartTime)
			if err != nil {
				remaining = append(remaining, interval)
				continue
			}

			// 起点不在课程窗口内的时间段不参与本次分配
			if intervalStart < sessionStart || intervalStart >= sessionEnd {
				remaining = append(remaining, interval)
				continue
			}

			// 起点在窗口内的时间段都会被本次课程消耗掉；
			// 其中必须至少有一个能覆盖到课程结束，否则视为冲突
			if intervalEnd, err := ParseClock(interval.EndTime); err == nil && intervalEnd >= sessionEnd {
				covered = true
			}
		}

		if !covered {
			return nil, nil, &ConflictError{Day: day, Time: FormatClock(sessionStart), Duration: durationHours}
		}

		daySchedule.Intervals = remaining
		working[day] = daySchedule

		locked = append(locked, domain.LockedSession{
			Day:       day,
			StartTime: FormatClock(sessionStart),
			EndTime:   FormatClock(sessionEnd),
		})
	}

	return working, locked, nil
}
