package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// Pause 把落在 [pauseStart, pauseEnd]（含边界）内的课程整体向后平移，
// 平移量为暂停窗口的天数（不足一天按一天计），窗口之外的课程保持不变。
// 日期无法解析的课程会被跳过并记录在返回的第二个值中，不会导致整体失败；
// 日期为空（尚未投影）的课程原样保留，不算坏数据。
// 暂停和恢复是两套刻意不同的算法：暂停按固定偏移平移，恢复按星期重新锚定。
func Pause(sessions []domain.GroupSession, pauseStart, pauseEnd time.Time) ([]domain.GroupSession, []DateParseError, error) {
	if !pauseStart.Before(pauseEnd) {
		return nil, nil, ErrInvalidRange
	}

	windowStart := truncateToDate(pauseStart)
	windowEnd := truncateToDate(pauseEnd)
	shiftDays := int(math.Ceil(pauseEnd.Sub(pauseStart).Hours() / 24))

	rescheduled := make([]domain.GroupSession, len(sessions))
	copy(rescheduled, sessions)

	var skipped []DateParseError

	for i := range rescheduled {
		// 空日期表示课程尚未投影到日历上，是正常状态而不是坏数据，
		// 原样保留且不计入 skipped
		if rescheduled[i].SessionDate == "" {
			continue
		}

		date, err := ParseDate(rescheduled[i].SessionDate)
		if err != nil {
			skipped = append(skipped, DateParseError{Index: i, Value: rescheduled[i].SessionDate})
			continue
		}

		if date.Before(windowStart) || date.After(windowEnd) {
			continue
		}

		shifted := date.AddDate(0, 0, shiftDays)
		rescheduled[i].SessionDate = FormatDate(shifted)
		rescheduled[i].Day = WeekdayName(shifted.Weekday())
	}

	sortByDate(rescheduled)

	return rescheduled, skipped, nil
}

// Resume 把日期在 resumeDate 当天或之后的课程重新锚定到 resumeDate 起
// 各自星期的下一次出现上。锚定依据是课程当前存储的星期，不是固定的偏移量。
// 日期无法解析的课程同样跳过并记录。
func Resume(sessions []domain.GroupSession, resumeDate time.Time) ([]domain.GroupSession, []DateParseError) {
	anchor := truncateToDate(resumeDate)

	rescheduled := make([]domain.GroupSession, len(sessions))
	copy(rescheduled, sessions)

	var skipped []DateParseError

	for i := range rescheduled {
		// 空日期同样是尚未投影的正常状态，跳过且不计入 skipped
		if rescheduled[i].SessionDate == "" {
			continue
		}

		date, err := ParseDate(rescheduled[i].SessionDate)
		if err != nil {
			skipped = append(skipped, DateParseError{Index: i, Value: rescheduled[i].SessionDate})
			continue
		}

		if date.Before(anchor) {
			continue
		}

		targetIndex, err := WeekdayIndex(rescheduled[i].Day)
		if err != nil {
			// 星期名称是由本包规范化后写入的，坏数据只可能来自外部篡改，跳过即可
			continue
		}

		daysToAdd := (targetIndex - int(anchor.Weekday()) + 7) % 7
		anchored := anchor.AddDate(0, 0, daysToAdd)
		rescheduled[i].SessionDate = FormatDate(anchored)
		rescheduled[i].Day = WeekdayName(anchored.Weekday())
	}

	sortByDate(rescheduled)

	return rescheduled, skipped
}

func sortByDate(sessions []domain.GroupSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionDate < sessions[j].SessionDate
	})
}
