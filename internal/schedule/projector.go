package schedule

import (
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// Project 把每周循环的课程模式投影为整个训练周期内的具体日历日期。
//
// 对每个模式先从 startDate 推出它所在星期的朴素候选日，再比较早一周和晚一周的
// 两个邻近候选，保留距离 now（投影执行时的日期）最近的那一个，距离相同时取较晚者。
// 这样当训练组的官方开始日期早于录入日期时，可以正确回填已经上过的课程。
//
// 返回的课程按日期升序排列，日期相同时保持模式的输入顺序；
// 日期严格早于 now 的课程标记为 done，其余标记为 upcoming。
func Project(startDate time.Time, weeksCount int, slots []domain.SessionSlot, now time.Time) ([]domain.GroupSession, error) {
	start := truncateToDate(startDate)
	today := truncateToDate(now)
	todayStr := FormatDate(today)

	sessions := make([]domain.GroupSession, 0, weeksCount*len(slots))

	for _, slot := range slots {
		dayIndex, err := WeekdayIndex(slot.Day)
		if err != nil {
			return nil, err
		}

		offset := (dayIndex - int(start.Weekday()) + 7) % 7
		base := nearestOccurrence(start.AddDate(0, 0, offset), today)

		for week := 0; week < weeksCount; week++ {
			dateStr := FormatDate(base.AddDate(0, 0, 7*week))

			// 只按日历日期字符串比较，now 带什么时区都不影响结果
			feedback := domain.FeedbackUpcoming
			if dateStr < todayStr {
				feedback = domain.FeedbackDone
			}

			sessions = append(sessions, domain.GroupSession{
				Day:            weekdayNames[dayIndex],
				Time:           slot.Time,
				SessionDate:    dateStr,
				Feedback:       feedback,
				CustomFeedback: "no feedback yet",
			})
		}
	}

	// 日期字符串是 2006-01-02 格式，按字典序比较即按日期比较；
	// 稳定排序保证同一天的课程维持输入顺序。
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionDate < sessions[j].SessionDate
	})

	return sessions, nil
}

// nearestOccurrence 在 candidate 的前一周、当周、后一周三个同星期日期中，
// 选出距离 today 最近的一个，距离相同时偏向较晚的日期。
func nearestOccurrence(candidate, today time.Time) time.Time {
	best := candidate.AddDate(0, 0, -7)
	bestDistance := absDays(best, today)

	for _, alternative := range []time.Time{candidate, candidate.AddDate(0, 0, 7)} {
		if distance := absDays(alternative, today); distance <= bestDistance {
			best = alternative
			bestDistance = distance
		}
	}

	return best
}

func absDays(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
