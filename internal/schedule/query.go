package schedule

import (
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// SessionsOn 查出在 reference 当天有课的所有训练组的课程，展开为扁平视图。
// 已结课和暂停中的训练组即使当天有课也会被排除；日期只按天比较，忽略时间部分。
// 没有匹配的课程时返回空切片而不是错误。
func SessionsOn(reference time.Time, groups []*domain.Group) []domain.SessionView {
	target := FormatDate(truncateToDate(reference))

	views := make([]domain.SessionView, 0)

	for _, group := range groups {
		if group.IsFinished || group.Paused {
			continue
		}

		for _, session := range group.Sessions {
			if session.SessionDate == "" {
				continue
			}

			date, err := ParseDate(session.SessionDate)
			if err != nil {
				continue
			}

			if FormatDate(date) != target {
				continue
			}

			views = append(views, domain.SessionView{
				GroupID:        group.ID,
				GroupName:      group.Name,
				Category:       group.Category,
				Level:          group.Level,
				Seats:          group.Seats,
				Day:            session.Day,
				Time:           session.Time,
				Feedback:       session.Feedback,
				CustomFeedback: session.CustomFeedback,
			})
		}
	}

	return views
}
