package domain

import "time"

// TimeInterval 表示一天内的一个空闲时间段，时间均为 24 小时制的 HH:MM 字符串。
// 不支持跨越午夜的时间段。
type TimeInterval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type DaySchedule struct {
	Selected  bool           `json:"selected"`
	Intervals []TimeInterval `json:"intervals"`
}

// WeeklyAvailability 的 key 为小写的英文星期名称（sunday ~ saturday）。
type WeeklyAvailability map[string]DaySchedule

// Clone 返回一个深拷贝，分配器在工作副本上做校验和删除，全部成功后才整体提交。
func (wa WeeklyAvailability) Clone() WeeklyAvailability {
	cloned := make(WeeklyAvailability, len(wa))
	for day, ds := range wa {
		intervals := make([]TimeInterval, len(ds.Intervals))
		copy(intervals, ds.Intervals)
		cloned[day] = DaySchedule{
			Selected:  ds.Selected,
			Intervals: intervals,
		}
	}
	return cloned
}

type CoachSchedule struct {
	ID        int64              `json:"id"`
	Email     string             `json:"email"`
	Schedule  WeeklyAvailability `json:"schedule"`
	CreatedAt time.Time          `json:"createdAt"`
	Version   int32              `json:"-"`
}
