package schedule

import (
	"fmt"
	"strings"
	"time"
)

// 星期名称与 time.Weekday 的下标保持一致（周日为 0）。
var weekdayNames = []string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// DateLayout 是课程日期在存储和接口中使用的格式。
const DateLayout = "2006-01-02"

// WeekdayIndex 把英文星期名称转换为下标（周日为 0），输入不区分大小写。
func WeekdayIndex(name string) (int, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == lowered {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// WeekdayName 返回小写的英文星期名称，即存储时的规范形式。
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

// ParseDate 解析课程日期。历史数据中存在带时间部分的 RFC3339 格式，这里一并兼容。
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return truncateToDate(t), nil
	}
	return time.Time{}, fmt.Errorf("无法解析日期 %q", value)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// truncateToDate 只保留日历日期，并统一固定到 UTC 零点，
// 保证带不同时区的 time.Time 做比较和天数差计算时不会受偏移量影响。
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseClock 把 HH:MM 格式的 24 小时制时间解析为从零点开始的分钟数。
// 时和分都必须写满两位数字，"9:00" 这样的单位数写法不接受。
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("无法解析时间 %q", value)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("无法解析时间 %q", value)
		}
	}

	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("时间 %q 超出范围", value)
	}
	return hour*60 + minute, nil
}

// FormatClock 把从零点开始的分钟数格式化为 HH:MM。
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// To24Hour 把 "6:00 PM" 这样的 12 小时制时间转换为 "18:00"。
// 输入本身已经是 24 小时制时原样规范化返回。
func To24Hour(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	upper := strings.ToUpper(trimmed)

	meridiem := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}

	if meridiem == "" {
		minutes, err := ParseClock(trimmed)
		if err != nil {
			return "", err
		}
		return FormatClock(minutes), nil
	}

	clock := strings.TrimSpace(strings.TrimSuffix(upper, meridiem))
	var hour, minute int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("无法解析时间 %q", value)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("时间 %q 超出范围", value)
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return FormatClock(hour*60 + minute), nil
}

// To12Hour 把 "18:00" 转换为 "6:00 PM"，用于展示层。
func To12Hour(value string) (string, error) {
	minutes, err := ParseClock(value)
	if err != nil {
		return "", err
	}

	hour := minutes / 60
	minute := minutes % 60
	meridiem := "AM"

	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem), nil
}
