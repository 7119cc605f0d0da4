package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeekday 表示星期名称不在七个可识别的英文名称之内。
	ErrInvalidWeekday = errors.New("无法识别的星期名称")
	// ErrInvalidRange 表示暂停窗口的结束日期不晚于开始日期。
	ErrInvalidRange = errors.New("暂停的结束日期必须晚于开始日期")
)

// ConflictError 表示某次课程在教练的空闲时间中找不到可用的时间段。
// 返回这个错误时，教练的空闲时间和课程状态都没有被修改。
type ConflictError struct {
	Day      string
	Time     string
	Duration float64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("教练在 %s %s 没有可以容纳 %g 小时课程的空闲时间段", e.Day, e.Time, e.Duration)
}

// DateParseError 记录一条日期损坏而被改期操作跳过的课程，仅用于诊断上报。
type DateParseError struct {
	Index int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("第 %d 次课程的日期 %q 无法解析，已跳过", e.Index, e.Value)
}
