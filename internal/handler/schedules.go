package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/utils"
)

// SaveCoachSchedule 保存教练的每周空闲时间，同一邮箱重复提交时覆盖旧的记录。
// 时间段允许以 12 小时制提交（如 6:00 PM），入库前统一规范化为 24 小时制。
func (h *Handler) SaveCoachSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string                    `json:"email" validate:"required,email"`
		Schedule domain.WeeklyAvailability `json:"schedule" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	normalized, err := normalizeAvailability(req.Schedule)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := utils.ValidateWeeklyAvailability(normalized); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	cs := &domain.CoachSchedule{
		Email:    req.Email,
		Schedule: normalized,
	}

	if err := h.repository.UpsertCoachSchedule(cs); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存空闲时间成功", cs)
}

func (h *Handler) GetCoachSchedule(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	cs, err := h.repository.GetCoachScheduleByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该教练尚未提交空闲时间")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 前端展示用的 12 小时制
	if r.URL.Query().Get("format") == "12h" {
		display, err := displayAvailability(cs.Schedule)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		cs.Schedule = display
	}

	h.successResponse(w, r, "获取空闲时间成功", cs)
}

func normalizeAvailability(wa domain.WeeklyAvailability) (domain.WeeklyAvailability, error) {
	normalized := wa.Clone()

	for day, ds := range normalized {
		for i, interval := range ds.Intervals {
			start, err := schedule.To24Hour(interval.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := schedule.To24Hour(interval.EndTime)
			if err != nil {
				return nil, err
			}
			ds.Intervals[i] = domain.TimeInterval{StartTime: start, EndTime: end}
		}
		normalized[day] = ds
	}

	return normalized, nil
}

func displayAvailability(wa domain.WeeklyAvailability) (domain.WeeklyAvailability, error) {
	display := wa.Clone()

	for day, ds := range display {
		for i, interval := range ds.Intervals {
			start, err := schedule.To12Hour(interval.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := schedule.To12Hour(interval.EndTime)
			if err != nil {
				return nil, err
			}
			ds.Intervals[i] = domain.TimeInterval{StartTime: start, EndTime: end}
		}
		display[day] = ds
	}

	return display, nil
}
