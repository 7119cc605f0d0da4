package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/utils"
)

func (h *Handler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name" validate:"required"`
		Email    string  `json:"email" validate:"required,email"`
		Phone    string  `json:"phone" validate:"required"`
		HourRate float64 `json:"hourRate" validate:"required,gt=0"`
		Category string  `json:"category" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateCategory(domain.Category(req.Category)); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	coach := &domain.Coach{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		HourRate: req.HourRate,
		Category: domain.Category(req.Category),
	}

	if err := h.repository.CreateCoach(coach); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建教练成功", coach)
}

func (h *Handler) GetAllCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := h.repository.GetAllCoaches()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取教练列表成功", coaches)
}

func (h *Handler) GetCoach(w http.ResponseWriter, r *http.Request) {
	coach := r.Context().Value(CoachCtx).(*domain.Coach)
	h.successResponse(w, r, "获取教练信息成功", coach)
}

// AssignGroupToCoach 把训练组分配给教练：
// 在教练的每周空闲时间中为该组的每个每周课程锁定时间段，
// 全部课程都能排下时才把缩减后的空闲时间和分配关系一并落库。
func (h *Handler) AssignGroupToCoach(w http.ResponseWriter, r *http.Request) {
	coach := r.Context().Value(CoachCtx).(*domain.Coach)

	var req struct {
		GroupID       int64   `json:"groupID" validate:"required"`
		DurationHours float64 `json:"durationHours" validate:"omitempty,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	group, err := h.repository.GetGroupByID(req.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "训练组不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if group.IsFinished {
		h.errorResponse(w, r, "训练组已结课")
		return
	}
	if group.CoachID != nil {
		h.errorResponse(w, r, "训练组已分配教练")
		return
	}

	slots := weeklySlots(group.Sessions)
	if len(slots) == 0 {
		h.errorResponse(w, r, "训练组没有课程安排")
		return
	}

	cs, err := h.repository.GetCoachScheduleByEmail(coach.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "教练尚未提交空闲时间")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = h.config.Session.DefaultDurationHours
	}

	remaining, locked, err := schedule.Assign(cs.Schedule, slots, duration)
	if err != nil {
		conflictErr := &schedule.ConflictError{}
		if errors.As(err, &conflictErr) {
			h.errorResponse(w, r, conflictErr.Error())
			return
		}
		h.errorResponse(w, r, err.Error())
		return
	}

	cs.Schedule = remaining
	if err := h.repository.AssignGroupToCoach(group, coach, cs, locked); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "分配教练失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "分配教练成功", map[string]any{
		"group":          group,
		"lockedSessions": locked,
	})
}

// weeklySlots 从已投影的课程中还原出每周循环模式，按出现顺序去重。
func weeklySlots(sessions []domain.GroupSession) []domain.SessionSlot {
	seen := make(map[domain.SessionSlot]bool)
	slots := make([]domain.SessionSlot, 0)

	for _, session := range sessions {
		slot := domain.SessionSlot{Day: session.Day, Time: session.Time}
		if seen[slot] {
			continue
		}
		seen[slot] = true
		slots = append(slots, slot)
	}

	return slots
}
