package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/utils"
)

// CreateGroup 创建训练组并把每周课程模式投影成具体日期的课程表。
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string               `json:"name" validate:"required"`
		Level         int32                `json:"level" validate:"required,gte=1"`
		StartDate     string               `json:"startDate" validate:"required"`
		NumberOfWeeks int32                `json:"numberOfWeeks" validate:"required,gte=1"`
		Category      string               `json:"category" validate:"required"`
		Seats         int32                `json:"seats" validate:"required,gte=1"`
		Sessions      []domain.SessionSlot `json:"sessions" validate:"required,min=1"`
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
	if err := utils.ValidateSessionSlots(req.Sessions); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	startDate, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "开课日期格式无效")
		return
	}

	sessions, err := schedule.Project(startDate, int(req.NumberOfWeeks), req.Sessions, time.Now())
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	group := &domain.Group{
		Name:          req.Name,
		Level:         req.Level,
		StartDate:     startDate,
		NumberOfWeeks: req.NumberOfWeeks,
		Category:      domain.Category(req.Category),
		Seats:         req.Seats,
		Sessions:      sessions,
	}

	if err := h.repository.CreateGroup(group); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建训练组成功", group)
}

func (h *Handler) GetAllGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repository.GetAllGroups()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取训练组列表成功", groups)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)
	h.successResponse(w, r, "获取训练组信息成功", group)
}

// PauseGroup 暂停训练组：暂停窗口内的课程整体向后顺延窗口的天数。
func (h *Handler) PauseGroup(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		PauseStart string `json:"pauseStart" validate:"required"`
		PauseEnd   string `json:"pauseEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if group.IsFinished {
		h.errorResponse(w, r, "训练组已结课")
		return
	}
	if group.Paused {
		h.errorResponse(w, r, "训练组已处于暂停状态")
		return
	}

	pauseStart, err := schedule.ParseDate(req.PauseStart)
	if err != nil {
		h.errorResponse(w, r, "暂停开始日期格式无效")
		return
	}
	pauseEnd, err := schedule.ParseDate(req.PauseEnd)
	if err != nil {
		h.errorResponse(w, r, "暂停结束日期格式无效")
		return
	}

	sessions, skipped, err := schedule.Pause(group.Sessions, pauseStart, pauseEnd)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	group.Sessions = sessions
	group.Paused = true
	group.PausedDate = &pauseStart
	group.PauseEndDate = &pauseEnd
	group.ResumeDate = nil

	if err := h.repository.ReplaceGroupSessions(group); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "暂停训练组失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	msg := "暂停训练组成功"
	if len(skipped) > 0 {
		msg = fmt.Sprintf("暂停训练组成功，%d 次课程因日期无法解析被跳过", len(skipped))
	}
	h.successResponse(w, r, msg, group)
}

// ResumeGroup 恢复训练组：恢复日期之后的课程重新对齐到各自星期的下一次出现。
func (h *Handler) ResumeGroup(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		ResumeDate string `json:"resumeDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !group.Paused {
		h.errorResponse(w, r, "训练组不在暂停状态")
		return
	}

	resumeDate, err := schedule.ParseDate(req.ResumeDate)
	if err != nil {
		h.errorResponse(w, r, "恢复日期格式无效")
		return
	}

	sessions, skipped := schedule.Resume(group.Sessions, resumeDate)

	group.Sessions = sessions
	group.Paused = false
	group.ResumeDate = &resumeDate

	if err := h.repository.ReplaceGroupSessions(group); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "恢复训练组失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	msg := "恢复训练组成功"
	if len(skipped) > 0 {
		msg = fmt.Sprintf("恢复训练组成功，%d 次课程因日期无法解析被跳过", len(skipped))
	}
	h.successResponse(w, r, msg, group)
}

func (h *Handler) FinishGroup(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	if group.IsFinished {
		h.errorResponse(w, r, "训练组已结课")
		return
	}

	if err := h.repository.FinishGroup(group); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "结课失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "结课成功", group)
}

func (h *Handler) SubmitSessionFeedback(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		SessionID      int64  `json:"sessionID" validate:"required"`
		Feedback       string `json:"feedback" validate:"required,oneof=upcoming done cancelled postponed"`
		CustomFeedback string `json:"customFeedback"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	session, err := h.repository.UpdateSessionFeedback(group.ID, req.SessionID, domain.Feedback(req.Feedback), req.CustomFeedback)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "课程不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "提交课程反馈成功", session)
}

// GetSessionsOnDate 查询某一天所有训练组的课程，on 参数支持 today、yesterday、tomorrow。
func (h *Handler) GetSessionsOnDate(w http.ResponseWriter, r *http.Request) {
	reference := time.Now()

	switch r.URL.Query().Get("on") {
	case "", "today":
	case "yesterday":
		reference = reference.AddDate(0, 0, -1)
	case "tomorrow":
		reference = reference.AddDate(0, 0, 1)
	default:
		h.errorResponse(w, r, "无效的查询日期，仅支持 today、yesterday 和 tomorrow")
		return
	}

	groups, err := h.repository.GetAllGroups()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	views := schedule.SessionsOn(reference, groups)

	h.successResponse(w, r, "获取课程安排成功", views)
}
