package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/repository"
)

// CreateEnrollmentRequest 学生提交报名申请，确认缴费前不占用名额。
func (h *Handler) CreateEnrollmentRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID      int64  `json:"groupID" validate:"required"`
		StudentName  string `json:"studentName" validate:"required"`
		StudentEmail string `json:"studentEmail" validate:"required,email"`
		StudentPhone string `json:"studentPhone" validate:"required"`
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
		h.errorResponse(w, r, "训练组已结课，无法报名")
		return
	}
	if group.Seats <= 0 {
		h.errorResponse(w, r, "训练组没有剩余名额")
		return
	}

	request := &domain.EnrollmentRequest{
		RequestID:    uuid.New().String(),
		GroupID:      group.ID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentPhone: req.StudentPhone,
	}

	if err := h.repository.CreateEnrollmentRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交报名申请成功", request)
}

func (h *Handler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	requests, err := h.repository.GetPendingRequests(group.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取报名申请成功", requests)
}

// ConfirmPayment 确认缴费并把申请人转为正式学员，随后给学生发送入学通知邮件。
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)
	requestID := chi.URLParam(r, "requestID")

	student, err := h.repository.ConfirmPaymentAndEnroll(group, requestID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "报名申请不存在")
		case errors.Is(err, repository.ErrNoSeats):
			h.errorResponse(w, r, "训练组没有剩余名额")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "enrollment",
		To:   student.StudentEmail,
		Data: domain.EnrollmentMailData{
			StudentName: student.StudentName,
			GroupName:   group.Name,
			FirstDay:    firstUpcomingSessionDate(group),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "确认缴费成功，学员已录入", student)
}

func (h *Handler) GetEnrolledStudents(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	students, err := h.repository.GetEnrolledStudents(group.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取学员列表成功", students)
}

// EnrollStudent 线下已确认缴费时跳过报名申请直接录入学员。
func (h *Handler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		StudentName  string `json:"studentName" validate:"required"`
		StudentEmail string `json:"studentEmail" validate:"required,email"`
		StudentPhone string `json:"studentPhone" validate:"required"`
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
		h.errorResponse(w, r, "训练组已结课，无法录入学员")
		return
	}

	student := &domain.EnrolledStudent{
		GroupID:      group.ID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentPhone: req.StudentPhone,
	}

	if err := h.repository.EnrollStudent(group, student); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoSeats):
			h.errorResponse(w, r, "训练组没有剩余名额")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "enrollment",
		To:   student.StudentEmail,
		Data: domain.EnrollmentMailData{
			StudentName: student.StudentName,
			GroupName:   group.Name,
			FirstDay:    firstUpcomingSessionDate(group),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "录入学员成功", student)
}

func (h *Handler) TransferStudent(w http.ResponseWriter, r *http.Request) {
	fromGroup := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		ToGroupID    int64  `json:"toGroupID" validate:"required"`
		StudentEmail string `json:"studentEmail" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ToGroupID == fromGroup.ID {
		h.errorResponse(w, r, "不能调到原来的训练组")
		return
	}

	toGroup, err := h.repository.GetGroupByID(req.ToGroupID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "目标训练组不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if toGroup.IsFinished {
		h.errorResponse(w, r, "目标训练组已结课")
		return
	}

	if err := h.repository.TransferStudent(fromGroup, toGroup, req.StudentEmail); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "学员不在该训练组中")
		case errors.Is(err, repository.ErrNoSeats):
			h.errorResponse(w, r, "目标训练组没有剩余名额")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "调组成功", nil)
}

func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	group := r.Context().Value(GroupCtx).(*domain.Group)

	var req struct {
		StudentEmail string `json:"studentEmail" validate:"required,email"`
		Reason       string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	student, err := h.repository.RemoveStudent(group, req.StudentEmail, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "学员不在该训练组中")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "移除学员成功", student)
}

func (h *Handler) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	history, err := h.repository.GetStudentHistory(email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "没有该学员的学籍历史")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取学籍历史成功", history)
}

// firstUpcomingSessionDate 取第一节还未上的课的日期，用于入学通知邮件。
func firstUpcomingSessionDate(group *domain.Group) string {
	for _, session := range group.Sessions {
		if session.Feedback == domain.FeedbackUpcoming && session.SessionDate != "" {
			return session.SessionDate
		}
	}
	return ""
}
