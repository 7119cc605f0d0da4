package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func (h *Handler) CreateApplicant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		CVURL string `json:"cv" validate:"required,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	applicant := &domain.Applicant{
		Name:   req.Name,
		Email:  req.Email,
		CVURL:  req.CVURL,
		Status: domain.ApplicantStatusPending,
	}

	if err := h.repository.CreateApplicant(applicant); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交面试申请成功", applicant)
}

func (h *Handler) GetAllApplicants(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.repository.GetAllApplicants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取面试申请成功", applicants)
}

func (h *Handler) UpdateApplicantsStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs           []int64 `json:"ids" validate:"required,min=1"`
		Status        string  `json:"status" validate:"required,oneof=Accepted Rejected"`
		InterviewDate string  `json:"interviewDate"`
		MeetingLink   string  `json:"meetingLink"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 先取出申请人用于发送通知邮件，顺便确认这些 ID 都存在
	applicants, err := h.repository.GetApplicantsByIDs(req.IDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(applicants) != len(req.IDs) {
		h.errorResponse(w, r, "部分面试申请不存在")
		return
	}

	updated, err := h.repository.UpdateApplicantsStatus(req.IDs, domain.ApplicantStatus(req.Status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if updated != int64(len(req.IDs)) {
		h.errorResponse(w, r, "部分面试申请更新失败，请重试")
		return
	}

	// 给每位申请人发送结果通知
	for _, applicant := range applicants {
		if err := h.publishMail(domain.MailMessage{
			Type: "applicant_status",
			To:   applicant.Email,
			Data: domain.ApplicantStatusMailData{
				Name:          applicant.Name,
				Status:        req.Status,
				InterviewDate: req.InterviewDate,
				MeetingLink:   req.MeetingLink,
			},
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "更新面试申请状态成功", nil)
}
