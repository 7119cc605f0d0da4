package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/config"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 报名申请和面试申请由学生/应聘者在登录前提交
	h.Mux.Post("/applicants", h.CreateApplicant)
	h.Mux.Post("/enrollments/requests", h.CreateEnrollmentRequest)

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/applicants", func(r chi.Router) {
			r.Get("/", h.GetAllApplicants)
			// 录用与否由管理员决定
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/status", h.UpdateApplicantsStatus)
		})

		r.Route("/coaches", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateCoach)
			r.Get("/", h.GetAllCoaches)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.coachRecord)
				r.Get("/", h.GetCoach)
				r.Post("/groups", h.AssignGroupToCoach)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Put("/", h.SaveCoachSchedule)
			r.Get("/{email}", h.GetCoachSchedule)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.CreateGroup)
			r.Get("/", h.GetAllGroups)
			r.Get("/sessions", h.GetSessionsOnDate)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.groupRecord)
				r.Get("/", h.GetGroup)
				r.Post("/pause", h.PauseGroup)
				r.Post("/resume", h.ResumeGroup)
				r.Post("/finish", h.FinishGroup)
				r.Post("/feedback", h.SubmitSessionFeedback)
			})
		})

		r.Route("/enrollments", func(r chi.Router) {
			r.Route("/groups/{id}", func(r chi.Router) {
				r.Use(h.groupRecord)
				r.Get("/requests", h.GetPendingRequests)
				r.Post("/requests/{requestID}/confirm-payment", h.ConfirmPayment)
				r.Get("/students", h.GetEnrolledStudents)
				r.Post("/students", h.EnrollStudent)
				r.Post("/students/transfer", h.TransferStudent)
				r.Post("/students/remove", h.RemoveStudent)
			})
			r.Get("/students/{email}/history", h.GetStudentHistory)
		})
	})
}
