package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/config"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/repository"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/coach-office/backend/internal/utils"
)

const (
	usersNum      = 10
	coachesNum    = 15
	groupsNum     = 20
	applicantsNum = 12
)

// SeedTestData 向数据库中插入一批随机的测试数据，
// 任何一条记录失败都只记录日志并继续，不会中断整个流程。
func SeedTestData(cfg *config.Config, r *repository.Repository) {
	// 插入教务
	for i := 0; i < usersNum; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Seed.EmailDomain)
		if err != nil {
			slog.Error("生成教务失败", "error", err)
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("插入教务失败", "error", err)
			continue
		}
	}

	// 插入教练及其每周空闲时间
	coaches := make([]*domain.Coach, 0, coachesNum)
	for i := 0; i < coachesNum; i++ {
		coach := utils.GenerateRandomCoach(cfg.Seed.EmailDomain)
		if err := r.CreateCoach(coach); err != nil {
			slog.Error("插入教练失败", "error", err)
			continue
		}

		cs := &domain.CoachSchedule{
			Email:    coach.Email,
			Schedule: utils.GenerateRandomAvailability(),
		}
		if err := r.UpsertCoachSchedule(cs); err != nil {
			slog.Error("插入教练空闲时间失败", "error", err)
			continue
		}

		coaches = append(coaches, coach)
	}

	// 插入训练组，开课日期在前后四周内随机分布
	now := time.Now()
	for i := 0; i < groupsNum; i++ {
		startDate := now.AddDate(0, 0, rand.Intn(57)-28)
		weeksCount := rand.Intn(10) + 3
		slots := utils.GenerateRandomSessionSlots()

		sessions, err := schedule.Project(startDate, weeksCount, slots, now)
		if err != nil {
			slog.Error("生成课程安排失败", "error", err)
			continue
		}

		group := &domain.Group{
			Name:          fmt.Sprintf("测试训练组 %d", i+1),
			Level:         int32(rand.Intn(3) + 1),
			StartDate:     startDate,
			NumberOfWeeks: int32(weeksCount),
			Category:      domain.Categories[rand.Intn(len(domain.Categories))],
			Seats:         int32(rand.Intn(8) + 4),
			Sessions:      sessions,
		}

		if err := r.CreateGroup(group); err != nil {
			slog.Error("插入训练组失败", "error", err)
			continue
		}

		// 一部分训练组直接分配教练
		if len(coaches) > 0 && rand.Intn(2) == 1 {
			coach := coaches[rand.Intn(len(coaches))]
			cs, err := r.GetCoachScheduleByEmail(coach.Email)
			if err != nil {
				slog.Error("获取教练空闲时间失败", "error", err)
				continue
			}

			remaining, locked, err := schedule.Assign(cs.Schedule, slots, cfg.Session.DefaultDurationHours)
			if err != nil {
				// 随机数据下教练时间冲突是正常情况，跳过即可
				continue
			}

			cs.Schedule = remaining
			if err := r.AssignGroupToCoach(group, coach, cs, locked); err != nil {
				slog.Error("分配教练失败", "error", err)
				continue
			}
		}

		// 给每个组塞几个学员
		studentsNum := rand.Intn(int(group.Seats)) + 1
		for j := 0; j < studentsNum; j++ {
			student := utils.GenerateRandomStudent(cfg.Seed.EmailDomain)
			if err := r.EnrollStudent(group, student); err != nil {
				slog.Error("插入学员失败", "error", err)
				break
			}
		}
	}

	// 插入面试申请
	for i := 0; i < applicantsNum; i++ {
		applicant := utils.GenerateRandomApplicant(cfg.Seed.EmailDomain)
		if err := r.CreateApplicant(applicant); err != nil {
			slog.Error("插入面试申请失败", "error", err)
			continue
		}
	}

	slog.Info("插入测试数据完成")
}
