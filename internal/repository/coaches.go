package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func (r *Repository) CreateCoach(coach *domain.Coach) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO coaches (name, email, phone, hour_rate, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{coach.Name, coach.Email, coach.Phone, coach.HourRate, coach.Category}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&coach.ID, &coach.CreatedAt, &coach.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllCoaches() ([]*domain.Coach, error) {
	query := `
		SELECT id, name, email, phone, hour_rate, category, created_at, version
		FROM coaches
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coaches := make([]*domain.Coach, 0)
	for rows.Next() {
		coach := &domain.Coach{}
		dst := []any{&coach.ID, &coach.Name, &coach.Email, &coach.Phone, &coach.HourRate, &coach.Category, &coach.CreatedAt, &coach.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		coaches = append(coaches, coach)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coaches, nil
}

func (r *Repository) GetCoachByID(id int64) (*domain.Coach, error) {
	query := `
		SELECT name, email, phone, hour_rate, category, created_at, version
		FROM coaches WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coach := &domain.Coach{
		ID: id,
	}

	dst := []any{&coach.Name, &coach.Email, &coach.Phone, &coach.HourRate, &coach.Category, &coach.CreatedAt, &coach.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return coach, nil
}

// AssignGroupToCoach 在一个事务内提交分配结果：
// 教练的空闲时间被替换为分配器返回的缩减后版本，训练组挂到该教练名下，
// 每次课程锁定的时间窗口也一并写入。
// 两张表都带乐观锁版本检查，任何一步失败整个事务回滚，
// 保证内存中的整批锁定和持久化的结果始终一致。
func (r *Repository) AssignGroupToCoach(group *domain.Group, coach *domain.Coach, schedule *domain.CoachSchedule, locked []domain.LockedSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE coach_schedules
		SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, schedule.ID, schedule.Version).Scan(&schedule.Version); err != nil {
		return err
	}

	if err := replaceScheduleDetails(ctx, tx, schedule.ID, schedule.Schedule); err != nil {
		return err
	}

	query = `
		UPDATE groups
		SET coach_id = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, coach.ID, group.ID, group.Version).Scan(&group.Version); err != nil {
		return err
	}
	group.CoachID = &coach.ID

	query = `
		INSERT INTO group_locked_sessions (group_id, coach_id, day, start_time, end_time, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, session := range locked {
		if _, err := tx.ExecContext(ctx, query, group.ID, coach.ID, session.Day, session.StartTime, session.EndTime, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
