package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// UpsertCoachSchedule 保存（或整体替换）某个教练的周空闲时间。
func (r *Repository) UpsertCoachSchedule(cs *domain.CoachSchedule) error {
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
		INSERT INTO coach_schedules (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET version = coach_schedules.version + 1
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, cs.Email).Scan(&cs.ID, &cs.CreatedAt, &cs.Version); err != nil {
		return err
	}

	if err := replaceScheduleDetails(ctx, tx, cs.ID, cs.Schedule); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// replaceScheduleDetails 先清空某个周程的天选择和时间段，再按传入的内容重建。
// 时间段带 position 列，保证读出来的顺序和保存时一致。
func replaceScheduleDetails(ctx context.Context, tx *sql.Tx, scheduleID int64, schedule domain.WeeklyAvailability) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM coach_schedule_days WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM coach_schedule_intervals WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}

	for day, ds := range schedule {
		query := `
			INSERT INTO coach_schedule_days (schedule_id, day, selected)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, scheduleID, day, ds.Selected); err != nil {
			return err
		}

		for position, interval := range ds.Intervals {
			query = `
				INSERT INTO coach_schedule_intervals (schedule_id, day, start_time, end_time, position)
				VALUES ($1, $2, $3, $4, $5)
			`
			if _, err := tx.ExecContext(ctx, query, scheduleID, day, interval.StartTime, interval.EndTime, position); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Repository) GetCoachScheduleByEmail(email string) (*domain.CoachSchedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			cs.id,
			cs.created_at,
			cs.version,
			csd.day,
			csd.selected,
			csi.start_time,
			csi.end_time
		FROM coach_schedules cs
		LEFT JOIN coach_schedule_days csd ON cs.id = csd.schedule_id
		LEFT JOIN coach_schedule_intervals csi ON cs.id = csi.schedule_id AND csd.day = csi.day
		WHERE cs.email = $1
		ORDER BY csd.day, csi.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := &domain.CoachSchedule{
		Email:    email,
		Schedule: make(domain.WeeklyAvailability),
	}
	found := false

	for rows.Next() {
		var row struct {
			ID        int64
			CreatedAt time.Time
			Version   int32

			Day       sql.NullString
			Selected  sql.NullBool
			StartTime sql.NullString
			EndTime   sql.NullString
		}

		dst := []any{&row.ID, &row.CreatedAt, &row.Version, &row.Day, &row.Selected, &row.StartTime, &row.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			cs.ID = row.ID
			cs.CreatedAt = row.CreatedAt
			cs.Version = row.Version
			found = true
		}

		// day 为空表示这个周程还没有任何内容
		if !row.Day.Valid {
			continue
		}

		ds, exists := cs.Schedule[row.Day.String]
		if !exists {
			ds = domain.DaySchedule{
				Selected:  row.Selected.Bool,
				Intervals: make([]domain.TimeInterval, 0),
			}
		}

		if row.StartTime.Valid {
			ds.Intervals = append(ds.Intervals, domain.TimeInterval{
				StartTime: row.StartTime.String,
				EndTime:   row.EndTime.String,
			})
		}

		cs.Schedule[row.Day.String] = ds
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return cs, nil
}
