package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func (r *Repository) CreateGroup(group *domain.Group) error {
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
		INSERT INTO groups (name, level, start_date, number_of_weeks, category, seats)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_finished, paused, created_at, version
	`
	args := []any{group.Name, group.Level, group.StartDate, group.NumberOfWeeks, group.Category, group.Seats}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&group.ID, &group.IsFinished, &group.Paused, &group.CreatedAt, &group.Version); err != nil {
		return err
	}

	if err := insertGroupSessions(ctx, tx, group.ID, group.Sessions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func insertGroupSessions(ctx context.Context, tx *sql.Tx, groupID int64, sessions []domain.GroupSession) error {
	for position := range sessions {
		query := `
			INSERT INTO group_sessions (group_id, day, session_time, session_date, feedback, custom_feedback, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		args := []any{groupID, sessions[position].Day, sessions[position].Time, sessions[position].SessionDate, sessions[position].Feedback, sessions[position].CustomFeedback, position}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&sessions[position].ID); err != nil {
			return err
		}
	}
	return nil
}

// groupRow 是训练组和课程 LEFT JOIN 后的一行，课程列可能全为空。
type groupRow struct {
	Name          string
	Level         int32
	StartDate     time.Time
	NumberOfWeeks int32
	Category      string
	Seats         int32
	CoachID       sql.NullInt64
	IsFinished    bool
	Paused        bool
	PausedDate    sql.NullTime
	PauseEndDate  sql.NullTime
	ResumeDate    sql.NullTime
	CreatedAt     time.Time
	Version       int32

	SessionID      sql.NullInt64
	Day            sql.NullString
	SessionTime    sql.NullString
	SessionDate    sql.NullString
	Feedback       sql.NullString
	CustomFeedback sql.NullString
}

func (row *groupRow) dst() []any {
	return []any{
		&row.Name, &row.Level, &row.StartDate, &row.NumberOfWeeks, &row.Category, &row.Seats,
		&row.CoachID, &row.IsFinished, &row.Paused, &row.PausedDate, &row.PauseEndDate, &row.ResumeDate,
		&row.CreatedAt, &row.Version,
		&row.SessionID, &row.Day, &row.SessionTime, &row.SessionDate, &row.Feedback, &row.CustomFeedback,
	}
}

func (row *groupRow) fill(group *domain.Group) {
	group.Name = row.Name
	group.Level = row.Level
	group.StartDate = row.StartDate
	group.NumberOfWeeks = row.NumberOfWeeks
	group.Category = domain.Category(row.Category)
	group.Seats = row.Seats
	group.IsFinished = row.IsFinished
	group.Paused = row.Paused
	group.CreatedAt = row.CreatedAt
	group.Version = row.Version

	if row.CoachID.Valid {
		coachID := row.CoachID.Int64
		group.CoachID = &coachID
	}
	if row.PausedDate.Valid {
		pausedDate := row.PausedDate.Time
		group.PausedDate = &pausedDate
	}
	if row.PauseEndDate.Valid {
		pauseEndDate := row.PauseEndDate.Time
		group.PauseEndDate = &pauseEndDate
	}
	if row.ResumeDate.Valid {
		resumeDate := row.ResumeDate.Time
		group.ResumeDate = &resumeDate
	}
}

func (row *groupRow) session() (domain.GroupSession, bool) {
	if !row.SessionID.Valid {
		return domain.GroupSession{}, false
	}
	return domain.GroupSession{
		ID:             row.SessionID.Int64,
		Day:            row.Day.String,
		Time:           row.SessionTime.String,
		SessionDate:    row.SessionDate.String,
		Feedback:       domain.Feedback(row.Feedback.String),
		CustomFeedback: row.CustomFeedback.String,
	}, true
}

const groupColumns = `
			g.name, g.level, g.start_date, g.number_of_weeks, g.category, g.seats,
			g.coach_id, g.is_finished, g.paused, g.paused_date, g.pause_end_date, g.resume_date,
			g.created_at, g.version,
			gs.id, gs.day, gs.session_time, gs.session_date, gs.feedback, gs.custom_feedback`

func (r *Repository) GetGroupByID(id int64) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT` + groupColumns + `
		FROM groups g
		LEFT JOIN group_sessions gs ON g.id = gs.group_id
		WHERE g.id = $1
		ORDER BY gs.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	group := &domain.Group{
		ID:       id,
		Sessions: make([]domain.GroupSession, 0),
	}
	found := false

	for rows.Next() {
		var row groupRow
		if err := rows.Scan(row.dst()...); err != nil {
			return nil, err
		}

		if !found {
			row.fill(group)
			found = true
		}

		if session, ok := row.session(); ok {
			group.Sessions = append(group.Sessions, session)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return group, nil
}

func (r *Repository) GetAllGroups() ([]*domain.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			g.id,` + groupColumns + `
		FROM groups g
		LEFT JOIN group_sessions gs ON g.id = gs.group_id
		ORDER BY g.created_at DESC, g.id, gs.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*domain.Group, 0)
	groupsMap := make(map[int64]*domain.Group)

	for rows.Next() {
		var groupID int64
		var row groupRow

		dst := append([]any{&groupID}, row.dst()...)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		group, exists := groupsMap[groupID]
		if !exists {
			// 第一次查到这个训练组，初始化后放进 map
			group = &domain.Group{
				ID:       groupID,
				Sessions: make([]domain.GroupSession, 0),
			}
			row.fill(group)
			groupsMap[groupID] = group
			groups = append(groups, group)
		}

		if session, ok := row.session(); ok {
			group.Sessions = append(group.Sessions, session)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// ReplaceGroupSessions 持久化改期结果：更新训练组的暂停状态字段，
// 并把课程列表整体替换为改期后的版本（顺序即排序后的顺序）。
func (r *Repository) ReplaceGroupSessions(group *domain.Group) error {
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
		UPDATE groups
		SET
			paused = $1,
			paused_date = $2,
			pause_end_date = $3,
			resume_date = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`
	args := []any{group.Paused, group.PausedDate, group.PauseEndDate, group.ResumeDate, group.ID, group.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&group.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_sessions WHERE group_id = $1`, group.ID); err != nil {
		return err
	}

	if err := insertGroupSessions(ctx, tx, group.ID, group.Sessions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateSessionFeedback(groupID, sessionID int64, feedback domain.Feedback, customFeedback string) (*domain.GroupSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE group_sessions
		SET feedback = $1, custom_feedback = $2
		WHERE id = $3 AND group_id = $4
		RETURNING day, session_time, session_date
	`

	session := &domain.GroupSession{
		ID:             sessionID,
		Feedback:       feedback,
		CustomFeedback: customFeedback,
	}

	args := []any{feedback, customFeedback, sessionID, groupID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&session.Day, &session.Time, &session.SessionDate); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *Repository) FinishGroup(group *domain.Group) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE groups
		SET is_finished = true, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, group.ID, group.Version).Scan(&group.Version); err != nil {
		return err
	}
	group.IsFinished = true

	return nil
}
