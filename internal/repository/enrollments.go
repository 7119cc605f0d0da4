package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

// ErrNoSeats 表示训练组已经没有剩余名额。
var ErrNoSeats = errors.New("训练组没有剩余名额")

func (r *Repository) CreateEnrollmentRequest(request *domain.EnrollmentRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO enrollment_requests (request_id, group_id, student_name, student_email, student_phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, paid, created_at
	`

	args := []any{request.RequestID, request.GroupID, request.StudentName, request.StudentEmail, request.StudentPhone}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.Paid, &request.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetPendingRequests 返回某个训练组所有还未缴费的报名申请。
func (r *Repository) GetPendingRequests(groupID int64) ([]*domain.EnrollmentRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, request_id, student_name, student_email, student_phone, paid, created_at
		FROM enrollment_requests
		WHERE group_id = $1 AND paid = false
		ORDER BY created_at
	`

	rows, err := r.dbpool.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.EnrollmentRequest, 0)
	for rows.Next() {
		request := &domain.EnrollmentRequest{GroupID: groupID}
		dst := []any{&request.ID, &request.RequestID, &request.StudentName, &request.StudentEmail, &request.StudentPhone, &request.Paid, &request.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ConfirmPaymentAndEnroll 确认缴费并把申请人转为正式学员：
// 扣减名额、写入学员、删除申请、追加学籍历史，全部在一个事务内完成。
func (r *Repository) ConfirmPaymentAndEnroll(group *domain.Group, requestID string) (*domain.EnrolledStudent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	request := &domain.EnrollmentRequest{RequestID: requestID, GroupID: group.ID}
	query := `
		SELECT id, student_name, student_email, student_phone
		FROM enrollment_requests
		WHERE request_id = $1 AND group_id = $2
	`
	dst := []any{&request.ID, &request.StudentName, &request.StudentEmail, &request.StudentPhone}
	if err := tx.QueryRowContext(ctx, query, requestID, group.ID).Scan(dst...); err != nil {
		return nil, err
	}

	student := &domain.EnrolledStudent{
		GroupID:      group.ID,
		StudentName:  request.StudentName,
		StudentEmail: request.StudentEmail,
		StudentPhone: request.StudentPhone,
	}

	if err := enrollStudentTx(ctx, tx, group, student); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM enrollment_requests WHERE id = $1`, request.ID); err != nil {
		return nil, err
	}

	action := domain.StudentHistoryAction{
		Action:      domain.StudentActionEnrolled,
		ToGroupID:   &group.ID,
		Description: fmt.Sprintf("Enrolled in group %s", group.Name),
	}
	if err := appendStudentHistory(ctx, tx, student.StudentEmail, action); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return student, nil
}

// EnrollStudent 跳过报名申请直接录入学员（线下已确认缴费的场景）。
func (r *Repository) EnrollStudent(group *domain.Group, student *domain.EnrolledStudent) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := enrollStudentTx(ctx, tx, group, student); err != nil {
		return err
	}

	action := domain.StudentHistoryAction{
		Action:      domain.StudentActionEnrolled,
		ToGroupID:   &group.ID,
		Description: fmt.Sprintf("Enrolled in group %s", group.Name),
	}
	if err := appendStudentHistory(ctx, tx, student.StudentEmail, action); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// enrollStudentTx 在事务内扣减名额并写入学员。
// 扣减带 seats > 0 的条件，名额已满时返回 ErrNoSeats。
func enrollStudentTx(ctx context.Context, tx *sql.Tx, group *domain.Group, student *domain.EnrolledStudent) error {
	query := `
		UPDATE groups
		SET seats = seats - 1, version = version + 1
		WHERE id = $1 AND seats > 0
		RETURNING seats, version
	`
	if err := tx.QueryRowContext(ctx, query, group.ID).Scan(&group.Seats, &group.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoSeats
		}
		return err
	}

	query = `
		INSERT INTO enrolled_students (group_id, student_name, student_email, student_phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, enrolled_at
	`
	args := []any{group.ID, student.StudentName, student.StudentEmail, student.StudentPhone}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&student.ID, &student.EnrolledAt); err != nil {
		return err
	}

	return nil
}

func appendStudentHistory(ctx context.Context, tx *sql.Tx, studentEmail string, action domain.StudentHistoryAction) error {
	var historyID int64
	query := `
		INSERT INTO student_history (student_email)
		VALUES ($1)
		ON CONFLICT (student_email) DO UPDATE SET student_email = EXCLUDED.student_email
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, studentEmail).Scan(&historyID); err != nil {
		return err
	}

	query = `
		INSERT INTO student_history_actions (history_id, action, from_group_id, to_group_id, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	args := []any{historyID, action.Action, action.FromGroupID, action.ToGroupID, action.Description}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEnrolledStudents(groupID int64) ([]*domain.EnrolledStudent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, student_name, student_email, student_phone, enrolled_at
		FROM enrolled_students
		WHERE group_id = $1
		ORDER BY enrolled_at
	`

	rows, err := r.dbpool.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.EnrolledStudent, 0)
	for rows.Next() {
		student := &domain.EnrolledStudent{GroupID: groupID}
		dst := []any{&student.ID, &student.StudentName, &student.StudentEmail, &student.StudentPhone, &student.EnrolledAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// TransferStudent 把学员从一个训练组调到另一个，两边的名额同步修正。
func (r *Repository) TransferStudent(fromGroup, toGroup *domain.Group, studentEmail string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	student := &domain.EnrolledStudent{StudentEmail: studentEmail}
	query := `
		DELETE FROM enrolled_students
		WHERE group_id = $1 AND student_email = $2
		RETURNING student_name, student_phone
	`
	if err := tx.QueryRowContext(ctx, query, fromGroup.ID, studentEmail).Scan(&student.StudentName, &student.StudentPhone); err != nil {
		return err
	}

	query = `
		UPDATE groups
		SET seats = seats + 1, version = version + 1
		WHERE id = $1
		RETURNING seats, version
	`
	if err := tx.QueryRowContext(ctx, query, fromGroup.ID).Scan(&fromGroup.Seats, &fromGroup.Version); err != nil {
		return err
	}

	student.GroupID = toGroup.ID
	if err := enrollStudentTx(ctx, tx, toGroup, student); err != nil {
		return err
	}

	action := domain.StudentHistoryAction{
		Action:      domain.StudentActionTransferred,
		FromGroupID: &fromGroup.ID,
		ToGroupID:   &toGroup.ID,
		Description: fmt.Sprintf("Transferred from group %s to group %s", fromGroup.Name, toGroup.Name),
	}
	if err := appendStudentHistory(ctx, tx, studentEmail, action); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// RemoveStudent 把学员移出训练组并释放名额，移除原因写进学籍历史。
func (r *Repository) RemoveStudent(group *domain.Group, studentEmail, reason string) (*domain.EnrolledStudent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	student := &domain.EnrolledStudent{GroupID: group.ID, StudentEmail: studentEmail}
	query := `
		DELETE FROM enrolled_students
		WHERE group_id = $1 AND student_email = $2
		RETURNING student_name, student_phone
	`
	if err := tx.QueryRowContext(ctx, query, group.ID, studentEmail).Scan(&student.StudentName, &student.StudentPhone); err != nil {
		return nil, err
	}

	query = `
		UPDATE groups
		SET seats = seats + 1, version = version + 1
		WHERE id = $1
		RETURNING seats, version
	`
	if err := tx.QueryRowContext(ctx, query, group.ID).Scan(&group.Seats, &group.Version); err != nil {
		return nil, err
	}

	action := domain.StudentHistoryAction{
		Action:      domain.StudentActionRemoved,
		FromGroupID: &group.ID,
		Description: fmt.Sprintf("Removed from group %s for reason: %s", group.Name, reason),
	}
	if err := appendStudentHistory(ctx, tx, studentEmail, action); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return student, nil
}

func (r *Repository) GetStudentHistory(studentEmail string) (*domain.StudentHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			sh.id,
			sh.created_at,
			sha.action,
			sha.from_group_id,
			sha.to_group_id,
			sha.date,
			sha.description
		FROM student_history sh
		LEFT JOIN student_history_actions sha ON sh.id = sha.history_id
		WHERE sh.student_email = $1
		ORDER BY sha.date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, studentEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := &domain.StudentHistory{
		StudentEmail: studentEmail,
		Actions:      make([]domain.StudentHistoryAction, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			ID        int64
			CreatedAt time.Time

			Action      sql.NullString
			FromGroupID sql.NullInt64
			ToGroupID   sql.NullInt64
			Date        sql.NullTime
			Description sql.NullString
		}

		dst := []any{&row.ID, &row.CreatedAt, &row.Action, &row.FromGroupID, &row.ToGroupID, &row.Date, &row.Description}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			history.ID = row.ID
			history.CreatedAt = row.CreatedAt
			found = true
		}

		if !row.Action.Valid {
			continue
		}

		action := domain.StudentHistoryAction{
			Action:      domain.StudentAction(row.Action.String),
			Date:        row.Date.Time,
			Description: row.Description.String,
		}
		if row.FromGroupID.Valid {
			fromGroupID := row.FromGroupID.Int64
			action.FromGroupID = &fromGroupID
		}
		if row.ToGroupID.Valid {
			toGroupID := row.ToGroupID.Int64
			action.ToGroupID = &toGroupID
		}

		history.Actions = append(history.Actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return history, nil
}
