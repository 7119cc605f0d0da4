package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func (r *Repository) CreateApplicant(applicant *domain.Applicant) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO applicants (name, email, cv_url, status, interviewer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, feedback, created_at, version
	`

	args := []any{applicant.Name, applicant.Email, applicant.CVURL, applicant.Status, applicant.Interviewer}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&applicant.ID, &applicant.Feedback, &applicant.CreatedAt, &applicant.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllApplicants() ([]*domain.Applicant, error) {
	query := `
		SELECT id, name, email, cv_url, status, interview_date, feedback, meeting_link, interviewer, created_at, version
		FROM applicants
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applicants := make([]*domain.Applicant, 0)
	for rows.Next() {
		applicant := &domain.Applicant{}
		var interviewDate sql.NullTime
		var meetingLink, interviewer sql.NullString

		dst := []any{&applicant.ID, &applicant.Name, &applicant.Email, &applicant.CVURL, &applicant.Status, &interviewDate, &applicant.Feedback, &meetingLink, &interviewer, &applicant.CreatedAt, &applicant.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if interviewDate.Valid {
			applicant.InterviewDate = &interviewDate.Time
		}
		applicant.MeetingLink = meetingLink.String
		applicant.Interviewer = interviewer.String

		applicants = append(applicants, applicant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applicants, nil
}

func (r *Repository) GetApplicantsByIDs(ids []int64) ([]*domain.Applicant, error) {
	query := `
		SELECT id, name, email, cv_url, status, interview_date, feedback, meeting_link, interviewer, created_at, version
		FROM applicants
		WHERE id = ANY($1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applicants := make([]*domain.Applicant, 0, len(ids))
	for rows.Next() {
		applicant := &domain.Applicant{}
		var interviewDate sql.NullTime
		var meetingLink, interviewer sql.NullString

		dst := []any{&applicant.ID, &applicant.Name, &applicant.Email, &applicant.CVURL, &applicant.Status, &interviewDate, &applicant.Feedback, &meetingLink, &interviewer, &applicant.CreatedAt, &applicant.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if interviewDate.Valid {
			applicant.InterviewDate = &interviewDate.Time
		}
		applicant.MeetingLink = meetingLink.String
		applicant.Interviewer = interviewer.String

		applicants = append(applicants, applicant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applicants, nil
}

// UpdateApplicantsStatus 批量修改申请人的状态，返回实际被修改的行数。
func (r *Repository) UpdateApplicantsStatus(ids []int64, status domain.ApplicantStatus) (int64, error) {
	query := `
		UPDATE applicants
		SET status = $1, version = version + 1
		WHERE id = ANY($2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, status, ids)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
