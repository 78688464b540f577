package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/spec-kit/admission-service/internal/domain"
)

// Listing bounds for applicant queries.
const (
	DefaultApplicantLimit = 100
	MaxApplicantLimit     = 500
)

// ApplicantRepository encapsulates admission form persistence.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *domain.Applicant) error
	List(ctx context.Context, limit int) ([]domain.Applicant, error)
}

type applicantRepository struct {
	db DBTX
}

// NewApplicantRepository instantiates repository.
func NewApplicantRepository(db DBTX) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *domain.Applicant) error {
	const query = `
        INSERT INTO applicants (full_name, email, phone, nik, gender, birth_place, birth_date, address,
            high_school, graduation_year, study_program, study_degree, intake, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		applicant.FullName,
		applicant.Email,
		applicant.Phone,
		applicant.NIK,
		applicant.Gender,
		applicant.BirthPlace,
		applicant.BirthDate,
		applicant.Address,
		applicant.HighSchool,
		applicant.GraduationYear,
		applicant.StudyProgram,
		applicant.StudyDegree,
		applicant.Intake,
		applicant.Notes,
	).Scan(&applicant.ID, &applicant.CreatedAt, &applicant.UpdatedAt)
	if err != nil {
		return oops.Code("APPLICANT_CREATE_FAILED").
			With("operation", "insert applicant").
			Wrap(err)
	}
	applicant.CreatedAt = applicant.CreatedAt.UTC()
	applicant.UpdatedAt = applicant.UpdatedAt.UTC()
	return nil
}

// List returns the newest submissions first. limit is clamped to
// [1, MaxApplicantLimit]; zero or negative selects DefaultApplicantLimit.
func (r *applicantRepository) List(ctx context.Context, limit int) ([]domain.Applicant, error) {
	const query = `
        SELECT id, full_name, email, phone, nik, gender, birth_place, birth_date, address,
               high_school, graduation_year, study_program, study_degree, intake, notes,
               created_at, updated_at
        FROM applicants
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.db.Query(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, oops.Code("APPLICANT_LIST_FAILED").With("limit", limit).Wrap(err)
	}
	defer rows.Close()

	applicants, err := scanApplicants(rows)
	if err != nil {
		return nil, oops.Code("APPLICANT_LIST_FAILED").With("limit", limit).Wrap(err)
	}
	return applicants, nil
}

// ClampLimit normalizes a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultApplicantLimit
	case limit > MaxApplicantLimit:
		return MaxApplicantLimit
	default:
		return limit
	}
}

func scanApplicants(rows pgx.Rows) ([]domain.Applicant, error) {
	result := []domain.Applicant{}
	for rows.Next() {
		var applicant domain.Applicant
		if err := rows.Scan(
			&applicant.ID,
			&applicant.FullName,
			&applicant.Email,
			&applicant.Phone,
			&applicant.NIK,
			&applicant.Gender,
			&applicant.BirthPlace,
			&applicant.BirthDate,
			&applicant.Address,
			&applicant.HighSchool,
			&applicant.GraduationYear,
			&applicant.StudyProgram,
			&applicant.StudyDegree,
			&applicant.Intake,
			&applicant.Notes,
			&applicant.CreatedAt,
			&applicant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applicant.CreatedAt = applicant.CreatedAt.UTC()
		applicant.UpdatedAt = applicant.UpdatedAt.UTC()
		result = append(result, applicant)
	}
	return result, rows.Err()
}
