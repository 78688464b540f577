package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admission-service/internal/domain"
)

var applicantRowColumns = []string{
	"id", "full_name", "email", "phone", "nik", "gender", "birth_place", "birth_date", "address",
	"high_school", "graduation_year", "study_program", "study_degree", "intake", "notes",
	"created_at", "updated_at",
}

func sampleApplicant() *domain.Applicant {
	notes := "beasiswa"
	return &domain.Applicant{
		FullName:       "Siti Rahma",
		Email:          "siti@example.com",
		Phone:          "081234567890",
		NIK:            "3171234567890001",
		Gender:         domain.GenderFemale,
		BirthPlace:     "Jakarta",
		BirthDate:      "2006-04-12",
		Address:        "Jl. Meruya Selatan No. 1",
		HighSchool:     "SMA Negeri 1 Jakarta",
		GraduationYear: 2024,
		StudyProgram:   "Teknik Informatika",
		StudyDegree:    domain.StudyDegreeS1,
		Intake:         domain.IntakeOdd,
		Notes:          &notes,
	}
}

func TestApplicantRepository_Create(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := sampleApplicant()

	t.Run("inserts applicant", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`INSERT INTO applicants`).
			WithArgs(a.FullName, a.Email, a.Phone, a.NIK, a.Gender, a.BirthPlace, a.BirthDate, a.Address,
				a.HighSchool, a.GraduationYear, a.StudyProgram, a.StudyDegree, a.Intake, a.Notes).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("app-1", now, now))

		applicant := sampleApplicant()
		require.NoError(t, NewApplicantRepository(mock).Create(context.Background(), applicant))
		assert.Equal(t, "app-1", applicant.ID)
		assert.Equal(t, now, applicant.CreatedAt)
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`INSERT INTO applicants`).
			WithArgs(a.FullName, a.Email, a.Phone, a.NIK, a.Gender, a.BirthPlace, a.BirthDate, a.Address,
				a.HighSchool, a.GraduationYear, a.StudyProgram, a.StudyDegree, a.Intake, a.Notes).
			WillReturnError(errors.New("disk full"))

		err := NewApplicantRepository(mock).Create(context.Background(), sampleApplicant())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestApplicantRepository_List(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
		rows      int
	}{
		{name: "explicit limit", limit: 2, wantLimit: 2, rows: 2},
		{name: "default limit", limit: 0, wantLimit: DefaultApplicantLimit, rows: 1},
		{name: "clamped limit", limit: 10_000, wantLimit: MaxApplicantLimit, rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			rows := pgxmock.NewRows(applicantRowColumns)
			for i := 0; i < tt.rows; i++ {
				rows.AddRow("app-"+string(rune('a'+i)), "Siti Rahma", "siti@example.com", "081234567890",
					"3171234567890001", domain.GenderFemale, "Jakarta", "2006-04-12", "Jl. Meruya Selatan No. 1",
					"SMA Negeri 1 Jakarta", 2024, "Teknik Informatika", domain.StudyDegreeS1, domain.IntakeOdd,
					(*string)(nil), now, now)
			}
			mock.ExpectQuery(`SELECT .* FROM applicants\s+ORDER BY created_at DESC\s+LIMIT \$1`).
				WithArgs(tt.wantLimit).
				WillReturnRows(rows)

			applicants, err := NewApplicantRepository(mock).List(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, applicants, tt.rows)
			assert.NotNil(t, applicants, "empty result must be an empty slice")
			for _, a := range applicants {
				assert.Nil(t, a.Notes)
				assert.Equal(t, 2024, a.GraduationYear)
			}
		})
	}
}

func TestApplicantRepository_ListError(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM applicants`).
		WithArgs(DefaultApplicantLimit).
		WillReturnError(errors.New("timeout"))

	_, err := NewApplicantRepository(mock).List(context.Background(), -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultApplicantLimit, ClampLimit(0))
	assert.Equal(t, DefaultApplicantLimit, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, MaxApplicantLimit, ClampLimit(MaxApplicantLimit+1))
}
