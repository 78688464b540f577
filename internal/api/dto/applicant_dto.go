package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/admission-service/internal/domain"
)

const birthDateLayout = "2006-01-02"

// ApplicantRequest is the admission form payload.
type ApplicantRequest struct {
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	NIK            string  `json:"nik"`
	Gender         string  `json:"gender"`
	BirthPlace     string  `json:"birth_place"`
	BirthDate      string  `json:"birth_date"`
	Address        string  `json:"address"`
	HighSchool     string  `json:"high_school"`
	GraduationYear int     `json:"graduation_year"`
	StudyProgram   string  `json:"study_program"`
	StudyDegree    string  `json:"study_degree"`
	Intake         string  `json:"intake"`
	Notes          *string `json:"notes"`
}

// Validate checks field constraints.
func (r ApplicantRequest) Validate() error {
	errs := fieldErrors{}
	errs.length("full_name", r.FullName, 3, 120)
	errs.email("email", r.Email)
	errs.length("phone", r.Phone, 8, 20)
	errs.length("nik", r.NIK, 8, 32)
	errs.oneOf("gender", domain.Gender(r.Gender).Valid(), string(domain.GenderMale), string(domain.GenderFemale))
	errs.length("birth_place", r.BirthPlace, 2, 80)
	if _, err := time.Parse(birthDateLayout, r.BirthDate); err != nil {
		errs["birth_date"] = "must be a date formatted YYYY-MM-DD"
	}
	errs.length("address", r.Address, 5, 200)
	errs.length("high_school", r.HighSchool, 3, 120)
	if r.GraduationYear < 2000 || r.GraduationYear > 2100 {
		errs["graduation_year"] = "must be between 2000 and 2100"
	}
	errs.length("study_program", r.StudyProgram, 1, 120)
	errs.oneOf("study_degree", domain.StudyDegree(r.StudyDegree).Valid(),
		string(domain.StudyDegreeS1), string(domain.StudyDegreeS2), string(domain.StudyDegreeD3))
	errs.oneOf("intake", domain.Intake(r.Intake).Valid(), string(domain.IntakeOdd), string(domain.IntakeEven))
	if r.Notes != nil {
		errs.length("notes", *r.Notes, 0, 300)
	}
	return errs.err()
}

// ToDomain maps the payload, trimming free-text fields.
func (r ApplicantRequest) ToDomain() *domain.Applicant {
	var notes *string
	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}
	return &domain.Applicant{
		FullName:       strings.TrimSpace(r.FullName),
		Email:          r.Email,
		Phone:          strings.TrimSpace(r.Phone),
		NIK:            strings.TrimSpace(r.NIK),
		Gender:         domain.Gender(r.Gender),
		BirthPlace:     strings.TrimSpace(r.BirthPlace),
		BirthDate:      r.BirthDate,
		Address:        strings.TrimSpace(r.Address),
		HighSchool:     strings.TrimSpace(r.HighSchool),
		GraduationYear: r.GraduationYear,
		StudyProgram:   strings.TrimSpace(r.StudyProgram),
		StudyDegree:    domain.StudyDegree(r.StudyDegree),
		Intake:         domain.Intake(r.Intake),
		Notes:          notes,
	}
}

// ApplicantCreatedResponse acknowledges a stored form.
type ApplicantCreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ApplicantResponse is the admin view of a submitted form.
type ApplicantResponse struct {
	ID             string             `json:"id"`
	FullName       string             `json:"full_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	NIK            string             `json:"nik"`
	Gender         domain.Gender      `json:"gender"`
	BirthPlace     string             `json:"birth_place"`
	BirthDate      string             `json:"birth_date"`
	Address        string             `json:"address"`
	HighSchool     string             `json:"high_school"`
	GraduationYear int                `json:"graduation_year"`
	StudyProgram   string             `json:"study_program"`
	StudyDegree    domain.StudyDegree `json:"study_degree"`
	Intake         domain.Intake      `json:"intake"`
	Notes          *string            `json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NewApplicantResponses maps domain applicants; never returns nil.
func NewApplicantResponses(items []domain.Applicant) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ApplicantResponse{
			ID:             a.ID,
			FullName:       a.FullName,
			Email:          a.Email,
			Phone:          a.Phone,
			NIK:            a.NIK,
			Gender:         a.Gender,
			BirthPlace:     a.BirthPlace,
			BirthDate:      a.BirthDate,
			Address:        a.Address,
			HighSchool:     a.HighSchool,
			GraduationYear: a.GraduationYear,
			StudyProgram:   a.StudyProgram,
			StudyDegree:    a.StudyDegree,
			Intake:         a.Intake,
			Notes:          a.Notes,
			CreatedAt:      a.CreatedAt,
		})
	}
	return out
}
