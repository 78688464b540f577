package domain

import "time"

// Gender values accepted on the admission form.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// Valid reports whether g is an accepted value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// StudyDegree enumerates the programme levels on offer.
type StudyDegree string

const (
	StudyDegreeS1 StudyDegree = "S1"
	StudyDegreeS2 StudyDegree = "S2"
	StudyDegreeD3 StudyDegree = "D3"
)

// Valid reports whether d is offered.
func (d StudyDegree) Valid() bool {
	switch d {
	case StudyDegreeS1, StudyDegreeS2, StudyDegreeD3:
		return true
	}
	return false
}

// Intake is the admission period within an academic year.
type Intake string

const (
	IntakeOdd  Intake = "Ganjil"
	IntakeEven Intake = "Genap"
)

func (i Intake) Valid() bool {
	return i == IntakeOdd || i == IntakeEven
}

// Applicant is a submitted admission form.
type Applicant struct {
	ID             string
	FullName       string
	Email          string
	Phone          string
	NIK            string
	Gender         Gender
	BirthPlace     string
	BirthDate      string
	Address        string
	HighSchool     string
	GraduationYear int
	StudyProgram   string
	StudyDegree    StudyDegree
	Intake         Intake
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
