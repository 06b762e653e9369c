package models

import "biorhythms-server/biorhythm"

// BirthDateRequest is the body of PUT /v1/birthdate.
type BirthDateRequest struct {
	BirthDate *biorhythm.Date `json:"birth_date"`
}

type BirthDateResponse struct {
	BirthDate biorhythm.Date `json:"birth_date"`
}
