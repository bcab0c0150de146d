package dto

type VerifyVeteranRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	BirthDate   string `json:"birthDate" validate:"required"`
	SSN         string `json:"ssn" validate:"required"`
	Gender      string `json:"gender"`
	MiddleName  string `json:"middleName"`
	StreetLine1 string `json:"streetAddressLine1"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

type FacilityQuery struct {
	State   string `query:"state"`
	Zip     string `query:"zip"`
	Type    string `query:"type"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}
