package ehr

// Upstream DTO shapes. Fields the upstream sometimes omits are modeled
// explicitly (pointers or zero values handled by the mappers) rather than
// probed dynamically.

type healthPlanDTO struct {
	Name string `json:"name"`
	Plan string `json:"plan,omitempty"`
}

type patientDTO struct {
	UserID      int64           `json:"userId"`
	Name        string          `json:"name"`
	LastName    string          `json:"lastName"`
	Document    string          `json:"document"`
	BirthDate   string          `json:"birthDate"`
	Gender      string          `json:"gender"`
	BloodType   string          `json:"bloodType,omitempty"`
	RhFactor    string          `json:"rhFactor,omitempty"`
	HealthPlans []healthPlanDTO `json:"healthPlans,omitempty"`
}

type dataTypeDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type antecedenteDTO struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Value        string       `json:"value"`
	Observations string       `json:"observations,omitempty"`
	DataType     *dataTypeDTO `json:"dataType,omitempty"`
}

type specialityDTO struct {
	Name string `json:"name"`
}

type doctorDTO struct {
	Name         string          `json:"name"`
	LastName     string          `json:"lastName"`
	Specialities []specialityDTO `json:"specialities,omitempty"`
}

type evolucionFieldDTO struct {
	FieldName string `json:"fieldName"`
	Value     string `json:"value"`
}

type evolucionDTO struct {
	ID     int64               `json:"id"`
	Date   string              `json:"date"`
	Data   []evolucionFieldDTO `json:"data"`
	Doctor *doctorDTO          `json:"doctor,omitempty"`
}

type medicationDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
}

type studyDTO struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Type string `json:"type"`
}

type bloodTestDTO struct {
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	ReferenceValue string `json:"referenceValue"`
}

type labRowDTO struct {
	ID        int64        `json:"id"`
	StudyID   int64        `json:"studyId"`
	BloodTest bloodTestDTO `json:"bloodTest"`
	Value     string       `json:"value"`
}

type searchRowDTO struct {
	UserID      int64           `json:"userId"`
	Name        string          `json:"name"`
	LastName    string          `json:"lastName"`
	BirthDate   string          `json:"birthDate"`
	HealthPlans []healthPlanDTO `json:"healthPlans,omitempty"`
}

type loginResponseDTO struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"accessToken"`
	AccessSnake string   `json:"access_token"`
	FirstName   string   `json:"firstName"`
	Name        string   `json:"name"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"roles"`
}
