package dto

type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type AccessResponse struct {
	OrgID     string `json:"org_id"`
	HasAccess bool   `json:"has_access"`
}
