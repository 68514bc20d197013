package models

// Banner is an admin-managed promotional banner, optionally targeting a
// single company.
type Banner struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	ImageURL        string `json:"image_url"`
	TargetCompanyID *int   `json:"target_company_id"`
}
