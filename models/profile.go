package models

// SupplierProfile is the seller's own account card.
type SupplierProfile struct {
	ID           string  `json:"id"`
	CompanyName  string  `json:"company_name"`
	ContactEmail string  `json:"contact_email"`
	Phone        string  `json:"phone"`
	City         string  `json:"city"`
	Description  string  `json:"description"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	Phone        string `json:"phone" binding:"max=32"`
	City         string `json:"city"`
	Description  string `json:"description"`
}
