package db

// Token is the persisted token record. There is at most one row; ExpiresAt is
// the absolute expiry of the access token in RFC3339.
type Token struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// Identity is the persisted profile of the logged-in user. There is at most
// one row; it lives and dies together with the token record.
type Identity struct {
	ID                uint   `gorm:"primaryKey" json:"-"`
	UserID            string `json:"user_id,omitempty"`
	UserName          string `json:"user_name,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	OrganizationID    string `json:"organization_id,omitempty"`
	OrganizationName  string `json:"organization_name,omitempty"`
	Email             string `json:"email,omitempty"`
	BranchName        string `json:"branch_name,omitempty"`
	BaseCurrency      string `json:"base_currency,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}
