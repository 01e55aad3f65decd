package domain

import "time"

// MemberRole defines the roles a member can hold in the organization.
type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

// Member represents a registered choir member in the domain.
type Member struct {
	MemberID     string     `json:"memberID"` // Primary Key (UUID)
	Name         string     `json:"name"`
	Parish       string     `json:"parish"`
	PartYouSing  string     `json:"partYouSing"`
	PhoneNumber  string     `json:"phoneNumber"`
	WhereYouLive string     `json:"whereYouLive"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         MemberRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
