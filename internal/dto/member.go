package dto

// RegisterMemberRequest carries the choir registration form.
type RegisterMemberRequest struct {
	Name         string `json:"name" binding:"required,min=2"`
	Parish       string `json:"parish" binding:"required"`
	PartYouSing  string `json:"partYouSing" binding:"required,voicepart"`
	PhoneNumber  string `json:"phoneNumber" binding:"required,numeric,min=10,max=15"`
	WhereYouLive string `json:"whereYouLive" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
}

// UpdateMemberRequest defines the data allowed for updating a member.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateMemberRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2"`
	Parish       *string `json:"parish"`
	PartYouSing  *string `json:"partYouSing" binding:"omitempty,voicepart"`
	PhoneNumber  *string `json:"phoneNumber" binding:"omitempty,numeric,min=10,max=15"`
	WhereYouLive *string `json:"whereYouLive"`
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
