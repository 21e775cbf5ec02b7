package dto

// TeamInviteDTO is the payload of POST /team/members.
type TeamInviteDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// TeamMemberDTO is one member of an Enterprise team.
type TeamMemberDTO struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
