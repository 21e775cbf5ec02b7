package model

import "time"

// User is a profile row in the hosted database.
type User struct {
	UserID    string    `db:"id" json:"user_id"`
	Email     string    `db:"email" json:"email"`
	Tier      Tier      `db:"tier" json:"tier"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeamMember is a row in the team_members table, owned by an Enterprise admin.
type TeamMember struct {
	AdminID  string `db:"admin_id" json:"admin_id"`
	MemberID string `db:"member_id" json:"member_id"`
	Email    string `db:"member_email" json:"email"`
	Role     string `db:"role" json:"role"`
}

// MaxTeamMembers caps an Enterprise team.
const MaxTeamMembers = 10
