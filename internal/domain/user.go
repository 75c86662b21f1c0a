package domain

import "time"

// User is an identity-provider account mirrored locally. Users are never
// deleted; they are upserted on sight and their admin flag is toggled by a
// super admin.
type User struct {
	ID              string    `json:"id" db:"id"`
	Email           *string   `json:"email" db:"email"`
	FirstName       *string   `json:"firstName" db:"first_name"`
	LastName        *string   `json:"lastName" db:"last_name"`
	ProfileImageURL *string   `json:"profileImageUrl" db:"profile_image_url"`
	IsAdmin         bool      `json:"isAdmin" db:"is_admin"`
	IsSuperAdmin    bool      `json:"isSuperAdmin" db:"is_super_admin"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// UserUpsert inserts a user or, on id conflict, overwrites only the supplied
// fields.
type UserUpsert struct {
	ID              string
	Email           Field[string]
	FirstName       Field[string]
	LastName        Field[string]
	ProfileImageURL Field[string]
	IsAdmin         Field[bool]
	IsSuperAdmin    Field[bool]
}

func (u UserUpsert) Assignments() []Assignment {
	var out []Assignment
	out = appendAssignment(out, "email", u.Email)
	out = appendAssignment(out, "first_name", u.FirstName)
	out = appendAssignment(out, "last_name", u.LastName)
	out = appendAssignment(out, "profile_image_url", u.ProfileImageURL)
	out = appendAssignment(out, "is_admin", u.IsAdmin)
	out = appendAssignment(out, "is_super_admin", u.IsSuperAdmin)
	return out
}

func (u UserUpsert) ApplyTo(user *User) {
	u.Email.assignPtr(&user.Email)
	u.FirstName.assignPtr(&user.FirstName)
	u.LastName.assignPtr(&user.LastName)
	u.ProfileImageURL.assignPtr(&user.ProfileImageURL)
	u.IsAdmin.assignTo(&user.IsAdmin)
	u.IsSuperAdmin.assignTo(&user.IsSuperAdmin)
}
