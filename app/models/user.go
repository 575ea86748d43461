package models

// Role is the permission level of a user. The store only accepts the two
// values below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account allowed to sign in. Password holds the bcrypt hash,
// never the plaintext.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"uniqueIndex:idx_users_username;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"not null;check:chk_users_role,role IN ('admin','user')" json:"role"`
}
