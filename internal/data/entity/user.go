package entity

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleConductor UserRole = "conductor"
)

// User is a staff account (admin or conductor login).
type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
