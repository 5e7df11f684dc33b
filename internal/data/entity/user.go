package entity

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleWasher UserRole = "washer"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	Address      *string  `db:"address"`
	IsActive     bool     `db:"is_active"`
}
