package domain

import "time"

// Role роль пользователя
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// User запись справочника пользователей
type User struct {
	ID        int64
	Email     string
	Role      Role
	CreatedAt time.Time
}
