package models

type User struct {
	Base
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role"` // "admin", "staff"
}
