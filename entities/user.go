package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Role     string    `json:"role"`

	Orders []*Order `gorm:"foreignKey:UserID"`
	Timestamp
}
