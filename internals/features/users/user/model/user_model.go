package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cems_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"column:user_full_name;size:100;not null" json:"full_name"`
	Email     string    `gorm:"column:user_email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:user_password;not null" json:"-"`
	Role      string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"role"`
	CreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate mengisi UUID saat database tidak punya gen_random_uuid (mis. sqlite test)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleStudent.String()
	}
	return nil
}
