package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table.
// Password is nullable so social-login accounts can exist without one.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       *string   `gorm:"type:text" json:"-"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'patient';index" json:"role"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address        string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`
	GoogleID       *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	FacebookID     *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	AppleID        *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	ProfilePicture string    `gorm:"type:varchar(512)" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDoctor checks if the user has the doctor role
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsPatient checks if the user has the patient role
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
