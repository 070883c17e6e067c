package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Doctor represents doctor-specific profile data, one-to-one with User.
// AvailableDays holds a JSON array of weekday names.
type Doctor struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Specialty               string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Qualification           string          `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	Experience              int             `gorm:"default:0" json:"experience"`
	LicenseNumber           string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	ConsultationFee         decimal.Decimal `gorm:"type:decimal(10,2)" json:"consultation_fee"`
	AvailableDays           datatypes.JSON  `gorm:"type:jsonb" json:"available_days,omitempty"`
	AvailableTimeStart      string          `gorm:"type:time" json:"available_time_start,omitempty"`
	AvailableTimeEnd        string          `gorm:"type:time" json:"available_time_end,omitempty"`
	IsAvailableForVideoCall bool            `gorm:"not null;default:true" json:"is_available_for_video_call"`
	Bio                     string          `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt               time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
