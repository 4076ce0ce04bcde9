package model

import "time"

// OtpCode is a one-time email verification code issued at
// registration. Codes are single use and expire.
type OtpCode struct {
	BaseModel
	Email     string    `gorm:"column:email;index;type:varchar(255)" json:"email"`
	Code      string    `gorm:"column:code;index;type:varchar(16)" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expiresAt"`
	IsUsed    bool      `gorm:"column:is_used" json:"isUsed"`
}

func (OtpCode) TableName() string {
	return "t_otp_code"
}
