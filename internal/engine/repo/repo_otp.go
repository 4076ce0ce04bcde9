package repo

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type IOtpRepository interface {
	CreateOtp(code *model.OtpCode) error
	// GetValidOtp returns (nil, nil) when no unused, unexpired code
	// matches.
	GetValidOtp(email, code string) (*model.OtpCode, error)
	MarkOtpUsed(id uint64) error
}

type OtpRepo struct {
	db *gorm.DB
}

func NewOtpRepo(db *gorm.DB) *OtpRepo {
	return &OtpRepo{db: db}
}

func (r *OtpRepo) CreateOtp(code *model.OtpCode) error {
	return r.db.Create(code).Error
}

func (r *OtpRepo) GetValidOtp(email, code string) (*model.OtpCode, error) {
	var otp model.OtpCode
	return firstOrNil(r.db.Where("email = ? AND code = ? AND is_used = ? AND expires_at > ?",
		email, code, false, time.Now()), &otp)
}

func (r *OtpRepo) MarkOtpUsed(id uint64) error {
	return r.db.Model(&model.OtpCode{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}
