// Package userrepo persists user accounts with GORM. Emails are stored
// normalized under a unique index.
package userrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the "users" row.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(32)"`
	Address      string    `gorm:"type:text"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	IsBlocked    bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		Phone:        u.Phone(),
		Address:      u.Address(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsBlocked:    u.IsBlocked(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.Snapshot{
		ID: id,
		Profile: user.Profile{
			Name:    dto.Name,
			Email:   dto.Email,
			Phone:   dto.Phone,
			Address: dto.Address,
		},
		PasswordHash: dto.PasswordHash,
		Role:         user.Role(dto.Role),
		Blocked:      dto.IsBlocked,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
