// Package userrepo stores user accounts as MongoDB documents.
package userrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
)

// CollectionName is the collection holding user documents.
const CollectionName = "users"

type UserDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Phone        string    `bson:"phone,omitempty"`
	Address      string    `bson:"address,omitempty"`
	PasswordHash string    `bson:"passwordHash"`
	Role         string    `bson:"role"`
	IsBlocked    bool      `bson:"isBlocked"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func fromDomain(u *user.User) UserDocument {
	return UserDocument{
		ID:           u.ID().String(),
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

func toDomain(doc UserDocument) (*user.User, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.Snapshot{
		ID: id,
		Profile: user.Profile{
			Name:    doc.Name,
			Email:   doc.Email,
			Phone:   doc.Phone,
			Address: doc.Address,
		},
		PasswordHash: doc.PasswordHash,
		Role:         user.Role(doc.Role),
		Blocked:      doc.IsBlocked,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	})
}
