package userrepo

import (
	"context"
	"errors"
	"fmt"

	"feedme/internal/adapters/out/postgres/listquery"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"gorm.io/gorm"
)

var userTable = listquery.Table{
	Schema: ports.UserSchema,
	Columns: map[string]listquery.Column{
		"name":      {Name: "name"},
		"email":     {Name: "email", Convert: normalizedEmail},
		"role":      {Name: "role", Convert: roleName},
		"isBlocked": {Name: "is_blocked"},
		"createdAt": {Name: "created_at"},
	},
	KeyColumn: "id",
}

func normalizedEmail(v any) (any, bool) {
	raw, ok := v.(string)
	return user.NormalizeEmail(raw), ok
}

func roleName(v any) (any, bool) {
	raw, ok := v.(string)
	if !ok {
		return nil, false
	}
	role, err := user.ParseRole(raw)
	if err != nil {
		return nil, false
	}
	return role.String(), true
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new user. A taken email is a conflict.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("email", fmt.Errorf("%s is already registered", dto.Email))
		}
		return err
	}
	return nil
}

// Update saves profile, role and blocked flag.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":       dto.Name,
		"phone":      dto.Phone,
		"address":    dto.Address,
		"role":       dto.Role,
		"is_blocked": dto.IsBlocked,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&UserDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	return nil
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "user", id.String(), "id = ?", id.Bytes())
}

// GetByEmail retrieves a user by normalized email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.first(ctx, "email", email, "email = ?", email)
}

// List runs a list query over users.
func (r *GormUserRepository) List(ctx context.Context, query querybuilder.Query) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserDTO{}).Scopes(userTable.Filter(query)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).
		Scopes(userTable.Filter(query), userTable.Paginate(query)).
		Find(&dtos).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, nil
}

func (r *GormUserRepository) first(ctx context.Context, param, key string, condition string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(condition, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}
