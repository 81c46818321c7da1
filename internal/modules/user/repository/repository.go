package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"desideri.com/pugliaclub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCardCodeAttempts = 8

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	AssignClubCardCode(ctx context.Context, user *entity.User) error
	FindAll(ctx context.Context) ([]entity.User, error)
	Search(ctx context.Context, query string, limit int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	var users []entity.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AssignClubCardCode gives the user a fresh unique DP-XXXX code.
func (r *userRepository) AssignClubCardCode(ctx context.Context, user *entity.User) error {
	for attempt := 0; attempt < maxCardCodeAttempts; attempt++ {
		code := entity.NewClubCardCode()

		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.User{}).
			Where("club_card_code = ?", code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if user.ID != uuid.Nil {
			res := r.db.WithContext(ctx).Model(&entity.User{}).
				Where("id = ? AND club_card_code IS NULL", user.ID).
				Update("club_card_code", code)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Someone else assigned a code concurrently; reload it.
				var existing entity.User
				if err := r.db.WithContext(ctx).Select("club_card_code").Where("id = ?", user.ID).First(&existing).Error; err != nil {
					return err
				}
				user.ClubCardCode = existing.ClubCardCode
				return nil
			}
		}

		user.ClubCardCode = &code
		return nil
	}
	return errors.New("could not allocate a unique club card code")
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]entity.User, error) {
	var users []entity.User
	pattern := fmt.Sprintf("%%%s%%", strings.ToLower(strings.TrimSpace(query)))
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
