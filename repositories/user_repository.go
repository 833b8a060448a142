package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mikczynski/werble-backend/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs batch-loads users so callers can resolve owner logins for a whole
// collection in one query instead of one lookup per event.
func (r *UserRepository) FindByIDs(ctx context.Context, userIDs []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	var rows []models.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

func (r *UserRepository) UpdatePosition(ctx context.Context, userID string, latitude, longitude float64) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"latitude": latitude, "longitude": longitude}).Error
}
