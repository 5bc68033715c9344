package user

import (
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		GetFollow(ctx context.Context, followerID, followingID uuid.UUID) (*entities.Follow, error)
		SetFollowActive(ctx context.Context, followID uuid.UUID, active bool) error
		ActivateFollow(ctx context.Context, followerID, followingID uuid.UUID) error
		IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
		GetFollowedUsers(ctx context.Context, followerID string, page, limit int) ([]*entities.User, int64, error)

		GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("username desc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) GetFollow(ctx context.Context, followerID, followingID uuid.UUID) (*entities.Follow, error) {
	var follow entities.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *userRepository) SetFollowActive(ctx context.Context, followID uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("id = ?", followID).
		Update("active", active).Error
}

// ActivateFollow finds or creates the unique (follower, following) row and
// sets it active. The unique index arbitrates concurrent toggles: a create
// that loses the race flips the row the winner created.
func (r *userRepository) ActivateFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	var existing entities.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error

	if err == nil {
		return r.SetFollowActive(ctx, existing.ID, true)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	follow := entities.Follow{
		ID:          uuid.New(),
		FollowerID:  followerID,
		FollowingID: followingID,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	createErr := r.db.WithContext(ctx).Create(&follow).Error
	if createErr == nil {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error; err != nil {
		return createErr
	}
	return r.SetFollowActive(ctx, existing.ID, true)
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ? AND following_id = ? AND active = ?", followerID, followingID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetFollowedUsers(ctx context.Context, followerID string, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entities.User{}).
			Joins("JOIN follows ON follows.following_id = users.id").
			Where("follows.follower_id = ? AND follows.active = ?", followerID, true)
	}

	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base().
		Offset(offset).
		Limit(limit).
		Order("follows.created_at desc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *userRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
