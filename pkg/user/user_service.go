package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		GetMe(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUserDetail(ctx context.Context, id string, viewerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.UserResponse, int64, error)
		UpdatePassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error
		UpdateAvatar(ctx context.Context, req domain.SetAvatarRequest, userID string) (string, error)
		DeleteAvatar(ctx context.Context, userID string) error
		SetFollow(ctx context.Context, followingID string, followerID string, active bool) (domain.SubscriptionResponse, error)
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	userService struct {
		userRepository UserRepository
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		s3:             s3,
	}
}

func (s *userService) toResponse(ctx context.Context, user *entities.User, viewerID string) domain.UserResponse {
	res := domain.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
	}

	if viewerID != "" && viewerID != res.ID {
		if following, err := s.userRepository.IsFollowing(ctx, viewerID, res.ID); err == nil {
			res.IsSubscribed = following
		}
	}

	return res
}

func (s *userService) GetMe(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return s.toResponse(ctx, user, ""), nil
}

func (s *userService) GetUserDetail(ctx context.Context, id string, viewerID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return s.toResponse(ctx, user, viewerID), nil
}

func (s *userService) GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		res = append(res, s.toResponse(ctx, user, viewerID))
	}
	return res, count, nil
}

func (s *userService) UpdatePassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) UpdateAvatar(ctx context.Context, req domain.SetAvatarRequest, userID string) (string, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	data, contentType, ext, err := utils.DecodeBase64Image(req.Avatar)
	if err != nil {
		return "", domain.ErrInvalidAvatar
	}

	fileName := fmt.Sprintf("%s%s", user.ID.String(), ext)
	objectKey, err := s.s3.UploadObject(fileName, data, contentType, "avatars", storage.AllowImage...)
	if err != nil {
		return "", err
	}

	user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	return user.AvatarURL, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.AvatarURL == "" {
		return domain.ErrAvatarNotFound
	}

	objectKey := s.s3.GetObjectKeyFromLink(user.AvatarURL)
	if objectKey != "" {
		_ = s.s3.DeleteObject(objectKey)
	}

	user.AvatarURL = ""
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) toSubscription(ctx context.Context, user *entities.User, viewerID string, recipesLimit int) domain.SubscriptionResponse {
	res := domain.SubscriptionResponse{
		UserResponse: s.toResponse(ctx, user, viewerID),
		Recipes:      make([]domain.RecipeShortResponse, 0),
	}

	recipes, err := s.userRepository.GetRecipesByAuthor(ctx, user.ID.String(), recipesLimit)
	if err == nil {
		for _, recipe := range recipes {
			res.Recipes = append(res.Recipes, domain.RecipeShortResponse{
				ID:          recipe.ID.String(),
				Name:        recipe.Name,
				ImageURL:    recipe.ImageURL,
				CookingTime: recipe.CookingTime,
			})
		}
	}

	if count, err := s.userRepository.CountRecipesByAuthor(ctx, user.ID.String()); err == nil {
		res.RecipesCount = count
	}

	return res
}

// SetFollow toggles the soft follow flag on the unique (follower, following)
// row. Self-follow is rejected at this layer as well as by the storage check
// constraint; unfollowing a relation that was never created is a not-found.
func (s *userService) SetFollow(ctx context.Context, followingID string, followerID string, active bool) (domain.SubscriptionResponse, error) {
	if followingID == followerID {
		return domain.SubscriptionResponse{}, domain.ErrSelfFollow
	}

	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	following, err := s.userRepository.GetUserByID(ctx, followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	if active {
		if err := s.userRepository.ActivateFollow(ctx, followerUUID, following.ID); err != nil {
			return domain.SubscriptionResponse{}, err
		}
		return s.toSubscription(ctx, following, followerID, 0), nil
	}

	follow, err := s.userRepository.GetFollow(ctx, followerUUID, following.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrFollowNotFound
		}
		return domain.SubscriptionResponse{}, err
	}
	if err := s.userRepository.SetFollowActive(ctx, follow.ID, false); err != nil {
		return domain.SubscriptionResponse{}, err
	}
	return s.toSubscription(ctx, following, followerID, 0), nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	users, count, err := s.userRepository.GetFollowedUsers(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(users))
	for _, followed := range users {
		res = append(res, s.toSubscription(ctx, followed, userID, recipesLimit))
	}
	return res, count, nil
}
