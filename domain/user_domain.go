package domain

import "fmt"

var (
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessGetUserDetail    = "success get user detail"
	MessageSuccessSetPassword      = "password updated successfully"
	MessageSuccessSubscribe        = "subscription updated successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageSuccessUpdateAvatar     = "avatar updated successfully"
	MessageSuccessDeleteAvatar     = "avatar deleted successfully"

	MessageFailedGetUsers         = "failed to get users"
	MessageFailedGetUserDetail    = "failed to get user detail"
	MessageFailedSetPassword      = "failed to update password"
	MessageFailedSubscribe        = "failed to update subscription"
	MessageFailedGetSubscriptions = "failed to get subscriptions"
	MessageFailedUpdateAvatar     = "failed to update avatar"
	MessageFailedDeleteAvatar     = "failed to delete avatar"

	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrSelfFollow     = fmt.Errorf("%w: cannot subscribe to yourself", ErrValidation)
	ErrFollowNotFound = fmt.Errorf("%w: subscription does not exist", ErrNotFound)
	ErrWrongPassword  = fmt.Errorf("%w: current password is incorrect", ErrValidation)
	ErrAvatarNotFound = fmt.Errorf("%w: user has no avatar", ErrNotFound)
	ErrInvalidAvatar  = fmt.Errorf("%w: avatar must be base64 encoded", ErrValidation)
)

type (
	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
	}

	SetAvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
		AvatarURL    string `json:"avatar,omitempty"`
	}

	// SubscriptionResponse is a followed user together with a capped list of
	// their recipes and the total recipe count.
	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeShortResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
