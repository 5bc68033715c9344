package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `gorm:"size:150" json:"-"`
	IsStaff   bool      `json:"-"`
	AvatarURL string    `json:"avatar_url,omitempty"`

	Timestamp
}

// Follow is a soft-flag relationship row: unfollowing flips Active to false,
// the row itself is never deleted. Unique per (follower, following).
type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID  uuid.UUID `gorm:"uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"uniqueIndex:idx_follower_following;check:chk_no_self_follow,follower_id <> following_id" json:"following_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"created_at"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
