package models

import "time"

// Roles a user may hold
const (
	RoleStandard     = "standard"
	RoleAdmin        = "admin"
	RolePhotographer = "photographer"
)

// Media kinds
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Notification kinds
const (
	NotificationFollow   = "follow"
	NotificationUnfollow = "unfollow"
)

// User represents a registered account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	Profile   Profile   `json:"profile"`
	Followers []string  `json:"followers"`
	Following []string  `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile holds the optional, user-editable profile attributes
type Profile struct {
	ProfilePicture string `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	CoverPicture   string `json:"coverPicture,omitempty" bson:"coverPicture,omitempty"`
	Phone          string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string `json:"address,omitempty" bson:"address,omitempty"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
	Country        string `json:"country,omitempty" bson:"country,omitempty"`
	City           string `json:"city,omitempty" bson:"city,omitempty"`
	Facebook       string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram      string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter        string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

// UserSummary is the public projection used in follower listings
type UserSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Summary projects a user for follower listings
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.Profile.ProfilePicture}
}

// Author is the denormalized owner of an event
type Author struct {
	Username string `json:"username" bson:"username" validate:"required"`
	UserID   string `json:"userId" bson:"userId" validate:"required"`
}

// Event represents a public or password-protected event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverPhoto  string    `json:"coverPhoto,omitempty"`
	ImageURLs   []string  `json:"imageUrls"`
	VideoURLs   []string  `json:"videoUrls"`
	Author      Author    `json:"author"`
	Private     bool      `json:"private"`
	Password    string    `json:"-"`
	Followers   []string  `json:"followers"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventUpdate describes a partial event mutation. Appends never dedupe.
type EventUpdate struct {
	AppendImages []string
	AppendVideos []string
	Title        *string
	Description  *string
	CoverPhoto   *string
}

// Media is a single uploaded file attached to an event
type Media struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	EventID    string    `json:"event"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Notification is written as a side effect of social-graph changes
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Sender    string    `json:"sender"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

// Admin is an operator account, stored apart from users
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
