package mongo

import (
	"time"

	"event-media-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	Verified  bool               `bson:"verified"`
	Profile   models.Profile     `bson:"profile"`
	Followers []string           `bson:"followers"`
	Following []string           `bson:"following"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CoverPhoto  string             `bson:"coverPhoto"`
	ImageURLs   []string           `bson:"imageUrls"`
	VideoURLs   []string           `bson:"videoUrls"`
	Author      models.Author      `bson:"author"`
	Private     bool               `bson:"private"`
	Password    string             `bson:"password,omitempty"`
	Followers   []string           `bson:"followers"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type mediaDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	URL        string             `bson:"url"`
	Type       string             `bson:"type"`
	Event      string             `bson:"event"`
	UploadedBy string             `bson:"uploadedBy"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type notificationDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Recipient string             `bson:"recipient"`
	Sender    string             `bson:"sender"`
	Type      string             `bson:"type"`
	Message   string             `bson:"message"`
	Link      string             `bson:"link"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type adminDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{
		ID:        newObjectID(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		Verified:  u.Verified,
		Profile:   u.Profile,
		Followers: orEmpty(u.Followers),
		Following: orEmpty(u.Following),
		CreatedAt: u.CreatedAt,
	}
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		Role:      d.Role,
		Verified:  d.Verified,
		Profile:   d.Profile,
		Followers: orEmpty(d.Followers),
		Following: orEmpty(d.Following),
		CreatedAt: d.CreatedAt,
	}
}

func toEventDoc(e *models.Event) *eventDoc {
	return &eventDoc{
		ID:          newObjectID(e.ID),
		Title:       e.Title,
		Description: e.Description,
		CoverPhoto:  e.CoverPhoto,
		ImageURLs:   orEmpty(e.ImageURLs),
		VideoURLs:   orEmpty(e.VideoURLs),
		Author:      e.Author,
		Private:     e.Private,
		Password:    e.Password,
		Followers:   orEmpty(e.Followers),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d *eventDoc) toModel() *models.Event {
	return &models.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		CoverPhoto:  d.CoverPhoto,
		ImageURLs:   orEmpty(d.ImageURLs),
		VideoURLs:   orEmpty(d.VideoURLs),
		Author:      d.Author,
		Private:     d.Private,
		Password:    d.Password,
		Followers:   orEmpty(d.Followers),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toMediaDoc(m *models.Media) *mediaDoc {
	return &mediaDoc{
		ID:         newObjectID(m.ID),
		URL:        m.URL,
		Type:       m.Type,
		Event:      m.EventID,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
}

func (d *mediaDoc) toModel() *models.Media {
	return &models.Media{
		ID:         d.ID.Hex(),
		URL:        d.URL,
		Type:       d.Type,
		EventID:    d.Event,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

func toNotificationDoc(n *models.Notification) *notificationDoc {
	return &notificationDoc{
		ID:        newObjectID(n.ID),
		Recipient: n.Recipient,
		Sender:    n.Sender,
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
}

func (d *notificationDoc) toModel() *models.Notification {
	return &models.Notification{
		ID:        d.ID.Hex(),
		Recipient: d.Recipient,
		Sender:    d.Sender,
		Type:      d.Type,
		Message:   d.Message,
		Link:      d.Link,
		CreatedAt: d.CreatedAt,
	}
}

func toAdminDoc(a *models.Admin) *adminDoc {
	return &adminDoc{
		ID:        newObjectID(a.ID),
		Name:      a.Name,
		Email:     a.Email,
		Password:  a.Password,
		CreatedAt: a.CreatedAt,
	}
}

func (d *adminDoc) toModel() *models.Admin {
	return &models.Admin{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}
