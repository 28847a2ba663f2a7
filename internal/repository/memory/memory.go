// Package memory is an in-process store used for local development and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/google/uuid"
)

// DB holds every collection behind a single lock
type DB struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	events        map[string]*models.Event
	media         map[string]*models.Media
	notifications map[string]*models.Notification
	admins        map[string]*models.Admin
}

// New creates an empty in-memory store
func New() *repository.Store {
	db := &DB{
		users:         make(map[string]*models.User),
		events:        make(map[string]*models.Event),
		media:         make(map[string]*models.Media),
		notifications: make(map[string]*models.Notification),
		admins:        make(map[string]*models.Admin),
	}
	return &repository.Store{
		Users:         &UserRepository{db: db},
		Events:        &EventRepository{db: db},
		Media:         &MediaRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		Admins:        &AdminRepository{db: db},
		ValidID:       ValidID,
		Close:         func(context.Context) error { return nil },
	}
}

// ValidID accepts UUIDs, the ids this backend generates
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func newID() string {
	return uuid.New().String()
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c
}

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	c.ImageURLs = slices.Clone(e.ImageURLs)
	c.VideoURLs = slices.Clone(e.VideoURLs)
	c.Followers = slices.Clone(e.Followers)
	return &c
}

func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func pull(set []string, v string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == v })
}

// UserRepository is the in-memory user collection
type UserRepository struct {
	db *DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	r.db.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	r.db.mu.RLock()
	all := make([]*models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		all = append(all, cloneUser(u))
	}
	r.db.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, limit, offset), nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.users), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Profile = profile
	return cloneUser(u), nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Verified = verified
	return cloneUser(u), nil
}

func (r *UserRepository) VerifyByUsername(ctx context.Context, username string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var oldest *models.User
	for _, u := range r.db.users {
		if u.Username == username && (oldest == nil || u.CreatedAt.Before(oldest.CreatedAt)) {
			oldest = u
		}
	}
	if oldest == nil {
		return nil, repository.ErrNotFound
	}
	oldest.Verified = true
	return cloneUser(oldest), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r *UserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// like an update on a missing document, a missing side is skipped
	if u, ok := r.db.users[userID]; ok {
		u.Followers = addToSet(u.Followers, followerID)
	}
	if f, ok := r.db.users[followerID]; ok {
		f.Following = addToSet(f.Following, userID)
	}
	return nil
}

func (r *UserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if u, ok := r.db.users[userID]; ok {
		u.Followers = pull(u.Followers, followerID)
	}
	if f, ok := r.db.users[followerID]; ok {
		f.Following = pull(f.Following, userID)
	}
	return nil
}

// EventRepository is the in-memory event collection
type EventRepository struct {
	db *DB
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if event.ID == "" {
		event.ID = newID()
	}
	if event.ImageURLs == nil {
		event.ImageURLs = []string{}
	}
	if event.VideoURLs == nil {
		event.VideoURLs = []string{}
	}
	if event.Followers == nil {
		event.Followers = []string{}
	}
	r.db.events[event.ID] = cloneEvent(event)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	e, ok := r.db.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	return r.filter(func(*models.Event) bool { return true }), nil
}

func (r *EventRepository) ListByAuthor(ctx context.Context, userID string) ([]*models.Event, error) {
	return r.filter(func(e *models.Event) bool { return e.Author.UserID == userID }), nil
}

func (r *EventRepository) filter(keep func(*models.Event) bool) []*models.Event {
	r.db.mu.RLock()
	events := make([]*models.Event, 0, len(r.db.events))
	for _, e := range r.db.events {
		if keep(e) {
			events = append(events, cloneEvent(e))
		}
	}
	r.db.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return events
}

func (r *EventRepository) Update(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.ImageURLs = append(e.ImageURLs, update.AppendImages...)
	e.VideoURLs = append(e.VideoURLs, update.AppendVideos...)
	if update.Title != nil {
		e.Title = *update.Title
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	if update.CoverPhoto != nil {
		e.CoverPhoto = *update.CoverPhoto
	}
	e.UpdatedAt = time.Now().UTC()
	return cloneEvent(e), nil
}

func (r *EventRepository) SetPassword(ctx context.Context, id, hashedPassword string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Password = hashedPassword
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.events, id)
	return nil
}

func (r *EventRepository) AddFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if slices.Contains(e.Followers, userID) {
		return nil, repository.ErrDuplicate
	}
	e.Followers = append(e.Followers, userID)
	e.UpdatedAt = time.Now().UTC()
	return cloneEvent(e), nil
}

func (r *EventRepository) RemoveFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.Followers = pull(e.Followers, userID)
	e.UpdatedAt = time.Now().UTC()
	return cloneEvent(e), nil
}

// MediaRepository is the in-memory media collection
type MediaRepository struct {
	db *DB
}

func (r *MediaRepository) CreateMany(ctx context.Context, media []*models.Media) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, m := range media {
		if m.ID == "" {
			m.ID = newID()
		}
		c := *m
		r.db.media[m.ID] = &c
	}
	return nil
}

func (r *MediaRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error) {
	return r.filter(func(m *models.Media) bool { return m.EventID == eventID }), nil
}

func (r *MediaRepository) All(ctx context.Context) ([]*models.Media, error) {
	return r.filter(func(*models.Media) bool { return true }), nil
}

func (r *MediaRepository) filter(keep func(*models.Media) bool) []*models.Media {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.Media, 0)
	for _, m := range r.db.media {
		if keep(m) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return strings.Compare(out[i].ID, out[j].ID) < 0
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *MediaRepository) Delete(ctx context.Context, id string) (*models.Media, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.media[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.db.media, id)
	return m, nil
}

// NotificationRepository is the in-memory notification collection
type NotificationRepository struct {
	db *DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if n.ID == "" {
		n.ID = newID()
	}
	c := *n
	r.db.notifications[n.ID] = &c
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]*models.Notification, error) {
	all := r.filter(func(n *models.Notification) bool { return n.Recipient == recipient })
	return window(all, limit, 0), nil
}

func (r *NotificationRepository) All(ctx context.Context) ([]*models.Notification, error) {
	return r.filter(func(*models.Notification) bool { return true }), nil
}

func (r *NotificationRepository) filter(keep func(*models.Notification) bool) []*models.Notification {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*models.Notification, 0)
	for _, n := range r.db.notifications {
		if keep(n) {
			c := *n
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.notifications, id)
	return nil
}

// AdminRepository is the in-memory admin collection
type AdminRepository struct {
	db *DB
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicate
		}
	}
	if admin.ID == "" {
		admin.ID = newID()
	}
	c := *admin
	r.db.admins[admin.ID] = &c
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, a := range r.db.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
