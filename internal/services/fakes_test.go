package services

import (
	"context"
	"mime/multipart"
	"time"

	"landmark-map/internal/models"
)

type fakeLandmarkRepo struct {
	landmarks []models.Landmark
	nextID    uint
	createErr error
	findErr   error
}

func (f *fakeLandmarkRepo) Create(ctx context.Context, landmark *models.Landmark) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	landmark.ID = f.nextID
	landmark.CreatedAt = time.Now()
	f.landmarks = append(f.landmarks, *landmark)
	return nil
}

func (f *fakeLandmarkRepo) FindAll(ctx context.Context) ([]models.Landmark, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return append([]models.Landmark(nil), f.landmarks...), nil
}

func (f *fakeLandmarkRepo) FindBySource(ctx context.Context, source string) ([]models.Landmark, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Landmark
	for _, l := range f.landmarks {
		if l.Source == source {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users     map[uint]*models.User
	nextID    uint
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeCache struct {
	data   map[string]string
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type fakeWikipedia struct {
	landmarks []models.WikiLandmark
	err       error
}

func (f *fakeWikipedia) Nearby(ctx context.Context, lat, lng float64) ([]models.WikiLandmark, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.landmarks, nil
}

type fakeUploads struct {
	stored     string
	err        error
	lastUserID uint
	calls      int
}

func (f *fakeUploads) SavePhoto(userID uint, file *multipart.FileHeader) (string, error) {
	f.calls++
	f.lastUserID = userID
	if f.err != nil {
		return "", f.err
	}
	return f.stored, nil
}
