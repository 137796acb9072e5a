package service

import (
	"context"
	"errors"
	"sync"

	"pollution_tracker/internal/model"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateLocation(_ context.Context, id int, lat, lon float64, aqi int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found for location update")
	}
	u.Lat, u.Lon, u.LastAQI = &lat, &lon, aqi
	return nil
}

// fakeLogRepo is an in-memory repository.AQILogRepository.
type fakeLogRepo struct {
	mu     sync.Mutex
	nextID int64
	logs   []model.AQILog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{nextID: 1}
}

func (r *fakeLogRepo) Create(_ context.Context, l *model.AQILog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID
	r.nextID++
	// Prepend so FindAll returns newest first, like the real query does.
	r.logs = append([]model.AQILog{*l}, r.logs...)
	return nil
}

func (r *fakeLogRepo) FindAll(_ context.Context) ([]model.AQILog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AQILog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

func (r *fakeLogRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = nil
	return nil
}

// stubProvider returns canned readings or an error.
type stubProvider struct {
	reading *model.AQIReading
	city    *model.CityAQI
	err     error
}

func (p *stubProvider) FetchByCoordinates(_ context.Context, lat, lon float64) (*model.AQIReading, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.reading, nil
}

func (p *stubProvider) FetchByCity(_ context.Context, city string) (*model.CityAQI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.city, nil
}

// recordingSender records every SMS it is asked to send.
type recordingSender struct {
	mu   sync.Mutex
	sent []struct{ To, Body string }
	err  error
}

func (s *recordingSender) Send(to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, struct{ To, Body string }{to, body})
	return s.err
}

// recordingDispatcher captures scheduled tasks without running them, so tests
// can assert a dispatch happened and choose when it executes.
type recordingDispatcher struct {
	mu    sync.Mutex
	tasks []func()
}

func (d *recordingDispatcher) Dispatch(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, task)
}

func (d *recordingDispatcher) runAll() {
	d.mu.Lock()
	tasks := d.tasks
	d.tasks = nil
	d.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}
