package service

import (
	"context"
	"errors"
	"fmt"

	"pollution_tracker/internal/model"
	"pollution_tracker/internal/notify"
	"pollution_tracker/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAQIUnavailable = errors.New("failed to fetch AQI")
	ErrCityNotFound   = errors.New("city not found or AQI unavailable")
)

// AQIProvider is the provider-client surface the service depends on.
type AQIProvider interface {
	FetchByCoordinates(ctx context.Context, lat, lon float64) (*model.AQIReading, error)
	FetchByCity(ctx context.Context, city string) (*model.CityAQI, error)
}

// MessageSender mirrors client.MessageSender without importing the client
// package, so tests can stub the SMS path.
type MessageSender interface {
	Send(to, body string) error
}

// PollutionService orchestrates location updates, AQI lookups, history and
// SMS alerts.
type PollutionService interface {
	UpdateLocation(ctx context.Context, req model.LocationUpdateRequest) (*model.AQIReading, bool, error)
	AQIByCity(ctx context.Context, city string) (*model.CityAQI, error)
	History(ctx context.Context) ([]model.AQILog, error)
	ClearHistory(ctx context.Context) error
	SendTestSMS(to string)
}

type pollutionService struct {
	userRepo   repository.UserRepository
	logRepo    repository.AQILogRepository
	provider   AQIProvider
	sender     MessageSender
	dispatcher notify.Dispatcher
	log        *zap.SugaredLogger
}

// NewPollutionService creates a new PollutionService
func NewPollutionService(
	userRepo repository.UserRepository,
	logRepo repository.AQILogRepository,
	provider AQIProvider,
	sender MessageSender,
	dispatcher notify.Dispatcher,
	log *zap.SugaredLogger,
) PollutionService {
	return &pollutionService{
		userRepo:   userRepo,
		logRepo:    logRepo,
		provider:   provider,
		sender:     sender,
		dispatcher: dispatcher,
		log:        log,
	}
}

// UpdateLocation runs the core workflow: validate user, fetch AQI, persist
// the new location, append a history record and, when the caller opted in,
// dispatch an SMS alert in the background. The returned bool reports whether
// an SMS was dispatched; its delivery outcome is never visible here.
func (s *pollutionService) UpdateLocation(ctx context.Context, req model.LocationUpdateRequest) (*model.AQIReading, bool, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	reading, err := s.provider.FetchByCoordinates(ctx, req.Lat, req.Lon)
	if err != nil {
		return nil, false, ErrAQIUnavailable
	}

	if err := s.userRepo.UpdateLocation(ctx, user.ID, req.Lat, req.Lon, reading.AQI); err != nil {
		return nil, false, fmt.Errorf("failed to persist location: %w", err)
	}

	entry := &model.AQILog{
		UserID:   user.ID,
		Lat:      req.Lat,
		Lon:      req.Lon,
		AQI:      reading.AQI,
		Category: reading.Category,
		Advice:   reading.Advice,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, false, fmt.Errorf("failed to append AQI log: %w", err)
	}

	if req.SendSMS {
		message := fmt.Sprintf(
			"Hello %s,\nLocation access enabled!\nCurrent AQI: %d (%s)\nAdvice: %s\nStay safe - Pollution Tracker.",
			user.Name, reading.AQI, reading.Category, reading.Advice,
		)
		phone := user.Phone
		s.dispatcher.Dispatch(func() {
			if err := s.sender.Send(phone, message); err != nil {
				s.log.Warnw("failed to send AQI alert SMS", "user_id", entry.UserID, "error", err)
			}
		})
	}

	return reading, req.SendSMS, nil
}

// AQIByCity returns the provider's city lookup verbatim
func (s *pollutionService) AQIByCity(ctx context.Context, city string) (*model.CityAQI, error) {
	result, err := s.provider.FetchByCity(ctx, city)
	if err != nil {
		return nil, ErrCityNotFound
	}
	return result, nil
}

// History returns every recorded reading, newest first
func (s *pollutionService) History(ctx context.Context) ([]model.AQILog, error) {
	logs, err := s.logRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return logs, nil
}

// ClearHistory unconditionally empties the log store
func (s *pollutionService) ClearHistory(ctx context.Context) error {
	if err := s.logRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// SendTestSMS dispatches the fixed diagnostic message used by GET /test_sms
func (s *pollutionService) SendTestSMS(to string) {
	s.dispatcher.Dispatch(func() {
		if err := s.sender.Send(to, "Twilio Test Message: AQI alert demo successful!"); err != nil {
			s.log.Warnw("failed to send test SMS", "error", err)
		}
	})
}
