package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	timetableerrors "uni-leave-portal/internal/timetable/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DayViewKeyPrefix = "timetable:day:"

func GetDayViewKey(date string) string {
	return DayViewKeyPrefix + date
}

//go:generate mockgen -source=timetable_service.go -destination=mock/timetable_service_mock.go -package=mock
type Service interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	GetForFaculty(ctx context.Context, facultyID string) ([]EntryResponse, error)
	GetDayView(ctx context.Context, date string) ([]EntryResponse, error)
	InvalidateDayView(ctx context.Context, date string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("timetable.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timetable.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error) {
	facultyID, err := uuid.Parse(req.FacultyID)
	if err != nil {
		return EntryResponse{}, timetableerrors.ErrInvalidFacultyID
	}

	e := &Entry{
		ID:        uuid.New(),
		FacultyID: facultyID,
		DayOfWeek: req.DayOfWeek,
		Slot:      req.Slot,
		Subject:   req.Subject,
		ClassName: req.ClassName,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create timetable entry failed", zap.Error(err))
		return EntryResponse{}, err
	}

	s.logger.Info("timetable entry created",
		zap.String("faculty_id", req.FacultyID),
		zap.String("day_of_week", req.DayOfWeek),
		zap.Int("slot", req.Slot),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetForFaculty(ctx context.Context, facultyID string) ([]EntryResponse, error) {
	if _, err := uuid.Parse(facultyID); err != nil {
		return nil, timetableerrors.ErrInvalidFacultyID
	}

	rows, err := s.repo.FindForFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("get timetable for faculty failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// GetDayView serves the master-plus-overrides layout for one date. Day views
// are read on every dashboard load, so they sit in redis with a singleflight
// collapse; the kafka consumer invalidates the key when a substitution fills.
func (s *service) GetDayView(ctx context.Context, date string) ([]EntryResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, timetableerrors.ErrInvalidDateFormat
	}

	cacheKey := GetDayViewKey(date)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EntryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("day view cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindForDate(ctx, day)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, 15*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get day view failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return v.([]EntryResponse), nil
}

func (s *service) InvalidateDayView(ctx context.Context, date string) error {
	if s.rdb == nil {
		return nil
	}

	cacheKey := GetDayViewKey(date)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("invalidate day view failed",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:        e.ID.String(),
		FacultyID: e.FacultyID.String(),
		DayOfWeek: e.DayOfWeek,
		Slot:      e.Slot,
		Subject:   e.Subject,
		ClassName: e.ClassName,
	}
	if e.Date != nil {
		resp.Date = e.Date.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(rows []Entry) []EntryResponse {
	resp := make([]EntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
