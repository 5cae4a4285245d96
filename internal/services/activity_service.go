package services

import (
	"context"
	"log"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityService records user actions to the activity log. Recording is best effort:
// failures are logged and never fail the action that triggered them.
type ActivityService struct {
	repo  repositories.ActivityRepository
	clock Clock
}

func NewActivityService(repo repositories.ActivityRepository, clock Clock) *ActivityService {
	return &ActivityService{repo: repo, clock: clock}
}

func (s *ActivityService) Record(ctx context.Context, userID uint, action, targetType, targetKey string) {
	activity := &models.Activity{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetKey:  targetKey,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.RecordActivity(ctx, activity); err != nil {
		log.Printf("activity: recording %s by user %d on %s %q: %v", action, userID, targetType, targetKey, err)
	}
}

// Recent lists the latest activities of a user. limit 0 means the default; it is capped at 100.
func (s *ActivityService) Recent(ctx context.Context, userID uint, limit int) (*models.ActivityResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	activities, err := s.repo.GetActivitiesByUserID(ctx, userID, int64(limit))
	if err != nil {
		return nil, internal(err)
	}
	return &models.ActivityResponse{Activities: activities}, nil
}
