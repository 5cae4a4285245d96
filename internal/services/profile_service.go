package services

import (
	"context"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

type ProfileService struct {
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	activity *ActivityService
}

func NewProfileService(users repositories.UserRepository, follows repositories.FollowRepository, activity *ActivityService) *ProfileService {
	return &ProfileService{users: users, follows: follows, activity: activity}
}

// Get returns the profile of username as seen by the viewer, who may be nil.
func (s *ProfileService) Get(ctx context.Context, username string, viewerID *uint) (*models.ProfileResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeError(err, errs.UserNotFound, "")
	}

	following := false
	if viewerID != nil {
		if following, err = s.follows.IsFollowing(ctx, *viewerID, user.ID); err != nil {
			return nil, internal(err)
		}
	}
	return &models.ProfileResponse{Profile: user.ToProfile(following)}, nil
}

// SetFollow makes userID follow (on) or unfollow username. Following oneself is rejected
// in both directions; repeating either call is a no-op.
func (s *ProfileService) SetFollow(ctx context.Context, username string, userID uint, on bool) (*models.ProfileResponse, error) {
	target, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeError(err, errs.UserNotFound, "")
	}
	if target.ID == userID {
		return nil, errs.New(errs.BadRequest, errs.CannotFollowYourself)
	}

	action := models.ActionUserFollowed
	if on {
		err = s.follows.UpsertFollow(ctx, userID, target.ID)
	} else {
		action = models.ActionUserUnfollowed
		err = s.follows.DeleteFollow(ctx, userID, target.ID)
	}
	if err != nil {
		return nil, internal(err)
	}
	s.activity.Record(ctx, userID, action, "user", target.Username)

	following, err := s.follows.IsFollowing(ctx, userID, target.ID)
	if err != nil {
		return nil, internal(err)
	}
	return &models.ProfileResponse{Profile: target.ToProfile(following)}, nil
}
