package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/models"
	"github.com/mikczynski/werble-backend/utils"
)

// ProfileService updates the requester's current position, the reference
// point for every distance computation.
type ProfileService struct {
	users UserRepository
	log   *zerolog.Logger
}

func NewProfileService(users UserRepository, log *zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, log: log}
}

func (s *ProfileService) UpdatePosition(ctx context.Context, requesterID string, latitude, longitude float64) error {
	if !utils.IsValidLatitude(latitude) || !utils.IsValidLongitude(longitude) {
		return fmt.Errorf("%w: coordinate out of range", models.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return err
	}

	if err := s.users.UpdatePosition(ctx, requesterID, latitude, longitude); err != nil {
		return err
	}
	s.log.Info().Str("user_id", requesterID).Msg("position updated")
	return nil
}
