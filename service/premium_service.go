package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

const defaultPremiumTerm = 3 * 30 * 24 * time.Hour

type PremiumService interface {
	Purchase(ctx context.Context, userID string, req *dto.PurchasePremiumRequest) (*domain.Premium, error)
	Cancel(ctx context.Context, actorID, premiumID string) error
	Status(ctx context.Context, userID string) (*dto.PremiumStatusResponse, error)
}

type premiumService struct {
	premiums repository.PremiumRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewPremiumService(premiums repository.PremiumRepository, users repository.UserRepository) PremiumService {
	return &premiumService{premiums: premiums, users: users, now: time.Now}
}

func (s *premiumService) Purchase(ctx context.Context, userID string, req *dto.PurchasePremiumRequest) (*domain.Premium, error) {
	now := s.now()

	starting := now
	if req.StartingDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartingDate)
		if err != nil {
			return nil, apperror.Invalid("starting_date must be RFC3339")
		}
		starting = parsed
	}

	closing := starting.Add(defaultPremiumTerm)
	if req.ClosingDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ClosingDate)
		if err != nil {
			return nil, apperror.Invalid("closing_date must be RFC3339")
		}
		closing = parsed
	}

	if !closing.After(starting) {
		return nil, apperror.Invalid("closing date must be after starting date")
	}
	if closing.Before(now) {
		return nil, apperror.Invalid("closing date must be in the future")
	}

	premium := &domain.Premium{
		ID:           uuid.New().String(),
		User:         userID,
		StartingDate: starting,
		ClosingDate:  closing,
		ReferralCode: req.ReferralCode,
		AmountPaid:   req.AmountPaid,
		CreatedAt:    now,
	}
	if err := s.premiums.Create(ctx, premium); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Premium membership purchased", logger.Fields(
		"user_id", userID,
		"closing_date", closing.Format(time.RFC3339),
		"amount_paid", req.AmountPaid,
	))
	return premium, nil
}

func (s *premiumService) Cancel(ctx context.Context, actorID, premiumID string) error {
	premium, err := s.premiums.FindByID(ctx, premiumID)
	if err != nil {
		return err
	}

	if premium.User != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return apperror.Unauthorized("only the membership owner or an admin can cancel it")
		}
	}

	return s.premiums.Delete(ctx, premiumID)
}

func (s *premiumService) Status(ctx context.Context, userID string) (*dto.PremiumStatusResponse, error) {
	latest, err := s.premiums.FindLatestByUser(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &dto.PremiumStatusResponse{IsPremiumUser: false}, nil
		}
		return nil, err
	}

	resp := &dto.PremiumStatusResponse{IsPremiumUser: latest.ActiveAt(s.now())}
	if resp.IsPremiumUser {
		resp.ClosingDate = latest.ClosingDate.Format(time.RFC3339)
	}
	return resp, nil
}
