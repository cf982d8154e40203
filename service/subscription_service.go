package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)
	Unsubscribe(ctx context.Context, subscriberID, channelID string) error
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]domain.Subscription, error)
	ListSubscriptions(ctx context.Context, subscriberID string) ([]domain.Subscription, error)
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions, users: users}
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	if subscriberID == channelID {
		return nil, apperror.Invalid("cannot subscribe to your own channel")
	}
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:         uuid.New().String(),
		Subscriber: subscriberID,
		Channel:    channelID,
		CreatedAt:  time.Now(),
	}
	// the (subscriber, channel) unique index turns a double-subscribe into
	// a Conflict
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "User subscribed to channel", logger.Fields(
		"subscriber", subscriberID,
		"channel", channelID,
	))
	return sub, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, channelID string) error {
	sub, err := s.subscriptions.FindBySubscriberAndChannel(ctx, subscriberID, channelID)
	if err != nil {
		return err
	}
	return s.subscriptions.Delete(ctx, sub.ID)
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	_, err := s.subscriptions.FindBySubscriberAndChannel(ctx, subscriberID, channelID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID string) ([]domain.Subscription, error) {
	return s.subscriptions.FindByChannel(ctx, channelID)
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, subscriberID string) ([]domain.Subscription, error) {
	return s.subscriptions.FindBySubscriber(ctx, subscriberID)
}
