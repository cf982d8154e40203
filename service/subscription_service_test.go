package service

import (
	"context"
	"testing"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
)

func newSubscriptionFixture() (*fakeSubscriptionRepo, *fakeUserRepo, SubscriptionService) {
	subs := &fakeSubscriptionRepo{subs: map[string]*domain.Subscription{}}
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	return subs, users, NewSubscriptionService(subs, users)
}

func TestSubscribe(t *testing.T) {
	subs, users, svc := newSubscriptionFixture()
	users.users["channel"] = &domain.User{ID: "channel"}

	sub, err := svc.Subscribe(context.Background(), "fan", "channel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Subscriber != "fan" || sub.Channel != "channel" {
		t.Fatalf("unexpected subscription %+v", sub)
	}
	if _, ok := subs.subs["fan|channel"]; !ok {
		t.Fatalf("subscription not persisted")
	}
}

func TestSubscribeToSelfIsInvalid(t *testing.T) {
	_, users, svc := newSubscriptionFixture()
	users.users["u1"] = &domain.User{ID: "u1"}

	_, err := svc.Subscribe(context.Background(), "u1", "u1")
	if apperror.CodeOf(err) != apperror.CodeInvalid {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestSubscribeToUnknownChannel(t *testing.T) {
	_, _, svc := newSubscriptionFixture()

	_, err := svc.Subscribe(context.Background(), "fan", "ghost")
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUnsubscribeUnknownSubscription(t *testing.T) {
	_, users, svc := newSubscriptionFixture()
	users.users["channel"] = &domain.User{ID: "channel"}

	err := svc.Unsubscribe(context.Background(), "fan", "channel")
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestIsSubscribed(t *testing.T) {
	subs, _, svc := newSubscriptionFixture()
	subs.subs["fan|channel"] = &domain.Subscription{ID: "s1", Subscriber: "fan", Channel: "channel"}

	subscribed, err := svc.IsSubscribed(context.Background(), "fan", "channel")
	if err != nil || !subscribed {
		t.Fatalf("expected subscribed, got %v %v", subscribed, err)
	}

	subscribed, err = svc.IsSubscribed(context.Background(), "stranger", "channel")
	if err != nil || subscribed {
		t.Fatalf("expected not subscribed, got %v %v", subscribed, err)
	}
}
