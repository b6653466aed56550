package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

const (
	EventSubscriptionCreated = "subscription.created"
	EventSubscriptionDeleted = "subscription.deleted"
)

// SubscriptionEvent is the provider's webhook envelope after signature
// verification. Events are keyed by the billed user's id.
type SubscriptionEvent struct {
	Type string `json:"type"`
	Data struct {
		UserID string `json:"user_id"`
	} `json:"data"`
}

// WebhookResult reports what processing did, for logging and the
// always-200 response body.
type WebhookResult struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
}

// ProcessWebhookUseCase applies subscription lifecycle events to the
// caller's owned subdomains: deletion freezes them, creation unfreezes
// them. Collaborated subdomains are never touched, an unknown user is a
// no-op, and the freeze transition is idempotent, so duplicate or
// reordered deliveries are safe.
type ProcessWebhookUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewProcessWebhookUseCase(store registry.Store, log logger.Interface) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, event SubscriptionEvent) (*WebhookResult, error) {
	switch event.Type {
	case EventSubscriptionDeleted:
		return uc.applyToOwned(ctx, event.Data.UserID, "freeze", registry.Freeze)
	case EventSubscriptionCreated:
		return uc.applyToOwned(ctx, event.Data.UserID, "unfreeze", registry.Unfreeze)
	default:
		uc.logger.Debugw("ignoring webhook event", "type", event.Type)
		return &WebhookResult{Action: "ignored"}, nil
	}
}

func (uc *ProcessWebhookUseCase) applyToOwned(
	ctx context.Context,
	userID string,
	action string,
	transition func(*registry.SubdomainRecord) *registry.SubdomainRecord,
) (*WebhookResult, error) {
	if userID == "" {
		return &WebhookResult{Action: action}, nil
	}

	user, err := uc.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user index: %w", err)
	}
	if user == nil {
		// A billing event for a user who never claimed anything.
		return &WebhookResult{Action: action}, nil
	}

	affected := 0
	for _, name := range user.Subdomains {
		rec, err := uc.store.GetSubdomain(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		// Only owned subdomains react to the owner's billing events;
		// collaborations stay in whatever state their own owner's
		// billing put them.
		if rec == nil || rec.OwnerID != userID {
			continue
		}

		updated := transition(rec)
		if updated == rec {
			continue
		}
		if err := uc.store.PutSubdomain(ctx, name, updated); err != nil {
			return nil, fmt.Errorf("failed to persist %s: %w", name, err)
		}
		affected++
	}

	uc.logger.Infow("subscription event processed",
		"action", action,
		"user_id", userID,
		"affected", affected)

	return &WebhookResult{Action: action, Affected: affected}, nil
}
