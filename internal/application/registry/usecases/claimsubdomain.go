package usecases

import (
	"context"
	"fmt"
	"net/http"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

const (
	DenialReasonNoSubscription = "no_subscription"
	DenialReasonQuotaExceeded  = "quota_exceeded"
)

// ClaimCommand carries the verified caller identity alongside the
// requested name. Plan is the billing tier from the session token; Admin
// is true when the caller is on the deployment's admin allow-list.
type ClaimCommand struct {
	Subdomain string
	UserID    string
	Plan      string
	Admin     bool
}

// ClaimDenial is a policy decision refusing a claim; it is a value, not
// an error. Code is the HTTP status the boundary translates it to.
type ClaimDenial struct {
	Code    int
	Reason  string
	OwnerID string
	Current int
	Limit   int
}

// ClaimResult is either a created record or a denial, never both.
type ClaimResult struct {
	Record *registry.SubdomainRecord
	Denied *ClaimDenial
}

// ClaimSubdomainUseCase implements the claim pipeline: availability,
// billing gate, quota gate, then create and index. Each step
// short-circuits at the first failure.
type ClaimSubdomainUseCase struct {
	store          registry.Store
	staticReserved []string
	billingEnabled bool
	planQuotas     map[string]int
	logger         logger.Interface
}

func NewClaimSubdomainUseCase(
	store registry.Store,
	staticReserved []string,
	billingEnabled bool,
	planQuotas map[string]int,
	log logger.Interface,
) *ClaimSubdomainUseCase {
	return &ClaimSubdomainUseCase{
		store:          store,
		staticReserved: staticReserved,
		billingEnabled: billingEnabled,
		planQuotas:     planQuotas,
		logger:         log,
	}
}

func (uc *ClaimSubdomainUseCase) Execute(ctx context.Context, cmd ClaimCommand) (*ClaimResult, error) {
	name := registry.NormalizeName(cmd.Subdomain)

	existing, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load subdomain: %w", err)
	}
	reserved, preallocated, err := loadNameConfig(ctx, uc.store, uc.staticReserved)
	if err != nil {
		return nil, err
	}

	availability := registry.CheckAvailability(name, existing, reserved, preallocated)
	if !availability.Available {
		return &ClaimResult{Denied: availabilityDenial(availability)}, nil
	}

	exempt, err := uc.gateExempt(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if !exempt && !registry.PlanHasSubscription(cmd.Plan, uc.planQuotas) {
		return &ClaimResult{Denied: &ClaimDenial{
			Code:   http.StatusPaymentRequired,
			Reason: DenialReasonNoSubscription,
		}}, nil
	}

	user, err := uc.loadUserWithOwnedIndex(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if !exempt {
		limit := registry.PlanQuota(cmd.Plan, uc.planQuotas)
		current := registry.OwnedCount(user)
		if registry.QuotaExceeded(current, limit) {
			return &ClaimResult{Denied: &ClaimDenial{
				Code:    http.StatusForbidden,
				Reason:  DenialReasonQuotaExceeded,
				Current: current,
				Limit:   limit,
			}}, nil
		}
	}

	rec := registry.NewSubdomainRecord(cmd.UserID)
	if err := uc.store.PutSubdomain(ctx, name, rec); err != nil {
		return nil, fmt.Errorf("failed to persist subdomain: %w", err)
	}

	user.Subdomains = append(user.Subdomains, name)
	user.OwnedSubdomains = append(user.OwnedSubdomains, name)
	if err := uc.store.PutUser(ctx, cmd.UserID, user); err != nil {
		return nil, fmt.Errorf("failed to update owner index: %w", err)
	}

	uc.logger.Infow("subdomain claimed",
		"subdomain", name,
		"user_id", cmd.UserID,
		"owned_count", len(user.OwnedSubdomains))

	return &ClaimResult{Record: rec}, nil
}

// gateExempt reports whether billing and quota gates are skipped for this
// caller: admins always, plus users on the admin-maintained override map.
func (uc *ClaimSubdomainUseCase) gateExempt(ctx context.Context, cmd ClaimCommand) (bool, error) {
	if !uc.billingEnabled || cmd.Admin {
		return true, nil
	}
	// Deployments that never configured a plan→quota table predate the
	// billing gate; they keep the unlimited back-compat behavior.
	if len(uc.planQuotas) == 0 {
		return true, nil
	}
	overrides, err := uc.store.GetQuotaOverrides(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load quota overrides: %w", err)
	}
	return overrides[cmd.UserID], nil
}

// loadUserWithOwnedIndex loads the caller's index record, lazily deriving
// ownedSubdomains on legacy records by cross-checking each referenced
// subdomain's owner. The derived field is persisted immediately so the
// computation happens once per record.
func (uc *ClaimSubdomainUseCase) loadUserWithOwnedIndex(ctx context.Context, userID string) (*registry.UserRecord, error) {
	user, err := uc.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user index: %w", err)
	}
	if user == nil {
		return &registry.UserRecord{
			Subdomains:      []string{},
			OwnedSubdomains: []string{},
		}, nil
	}
	if user.HasOwnedIndex() {
		return user, nil
	}

	owned := []string{}
	for _, name := range user.Subdomains {
		rec, err := uc.store.GetSubdomain(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to cross-check %s: %w", name, err)
		}
		if rec != nil && rec.OwnerID == userID {
			owned = append(owned, name)
		}
	}
	user.OwnedSubdomains = owned

	if err := uc.store.PutUser(ctx, userID, user); err != nil {
		return nil, fmt.Errorf("failed to persist derived owned index: %w", err)
	}
	uc.logger.Debugw("backfilled owned subdomain index", "user_id", userID, "owned", len(owned))

	return user, nil
}

func availabilityDenial(availability registry.Availability) *ClaimDenial {
	code := http.StatusConflict
	switch availability.Reason {
	case registry.ReasonTooShort, registry.ReasonTooLong, registry.ReasonInvalidFormat:
		code = http.StatusBadRequest
	}
	return &ClaimDenial{
		Code:    code,
		Reason:  string(availability.Reason),
		OwnerID: availability.OwnerID,
	}
}
