package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanQuota(t *testing.T) {
	table := map[string]int{"starter": 1, "pro": 10, "free": 0}

	assert.Equal(t, 1, PlanQuota("starter", table))
	assert.Equal(t, 10, PlanQuota("pro", table))
	// Zero quota and unknown slugs fall back to unlimited.
	assert.Equal(t, UnlimitedQuota, PlanQuota("free", table))
	assert.Equal(t, UnlimitedQuota, PlanQuota("enterprise", table))
	assert.Equal(t, UnlimitedQuota, PlanQuota("starter", nil))
}

func TestPlanHasSubscription(t *testing.T) {
	table := map[string]int{"starter": 1, "free": 0}

	assert.True(t, PlanHasSubscription("starter", table))
	assert.False(t, PlanHasSubscription("free", table))
	assert.False(t, PlanHasSubscription("unknown", table))
	assert.False(t, PlanHasSubscription("", table))
}

func TestOwnedCount(t *testing.T) {
	assert.Equal(t, 0, OwnedCount(nil))
	assert.Equal(t, 0, OwnedCount(&UserRecord{}))
	assert.Equal(t, 2, OwnedCount(&UserRecord{OwnedSubdomains: []string{"a", "b"}}))
}

func TestQuotaExceeded(t *testing.T) {
	assert.True(t, QuotaExceeded(1, 1))
	assert.True(t, QuotaExceeded(2, 1))
	assert.False(t, QuotaExceeded(0, 1))
	assert.False(t, QuotaExceeded(100, UnlimitedQuota))
}
