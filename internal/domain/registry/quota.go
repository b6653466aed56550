package registry

// UnlimitedQuota marks the absence of a quota cap.
const UnlimitedQuota = -1

// PlanQuota looks up the subdomain quota for a plan slug. An absent table
// or unknown slug yields unlimited; records predating the plan→quota
// table must keep working.
func PlanQuota(plan string, table map[string]int) int {
	if len(table) == 0 {
		return UnlimitedQuota
	}
	quota, ok := table[plan]
	if !ok || quota <= 0 {
		return UnlimitedQuota
	}
	return quota
}

// PlanHasSubscription reports whether the plan slug maps to a positive
// quota, i.e. the caller holds a paying subscription. No plan, an
// unrecognized plan, or a zero quota all mean no subscription.
func PlanHasSubscription(plan string, table map[string]int) bool {
	if plan == "" {
		return false
	}
	quota, ok := table[plan]
	return ok && quota > 0
}

// OwnedCount is the number of subdomains counted against the owner's
// quota. Frozen subdomains still count: freezing gates access, it does
// not release the name.
func OwnedCount(user *UserRecord) int {
	if user == nil {
		return 0
	}
	return len(user.OwnedSubdomains)
}

// QuotaExceeded decides the claim quota gate. A negative limit means
// unlimited.
func QuotaExceeded(current, limit int) bool {
	if limit < 0 {
		return false
	}
	return current >= limit
}
