package registry

import "strings"

// UnavailableReason explains why a subdomain cannot be claimed.
type UnavailableReason string

const (
	ReasonTooShort      UnavailableReason = "too_short"
	ReasonTooLong       UnavailableReason = "too_long"
	ReasonInvalidFormat UnavailableReason = "invalid_format"
	ReasonReserved      UnavailableReason = "reserved"
	ReasonPreallocated  UnavailableReason = "preallocated"
	ReasonClaimed       UnavailableReason = "claimed"
)

const (
	MinSubdomainLength = 3
	MaxSubdomainLength = 63
)

// Availability is the outcome of an availability check. OwnerID is set
// for preallocated and claimed names.
type Availability struct {
	Available bool              `json:"available"`
	Reason    UnavailableReason `json:"reason,omitempty"`
	OwnerID   string            `json:"ownerId,omitempty"`
}

// CheckAvailability decides whether name is claimable given the current
// record (nil when unclaimed), the reserved set, and the preallocated map.
// Input is lowercased first; syntax is validated before existence checks
// are meaningful.
func CheckAvailability(name string, existing *SubdomainRecord, reserved map[string]bool, preallocated map[string]string) Availability {
	name = strings.ToLower(strings.TrimSpace(name))

	if len(name) < MinSubdomainLength {
		return Availability{Reason: ReasonTooShort}
	}
	if len(name) > MaxSubdomainLength {
		return Availability{Reason: ReasonTooLong}
	}
	if !validSubdomainFormat(name) {
		return Availability{Reason: ReasonInvalidFormat}
	}

	if reserved[name] {
		return Availability{Reason: ReasonReserved}
	}
	if ownerID, ok := preallocated[name]; ok {
		return Availability{Reason: ReasonPreallocated, OwnerID: ownerID}
	}
	if existing != nil {
		return Availability{Reason: ReasonClaimed, OwnerID: existing.OwnerID}
	}

	return Availability{Available: true}
}

// validSubdomainFormat checks [a-z0-9-] with no leading or trailing hyphen.
// The input is already lowercased.
func validSubdomainFormat(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
			if i == 0 || i == len(name)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
