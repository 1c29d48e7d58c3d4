package domain

// UnlimitedSentinel is the storage encoding for an uncapped limit. It never
// leaks past LimitFromSentinel / Limit.Value.
const UnlimitedSentinel int64 = -1

// Limit is a tagged cap: either unlimited or capped at a non-negative count.
type Limit struct {
	unlimited bool
	cap       int64
}

// Unlimited returns an uncapped Limit.
func Unlimited() Limit {
	return Limit{unlimited: true}
}

// Capped returns a Limit with a hard cap of n.
func Capped(n int64) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{cap: n}
}

// LimitFromSentinel decodes the storage representation, where any negative
// value means unlimited.
func LimitFromSentinel(v int64) Limit {
	if v < 0 {
		return Unlimited()
	}
	return Capped(v)
}

// IsUnlimited reports whether the limit has no cap.
func (l Limit) IsUnlimited() bool { return l.unlimited }

// Allows reports whether one more unit may be consumed at the given current count.
func (l Limit) Allows(current int64) bool {
	if l.unlimited {
		return true
	}
	return current < l.cap
}

// Value projects the limit back onto the sentinel encoding for API payloads.
func (l Limit) Value() int64 {
	if l.unlimited {
		return UnlimitedSentinel
	}
	return l.cap
}
