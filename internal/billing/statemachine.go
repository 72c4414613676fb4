package billing

import "time"

// PeriodLength is the paid period opened when a subscription first activates.
const PeriodLength = 30 * 24 * time.Hour

// PriceTable holds the monthly prices the billing total is computed from.
type PriceTable struct {
	BasePlanCents         int64
	AIProgrammerCents     int64
	AICoachPerMemberCents int64
}

func DefaultPriceTable() PriceTable {
	return PriceTable{
		BasePlanCents:         9900,
		AIProgrammerCents:     4900,
		AICoachPerMemberCents: 500,
	}
}

// Apply computes the next subscription state from the current one and the
// owner's selection. It is a pure function: persistence, authorization and the
// clock are the caller's concern.
//
// A new period only opens when the subscription transitions into active from a
// non-active status. Downgrades never take effect immediately: an add-on that
// was enabled stays enabled until the already-paid period ends, with the
// boundary recorded in the matching EndsAt field. Re-enabling before the
// boundary clears it.
func Apply(current *GymSubscription, sel Selection, now time.Time) GymSubscription {
	isNew := current == nil || current.Status != StatusActive

	periodEnd := now.Add(PeriodLength)
	if !isNew {
		periodEnd = current.CurrentPeriodEnd
		if periodEnd.IsZero() {
			periodEnd = now.Add(PeriodLength)
		}
	}

	next := GymSubscription{
		Plan:                sel.Plan,
		Status:              StatusActive,
		AIProgrammerEnabled: sel.Plan == PlanAIProgrammer,
		AICoachEnabled:      sel.AICoachEnabled,
		CurrentPeriodEnd:    periodEnd,
		StartDate:           now,
	}
	if sel.AICoachEnabled {
		next.AICoachMemberCount = sel.AICoachMemberCount
	}

	if current != nil {
		next.ID = current.ID
		next.GymID = current.GymID
		next.Version = current.Version
		next.CreatedAt = current.CreatedAt
		if !isNew {
			next.StartDate = current.StartDate
		}

		// Downgrade grace: the feature stays on through the paid period.
		if current.AIProgrammerEnabled && sel.Plan != PlanAIProgrammer {
			endsAt := periodEnd
			next.AIProgrammerEnabled = true
			next.AIProgrammerEndsAt = &endsAt
		}
		if current.AICoachEnabled && !sel.AICoachEnabled {
			endsAt := periodEnd
			next.AICoachEnabled = true
			next.AICoachEndsAt = &endsAt
			// The feature has not actually turned off, so the count the
			// previous period was priced on stays authoritative.
			next.AICoachMemberCount = current.AICoachMemberCount
		}
	}

	return next
}

// Cancel marks the subscription canceled. The record and its period boundary
// survive so already-paid access can be honored until CurrentPeriodEnd.
func Cancel(current GymSubscription, now time.Time) GymSubscription {
	next := current
	next.Status = StatusCanceled
	return next
}

// MonthlyTotal prices the subscription from its current enabled flags. Flags
// already reflect grace-period overrides, so a scheduled-to-end add-on keeps
// billing until its boundary.
func MonthlyTotal(sub *GymSubscription, prices PriceTable) int64 {
	if sub == nil || sub.Status != StatusActive {
		return 0
	}

	total := prices.BasePlanCents
	if sub.AIProgrammerEnabled {
		total += prices.AIProgrammerCents
	}
	if sub.AICoachEnabled {
		total += int64(sub.AICoachMemberCount) * prices.AICoachPerMemberCents
	}
	return total
}

// HasPendingAIProgrammerDowngrade reports whether the AI Programmer add-on is
// scheduled to turn off at the period boundary. Drives the grace banner.
func (s *GymSubscription) HasPendingAIProgrammerDowngrade(now time.Time) bool {
	return s.AIProgrammerEndsAt != nil && now.Before(*s.AIProgrammerEndsAt)
}

func (s *GymSubscription) HasPendingAICoachDowngrade(now time.Time) bool {
	return s.AICoachEndsAt != nil && now.Before(*s.AICoachEndsAt)
}
