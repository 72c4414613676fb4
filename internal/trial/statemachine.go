package trial

import "time"

const (
	TrialLength            = 7 * 24 * time.Hour
	MonthlySubscriptionLen = 30 * 24 * time.Hour
	YearlySubscriptionLen  = 365 * 24 * time.Hour
)

// StartTrial opens a 7-day trial. No payment input is involved.
func StartTrial(userID int, now time.Time) UserTrial {
	endsAt := now.Add(TrialLength)
	return UserTrial{
		UserID:      userID,
		Tier:        TierPro,
		Status:      StatusTrialing,
		StartDate:   now,
		TrialEndsAt: &endsAt,
	}
}

// Subscribe activates a paid subscription for the given cycle. Valid from any
// prior state; it overwrites the record rather than stacking periods.
func Subscribe(userID int, cycle string, now time.Time) UserTrial {
	length := MonthlySubscriptionLen
	if cycle == "yearly" {
		length = YearlySubscriptionLen
	}
	endDate := now.Add(length)
	return UserTrial{
		UserID:    userID,
		Tier:      TierPro,
		Status:    StatusActive,
		StartDate: now,
		EndDate:   &endDate,
	}
}

// IsActive is the single predicate AI trainer feature gates use. A trial
// counts while now is strictly before its end; a paid record counts while its
// end date has not passed.
func IsActive(t *UserTrial, now time.Time) bool {
	if t == nil {
		return false
	}
	switch t.Status {
	case StatusActive:
		return t.EndDate == nil || now.Before(*t.EndDate)
	case StatusTrialing:
		return t.TrialEndsAt != nil && now.Before(*t.TrialEndsAt)
	}
	return false
}
