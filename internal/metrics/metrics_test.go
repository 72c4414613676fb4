package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/tiers", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/tiers", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/api/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordSubscriptionApply(t *testing.T) {
	SubscriptionAppliesTotal.Reset()

	RecordSubscriptionApply("base")
	RecordSubscriptionApply("base")
	RecordSubscriptionApply("ai_programmer")

	baseCount := testutil.ToFloat64(SubscriptionAppliesTotal.WithLabelValues("base"))
	programmerCount := testutil.ToFloat64(SubscriptionAppliesTotal.WithLabelValues("ai_programmer"))

	assert.Equal(t, float64(2), baseCount)
	assert.Equal(t, float64(1), programmerCount)
}

func TestRecordDowngrade(t *testing.T) {
	SubscriptionDowngradesTotal.Reset()

	RecordDowngrade("ai_programmer")
	RecordDowngrade("ai_coach")
	RecordDowngrade("ai_coach")

	programmerCount := testutil.ToFloat64(SubscriptionDowngradesTotal.WithLabelValues("ai_programmer"))
	coachCount := testutil.ToFloat64(SubscriptionDowngradesTotal.WithLabelValues("ai_coach"))

	assert.Equal(t, float64(1), programmerCount)
	assert.Equal(t, float64(2), coachCount)
}

func TestRecordStaleWriteRetry(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crossfittracker_subscription_stale_write_retries_total_test",
			Help: "Total number of subscription saves retried after a version conflict",
		},
	)

	oldCounter := StaleWriteRetriesTotal
	StaleWriteRetriesTotal = testCounter
	defer func() { StaleWriteRetriesTotal = oldCounter }()

	RecordStaleWriteRetry()
	RecordStaleWriteRetry()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordTrialStarted(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crossfittracker_trials_started_total_test",
			Help: "Total number of AI trainer trials started",
		},
	)

	oldCounter := TrialsStartedTotal
	TrialsStartedTotal = testCounter
	defer func() { TrialsStartedTotal = oldCounter }()

	RecordTrialStarted()
	RecordTrialStarted()
	RecordTrialStarted()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(3), count)
}

func TestRecordTrialSubscription(t *testing.T) {
	TrialSubscriptionsTotal.Reset()

	RecordTrialSubscription("monthly")
	RecordTrialSubscription("monthly")
	RecordTrialSubscription("yearly")

	monthlyCount := testutil.ToFloat64(TrialSubscriptionsTotal.WithLabelValues("monthly"))
	yearlyCount := testutil.ToFloat64(TrialSubscriptionsTotal.WithLabelValues("yearly"))

	assert.Equal(t, float64(2), monthlyCount)
	assert.Equal(t, float64(1), yearlyCount)
}

func TestRecordMembershipRequest(t *testing.T) {
	MembershipRequestsTotal.Reset()

	RecordMembershipRequest("pending")
	RecordMembershipRequest("approved")
	RecordMembershipRequest("rejected")
	RecordMembershipRequest("pending")

	pendingCount := testutil.ToFloat64(MembershipRequestsTotal.WithLabelValues("pending"))
	approvedCount := testutil.ToFloat64(MembershipRequestsTotal.WithLabelValues("approved"))
	rejectedCount := testutil.ToFloat64(MembershipRequestsTotal.WithLabelValues("rejected"))

	assert.Equal(t, float64(2), pendingCount)
	assert.Equal(t, float64(1), approvedCount)
	assert.Equal(t, float64(1), rejectedCount)
}

func TestRecordDiscountApplication(t *testing.T) {
	DiscountApplicationsTotal.Reset()

	RecordDiscountApplication("percent")
	RecordDiscountApplication("fixed")
	RecordDiscountApplication("percent")

	percentCount := testutil.ToFloat64(DiscountApplicationsTotal.WithLabelValues("percent"))
	fixedCount := testutil.ToFloat64(DiscountApplicationsTotal.WithLabelValues("fixed"))

	assert.Equal(t, float64(2), percentCount)
	assert.Equal(t, float64(1), fixedCount)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("request_received", "sent")
	RecordEmail("request_received", "failed")
	RecordEmail("trial_started", "sent")

	receivedSent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("request_received", "sent"))
	receivedFailed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("request_received", "failed"))
	trialSent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("trial_started", "sent"))

	assert.Equal(t, float64(1), receivedSent)
	assert.Equal(t, float64(1), receivedFailed)
	assert.Equal(t, float64(1), trialSent)
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}

func TestMetricsIntegration(t *testing.T) {
	HTTPRequestsTotal.Reset()
	SubscriptionAppliesTotal.Reset()
	MembershipRequestsTotal.Reset()
	EmailsSentTotal.Reset()

	RecordHTTPRequest("POST", "/api/membership-requests", "201", 0.25)
	RecordMembershipRequest("pending")
	RecordSubscriptionApply("base")
	RecordEmail("request_received", "sent")

	httpCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/membership-requests", "201"))
	requestCount := testutil.ToFloat64(MembershipRequestsTotal.WithLabelValues("pending"))
	applyCount := testutil.ToFloat64(SubscriptionAppliesTotal.WithLabelValues("base"))
	emailCount := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("request_received", "sent"))

	assert.Equal(t, float64(1), httpCount)
	assert.Equal(t, float64(1), requestCount)
	assert.Equal(t, float64(1), applyCount)
	assert.Equal(t, float64(1), emailCount)
}
