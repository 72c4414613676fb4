package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crossfittracker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SubscriptionAppliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_subscription_applies_total",
			Help: "Total number of gym subscription changes applied",
		},
		[]string{"plan"},
	)

	SubscriptionDowngradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_subscription_downgrades_total",
			Help: "Total number of add-on downgrades entering a grace period",
		},
		[]string{"addon"},
	)

	StaleWriteRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crossfittracker_subscription_stale_write_retries_total",
			Help: "Total number of subscription saves retried after a version conflict",
		},
	)

	TrialsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crossfittracker_trials_started_total",
			Help: "Total number of AI trainer trials started",
		},
	)

	TrialSubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_trial_subscriptions_total",
			Help: "Total number of AI trainer subscriptions",
		},
		[]string{"cycle"},
	)

	MembershipRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_membership_requests_total",
			Help: "Total number of membership requests by status transition",
		},
		[]string{"status"},
	)

	DiscountApplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_discount_applications_total",
			Help: "Total number of discount code applications",
		},
		[]string{"type"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossfittracker_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crossfittracker_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSubscriptionApply(plan string) {
	SubscriptionAppliesTotal.WithLabelValues(plan).Inc()
}

func RecordDowngrade(addon string) {
	SubscriptionDowngradesTotal.WithLabelValues(addon).Inc()
}

func RecordStaleWriteRetry() {
	StaleWriteRetriesTotal.Inc()
}

func RecordTrialStarted() {
	TrialsStartedTotal.Inc()
}

func RecordTrialSubscription(cycle string) {
	TrialSubscriptionsTotal.WithLabelValues(cycle).Inc()
}

func RecordMembershipRequest(status string) {
	MembershipRequestsTotal.WithLabelValues(status).Inc()
}

func RecordDiscountApplication(discountType string) {
	DiscountApplicationsTotal.WithLabelValues(discountType).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
