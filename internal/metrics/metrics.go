package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seacatering_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"plan"},
	)

	SubscriptionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_subscription_transitions_total",
			Help: "Total number of subscription status transitions",
		},
		[]string{"from", "to"},
	)

	SubscriptionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seacatering_subscription_conflicts_total",
			Help: "Total number of subscription writes rejected by a version check",
		},
	)

	ScheduledResumesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seacatering_scheduled_resumes_total",
			Help: "Total number of paused subscriptions resumed by the scheduler",
		},
	)

	TestimonialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_testimonials_total",
			Help: "Total number of testimonials by moderation outcome",
		},
		[]string{"status"},
	)

	UserRegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seacatering_user_registrations_total",
			Help: "Total number of registered users",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seacatering_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seacatering_catalog_cache_requests_total",
			Help: "Meal plan cache lookups by result",
		},
		[]string{"result"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seacatering_rate_limited_requests_total",
			Help: "Requests rejected by the per client rate limiter",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSubscriptionCreated(plan string) {
	SubscriptionsCreatedTotal.WithLabelValues(plan).Inc()
}

func RecordSubscriptionTransition(from, to string) {
	SubscriptionTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordSubscriptionConflict() {
	SubscriptionConflictsTotal.Inc()
}

func RecordScheduledResumes(n int) {
	ScheduledResumesTotal.Add(float64(n))
}

func RecordTestimonial(status string) {
	TestimonialsTotal.WithLabelValues(status).Inc()
}

func RecordRegistration() {
	UserRegistrationsTotal.Inc()
}

func RecordLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CatalogCacheRequests.WithLabelValues(result).Inc()
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
