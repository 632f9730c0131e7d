package metrics

import (
	"relaybot/sources/tracing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	messagesHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_messages_handled_total",
			Help: "Total number of messages handled by the poller",
		},
		[]string{"status"},
	)

	messagesIgnored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_messages_ignored_total",
			Help: "Total number of messages ignored",
		},
		[]string{"reason"},
	)

	commandsUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_commands_used_total",
			Help: "Total number of commands used",
		},
		[]string{"command"},
	)

	messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_messages_sent_total",
			Help: "Total number of messages sent by the diplomat",
		},
		[]string{"status"},
	)

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_admissions_total",
			Help: "Outcome of every governed message",
		},
		[]string{"outcome"},
	)

	rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_rejections_total",
			Help: "Messages rejected by an admission gate",
		},
		[]string{"gate"},
	)

	providerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_provider_errors_total",
			Help: "Completion failures by kind",
		},
		[]string{"kind"},
	)

	tokenUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_token_usage_total",
			Help: "Total number of tokens used",
		},
		[]string{"model", "type"},
	)

	aiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaybot_ai_request_duration_seconds",
			Help:    "Duration of AI provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	messageProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relaybot_message_processing_duration_seconds",
			Help:    "Total duration of message processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	languagesResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_languages_resolved_total",
			Help: "Languages picked for replies",
		},
		[]string{"lang"},
	)

	payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_payments_total",
			Help: "Checkout workflow transitions",
		},
		[]string{"step"},
	)

	statsTrackedUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_stats_tracked_users",
			Help: "Users with quota records since startup",
		},
	)

	statsLifetimeMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_stats_lifetime_messages",
			Help: "Admitted messages since startup",
		},
	)

	statsBannedUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_stats_banned_users",
			Help: "Currently banned users",
		},
	)

	statsPremiumUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_stats_premium_users",
			Help: "Users holding a premium package",
		},
	)

	statsPendingPayments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relaybot_stats_pending_payments",
			Help: "Open checkouts awaiting the administrator",
		},
	)
)

func init() {
	prometheus.MustRegister(messagesHandled)
	prometheus.MustRegister(messagesIgnored)
	prometheus.MustRegister(commandsUsed)
	prometheus.MustRegister(messagesSent)
	prometheus.MustRegister(admissions)
	prometheus.MustRegister(rejections)
	prometheus.MustRegister(providerErrors)
	prometheus.MustRegister(tokenUsage)
	prometheus.MustRegister(aiRequestDuration)
	prometheus.MustRegister(messageProcessingDuration)
	prometheus.MustRegister(languagesResolved)
	prometheus.MustRegister(payments)
	prometheus.MustRegister(statsTrackedUsers)
	prometheus.MustRegister(statsLifetimeMessages)
	prometheus.MustRegister(statsBannedUsers)
	prometheus.MustRegister(statsPremiumUsers)
	prometheus.MustRegister(statsPendingPayments)
}

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordMessageHandled(status string) {
	messagesHandled.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordMessageIgnored(reason string) {
	messagesIgnored.WithLabelValues(reason).Inc()
}

func (s *MetricsService) RecordCommandUsed(command string) {
	commandsUsed.WithLabelValues(command).Inc()
}

func (s *MetricsService) RecordMessageSent(status string) {
	messagesSent.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordAdmission(outcome string) {
	admissions.WithLabelValues(outcome).Inc()
}

func (s *MetricsService) RecordRejection(gate string) {
	rejections.WithLabelValues(gate).Inc()
}

func (s *MetricsService) RecordProviderError(kind string) {
	providerErrors.WithLabelValues(kind).Inc()
}

func (s *MetricsService) RecordUsage(tokens int, model string, usageType string) {
	tokenUsage.WithLabelValues(model, usageType).Add(float64(tokens))
}

func (s *MetricsService) RecordPromptTokens(tokens int, model string) {
	s.RecordUsage(tokens, model, "prompt")
}

func (s *MetricsService) RecordCompletionTokens(tokens int, model string) {
	s.RecordUsage(tokens, model, "completion")
}

func (s *MetricsService) RecordAIRequestDuration(duration time.Duration, model string) {
	aiRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

func (s *MetricsService) RecordMessageProcessingDuration(duration time.Duration) {
	messageProcessingDuration.Observe(duration.Seconds())
}

func (s *MetricsService) RecordLanguageResolved(lang string) {
	languagesResolved.WithLabelValues(lang).Inc()
}

func (s *MetricsService) RecordPayment(step string) {
	payments.WithLabelValues(step).Inc()
}

func (s *MetricsService) SetTrackedUsers(count float64) {
	statsTrackedUsers.Set(count)
}

func (s *MetricsService) SetLifetimeMessages(count float64) {
	statsLifetimeMessages.Set(count)
}

func (s *MetricsService) SetBannedUsers(count float64) {
	statsBannedUsers.Set(count)
}

func (s *MetricsService) SetPremiumUsers(count float64) {
	statsPremiumUsers.Set(count)
}

func (s *MetricsService) SetPendingPayments(count float64) {
	statsPendingPayments.Set(count)
}
