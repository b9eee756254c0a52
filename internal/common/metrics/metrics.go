// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_predictions_total",
			Help: "Total number of salary predictions served",
		},
		[]string{"branch"}, // catalog | custom
	)

	PredictionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salary_prediction_fallbacks_total",
			Help: "Predictions that resolved to the base-salary fallback",
		},
		[]string{"reason"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "salary_prediction_duration_seconds",
			Help: "End-to-end duration of the prediction pipeline",
		},
		[]string{"branch"},
	)

	GenAICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_calls_total",
			Help: "Outbound generative-language API calls",
		},
		[]string{"operation", "outcome"}, // recommend|pseudo_predict, ok|error|fallback
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Outbound emails by purpose",
		},
		[]string{"purpose", "outcome"}, // otp|watchdog, ok|error
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)
