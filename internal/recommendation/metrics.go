package recommendation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts scoring calls by path and outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnin_recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"path", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bnin_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// FeedbackTotal counts acceptance outcomes recorded through UpdateModel.
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnin_recommendation_feedback_total",
			Help: "Total number of recommendation feedback updates",
		},
		[]string{"accepted"},
	)

	ModelRetrainsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnin_model_retrains_total",
			Help: "Total number of model retraining runs",
		},
		[]string{"result"},
	)

	ModelRetrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bnin_model_retrain_duration_seconds",
			Help:    "Duration of model retraining runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	ModelVersionGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bnin_model_version",
			Help: "Version of the model currently serving predictions",
		},
	)
)

func recordRecommendation(path, outcome string, started time.Time) {
	RecommendationsTotal.WithLabelValues(path, outcome).Inc()
	RecommendationDuration.WithLabelValues(path).Observe(time.Since(started).Seconds())
}
