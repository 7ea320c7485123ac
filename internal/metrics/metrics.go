package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BundleBuildFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetctl_bundle_build_failed",
			Help: "Number of times a bundle has failed to build",
		},
		[]string{"bundle", "stage"},
	)

	BundleBuildCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assetctl_bundle_build_count",
			Help: "Total number of bundle build attempts",
		},
	)

	BundleBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assetctl_bundle_build_duration_seconds",
			Help:    "Bundle build duration in seconds",
			Buckets: []float64{0.1, 0.2, 0.5, 1, 1.5, 2, 5, 10, 30, 60},
		},
		[]string{"bundle"},
	)

	PlatformSwitchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetctl_platform_switch_count",
			Help: "Number of platform context switches performed",
		},
		[]string{"target"},
	)
)
