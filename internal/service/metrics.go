package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folklore_upload_failures_total",
			Help: "Total number of per-file media upload failures by file group.",
		},
		[]string{"group"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folklore_uploads_total",
			Help: "Total number of successful media uploads by file group.",
		},
		[]string{"group"},
	)

	aiGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folklore_ai_generations_total",
			Help: "Total number of AI story generation requests by status.",
		},
		[]string{"status"},
	)
)
