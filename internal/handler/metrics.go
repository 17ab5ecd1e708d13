package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storySubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folklore_story_submissions_total",
		Help: "Total number of successfully persisted story submissions.",
	})

	contactMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folklore_contact_messages_total",
		Help: "Total number of stored contact messages.",
	})
)
