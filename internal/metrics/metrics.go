// Package metrics holds the domain counters exposed on /metrics alongside
// the per-route HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CharactersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_characters_created_total",
			Help: "Total number of characters created.",
		},
	)

	SessionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_sessions_recorded_total",
			Help: "Total number of play sessions recorded.",
		},
	)

	ImportsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investigator_imports_parsed_total",
			Help: "Total number of text imports, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	BackupsExported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_backups_exported_total",
			Help: "Total number of backup documents exported.",
		},
	)

	BackupsRestored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_backups_restored_total",
			Help: "Total number of destructive backup restores applied.",
		},
	)

	ImagesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_images_uploaded_total",
			Help: "Total number of portrait images uploaded.",
		},
	)

	OrphanedBlobs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investigator_orphaned_blobs_total",
			Help: "Total number of blobs left behind after a failed delete.",
		},
	)
)
