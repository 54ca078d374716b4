// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"

	"github.com/taibuivan/audiencia/internal/platform/dberr"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
)

// Service exposes the picklists and grows them.
type Service struct {
	repo      Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewService constructs a new taxonomy [Service].
func NewService(repo Repository, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Snapshot returns the current lists.
func (service *Service) Snapshot(context context.Context) (Snapshot, error) {
	snapshot, err := service.repo.Get(context)
	if err != nil {
		return Snapshot{}, dberr.Wrap(err, "Taxonomy")
	}
	return snapshot, nil
}

/*
Extend appends the delta values that are still absent.

Description: A successful append is announced on the event stream so open
forms and dashboards reload their picklists. A failed announcement is logged
and does not undo the append.

Parameters:
  - context: context.Context
  - delta: Delta

Returns:
  - error: apperr.TransientIO when the store is unavailable
*/
func (service *Service) Extend(context context.Context, delta Delta) error {
	if delta.IsEmpty() {
		return nil
	}

	added, err := service.repo.Append(context, delta)
	if err != nil {
		return dberr.Wrap(err, "Taxonomy")
	}
	if len(added) == 0 {
		return nil
	}

	for _, addition := range added {
		service.metrics.AddTaxonomy(string(addition.Kind), 1)
		service.logger.InfoContext(context, "taxonomy_value_added",
			slog.String("kind", string(addition.Kind)),
			slog.String("value", addition.Value),
		)
	}

	if err := service.publisher.Publish(context, events.NewEvent(events.KindTaxonomyUpdated, added)); err != nil {
		service.logger.WarnContext(context, "taxonomy_event_publish_failed", slog.String("error", err.Error()))
	}

	return nil
}
