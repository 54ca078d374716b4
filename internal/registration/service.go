// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/audiencia/internal/causa"
	"github.com/taibuivan/audiencia/internal/grouping"
	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/dberr"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

// Taxonomy is the part of the picklist service intake needs.
type Taxonomy interface {
	Snapshot(context context.Context) (taxonomy.Snapshot, error)
	Extend(context context.Context, delta taxonomy.Delta) error
}

// Archiver keeps a copy of an export. [objectstore.Store] implements it.
type Archiver interface {
	Put(context context.Context, key, contentType string, body []byte) (string, error)
}

// Service implements intake and the staff reads.
type Service struct {
	repo      Repository
	taxonomy  Taxonomy
	publisher events.Publisher
	archive   Archiver
	metrics   *metrics.Metrics
	logger    *slog.Logger
	location  *time.Location
	now       func() time.Time
}

// NewService constructs a new registration [Service]. Days are computed in loc.
func NewService(repo Repository, tax Taxonomy, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger, loc *time.Location) *Service {
	return &Service{
		repo:      repo,
		taxonomy:  tax,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		location:  loc,
		now:       time.Now,
	}
}

// WithArchive enables [Service.Archive].
func (service *Service) WithArchive(archive Archiver) *Service {
	service.archive = archive
	return service
}

// Location returns the courthouse zone the service groups by.
func (service *Service) Location() *time.Location {
	return service.location
}

// # Intake

/*
Submit canonicalizes the form and stores the registration.

Description: The picklists are read, the form is validated and normalized
against them, any new custom value is appended, and only then is the
registration inserted. A failure at any step leaves no registration behind;
a picklist append that succeeded before a failed insert stays, which is
harmless because the lists only grow.

Parameters:
  - context: context.Context
  - form: causa.Form

Returns:
  - *Registration: Stored record with id and server timestamp
  - error: VALIDATION_ERROR or TRANSIENT_IO
*/
func (service *Service) Submit(context context.Context, form causa.Form) (*Registration, error) {

	// 1. Current picklists
	snapshot, err := service.taxonomy.Snapshot(context)
	if err != nil {
		return nil, err
	}

	// 2. Validate and normalize
	canonical, delta, err := causa.Canonicalize(form, snapshot)
	if err != nil {
		service.metrics.IncrementRejected()
		return nil, err
	}

	// 3. Grow the picklists
	if err := service.taxonomy.Extend(context, delta); err != nil {
		return nil, err
	}

	// 4. Persist
	registration := FromCanonical(canonical)
	if err := service.repo.Create(context, registration); err != nil {
		return nil, dberr.Wrap(err, "Registration")
	}

	service.metrics.IncrementSubmitted()
	service.logger.InfoContext(context, "registration_submitted",
		slog.String("registration_id", registration.ID),
		slog.String("causa", registration.CausaFull),
		slog.String("subject", registration.Subject),
	)

	// 5. Notify dashboards
	evt := events.NewEvent(events.KindRegistrationCreated, map[string]string{
		"id":        registration.ID,
		"causaFull": registration.CausaFull,
	})
	if err := service.publisher.Publish(context, evt); err != nil {
		service.logger.WarnContext(context, "registration_event_publish_failed", slog.String("error", err.Error()))
	}

	return registration, nil
}

// # Staff Reads

// Snapshot returns the ungrouped registrations of day, newest first. A zero
// day selects nothing and skips the store.
func (service *Service) Snapshot(context context.Context, day grouping.Day) ([]Registration, error) {
	if day.IsZero() {
		return []Registration{}, nil
	}

	from, to := day.Bounds(service.location)

	registrations, err := service.repo.ListBetween(context, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "Registration")
	}
	return registrations, nil
}

// Day returns the registrations of day grouped by case key.
func (service *Service) Day(context context.Context, day grouping.Day) (grouping.Groups[Registration], error) {
	registrations, err := service.Snapshot(context, day)
	if err != nil {
		return grouping.Groups[Registration]{}, err
	}

	return grouping.Regroup(registrations, day, service.location), nil
}

/*
Export renders registrations as CSV.

Parameters:
  - context: context.Context
  - day: *grouping.Day (nil exports every registration)

Returns:
  - []byte: CSV content
  - string: Suggested file name
  - error: TRANSIENT_IO
*/
func (service *Service) Export(context context.Context, day *grouping.Day) ([]byte, string, error) {
	var (
		registrations []Registration
		err           error
		label         string
	)

	if day == nil {
		registrations, err = service.repo.ListAll(context)
	} else {
		from, to := day.Bounds(service.location)
		registrations, err = service.repo.ListBetween(context, from, to)
		label = day.String()
	}
	if err != nil {
		return nil, "", dberr.Wrap(err, "Registration")
	}

	now := service.now().In(service.location)
	return EncodeCSV(registrations, service.location), ExportFilename(label, now), nil
}

/*
Archive renders an export and stores it in the archive bucket.

Parameters:
  - context: context.Context
  - day: *grouping.Day (nil archives every registration)
  - actor: string (staff id recorded in the log)

Returns:
  - string: Object key
  - error: SERVICE_UNAVAILABLE when no archive is configured, TRANSIENT_IO on upload failure
*/
func (service *Service) Archive(context context.Context, day *grouping.Day, actor string) (string, error) {
	if service.archive == nil {
		return "", apperr.ServiceUnavailable("Export archive is not configured")
	}

	body, filename, err := service.Export(context, day)
	if err != nil {
		return "", err
	}

	key := "exports/" + service.now().UTC().Format("20060102T150405Z") + "_" + filename
	stored, err := service.archive.Put(context, key, CSVContentType, body)
	if err != nil {
		return "", apperr.TransientIO(err)
	}

	service.logger.InfoContext(context, "registration_export_archived",
		slog.String("key", stored),
		slog.String("actor", actor),
		slog.Int("bytes", len(body)),
	)
	return stored, nil
}
