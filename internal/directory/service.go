// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/dberr"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/platform/validate"
	"github.com/taibuivan/audiencia/pkg/pointer"
	"github.com/taibuivan/audiencia/pkg/uuid"
)

// SubjectRevoker withdraws every token issued to a subject.
type SubjectRevoker interface {
	RevokeSubject(context context.Context, subject string, ttl time.Duration) error
}

// Service implements the approval lifecycle.
type Service struct {
	repo      Repository
	revoker   SubjectRevoker
	publisher events.Publisher
	logger    *slog.Logger
	hashCost  int
}

// NewService constructs a new directory [Service]. hashCost is the bcrypt
// cost of new credentials; zero uses the library default.
func NewService(repo Repository, revoker SubjectRevoker, publisher events.Publisher, logger *slog.Logger, hashCost int) *Service {
	return &Service{
		repo:      repo,
		revoker:   revoker,
		publisher: publisher,
		logger:    logger,
		hashCost:  hashCost,
	}
}

/*
RequestAccess creates a pending auxiliar entry.

Description: Duplicate emails are accepted. The credential is stored only as
a bcrypt hash and the administrator dashboards are notified.

Parameters:
  - context: context.Context
  - input: AccessRequest

Returns:
  - *Entry: The pending entry
  - error: VALIDATION_ERROR or TRANSIENT_IO
*/
func (service *Service) RequestAccess(context context.Context, input AccessRequest) (*Entry, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.
		Required(FieldName, name).
		MaxLen(FieldName, name, 120).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashCredential(input.Password, service.hashCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	entry := &Entry{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		Role:           sec.RoleAuxiliar,
		Status:         StatusPending,
		CredentialHash: hash,
		ExternalID:     pointer.NonBlank(input.ExternalID),
	}
	if err := service.repo.Create(context, entry); err != nil {
		return nil, dberr.Wrap(err, "Directory entry")
	}

	service.logger.InfoContext(context, "directory_access_requested",
		slog.String("entry_id", entry.ID),
		slog.String("email", entry.Email),
	)
	service.announce(context, entry.ID, StatusPending)

	return entry, nil
}

// Approve activates an entry. Approving an active entry changes nothing.
func (service *Service) Approve(context context.Context, id string) (*Entry, error) {
	entry, err := service.repo.Approve(context, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Directory entry")
	}

	service.logger.InfoContext(context, "directory_entry_approved", slog.String("entry_id", id))
	service.announce(context, id, StatusActive)

	return entry, nil
}

/*
Reject removes an entry, pending or active.

Description: The subject is revoked before the row is deleted, so a failure
leaves the entry in place and already issued tokens never outlive it.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NOT_FOUND or TRANSIENT_IO
*/
func (service *Service) Reject(context context.Context, id string) error {
	if err := service.revoker.RevokeSubject(context, id, constants.AccessTokenTTL); err != nil {
		return apperr.TransientIO(err)
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.Wrap(err, "Directory entry")
	}

	service.logger.InfoContext(context, "directory_entry_removed", slog.String("entry_id", id))
	service.announce(context, id, "removed")

	return nil
}

// List returns entries with status, or every entry when status is empty.
func (service *Service) List(context context.Context, status string) ([]Entry, error) {
	if status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, status, string(StatusPending), string(StatusActive))
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	entries, err := service.repo.List(context, Status(status))
	if err != nil {
		return nil, dberr.Wrap(err, "Directory entry")
	}
	return entries, nil
}

// FindByEmail returns every entry registered under email, oldest first.
func (service *Service) FindByEmail(context context.Context, email string) ([]Entry, error) {
	entries, err := service.repo.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		return nil, dberr.Wrap(err, "Directory entry")
	}
	return entries, nil
}

func (service *Service) announce(context context.Context, id string, status Status) {
	evt := events.NewEvent(events.KindDirectoryChanged, map[string]string{
		"id":     id,
		"status": string(status),
	})
	if err := service.publisher.Publish(context, evt); err != nil {
		service.logger.WarnContext(context, "directory_event_publish_failed", slog.String("error", err.Error()))
	}
}
