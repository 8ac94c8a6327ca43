// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/hortus/internal/platform/validate"
)

// Service validates reference data forms before they reach the API.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Families

func (service *Service) ListFamilies(ctx context.Context) ([]Family, error) {
	return service.repo.ListFamilies(ctx)
}

func (service *Service) CreateFamily(ctx context.Context, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	family, err := service.repo.CreateFamily(ctx, name)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "family_created", slog.Int64("family_id", family.ID), slog.String("name", family.Name))
	return family, nil
}

func (service *Service) UpdateFamily(ctx context.Context, id int64, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	family, err := service.repo.UpdateFamily(ctx, id, name)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "family_updated", slog.Int64("family_id", id))
	return family, nil
}

func (service *Service) DeleteFamily(ctx context.Context, id int64) error {
	if err := service.repo.DeleteFamily(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "family_deleted", slog.Int64("family_id", id))
	return nil
}

// # Locations

func (service *Service) ListLocations(ctx context.Context) ([]Location, error) {
	return service.repo.ListLocations(ctx)
}

func (service *Service) CreateLocation(ctx context.Context, location *Location) (*Location, error) {
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	created, err := service.repo.CreateLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "location_created", slog.Int64("location_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

func (service *Service) UpdateLocation(ctx context.Context, id int64, location *Location) (*Location, error) {
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	updated, err := service.repo.UpdateLocation(ctx, id, location)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "location_updated", slog.Int64("location_id", id))
	return updated, nil
}

func (service *Service) DeleteLocation(ctx context.Context, id int64) error {
	if err := service.repo.DeleteLocation(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "location_deleted", slog.Int64("location_id", id))
	return nil
}

// # Validation

func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}

func validateLocation(location *Location) error {
	location.Name = strings.TrimSpace(location.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, location.Name).MaxLen(FieldName, location.Name, MaxNameLength)
	if location.Description != nil {
		validator.MaxLen(FieldDescription, *location.Description, MaxDescriptionLength)
	}
	return validator.Err()
}
