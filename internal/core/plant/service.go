// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package plant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/hortus/internal/platform/apiclient"
	"github.com/taibuivan/hortus/internal/platform/validate"
	"github.com/taibuivan/hortus/pkg/pagination"
)

// Service validates catalogue forms and forwards them to the [Repository].
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

// # Catalogue

func (service *Service) ListPlants(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[Plant], error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	return service.repo.ListPlants(ctx, params.Normalize(), filters)
}

func (service *Service) GetPlant(ctx context.Context, id int64) (*Plant, error) {
	return service.repo.GetPlant(ctx, id)
}

func (service *Service) CreatePlant(ctx context.Context, input *Input) (*Plant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	plant, err := service.repo.CreatePlant(ctx, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "plant_created",
		slog.Int64("plant_id", plant.ID),
		slog.String("inventory_number", input.InventoryNumber),
	)
	return plant, nil
}

func (service *Service) UpdatePlant(ctx context.Context, id int64, input *Input) (*Plant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	plant, err := service.repo.UpdatePlant(ctx, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "plant_updated", slog.Int64("plant_id", id))
	return plant, nil
}

func (service *Service) DeletePlant(ctx context.Context, id int64) error {
	if err := service.repo.DeletePlant(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "plant_deleted", slog.Int64("plant_id", id))
	return nil
}

// # Phenology

func (service *Service) ListPhenology(ctx context.Context, plantID int64) ([]Phenology, error) {
	return service.repo.ListPhenology(ctx, plantID)
}

func (service *Service) AddPhenology(ctx context.Context, record *Phenology) (*Phenology, error) {
	if err := validatePhenology(record); err != nil {
		return nil, err
	}

	created, err := service.repo.AddPhenology(ctx, record)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "phenology_recorded",
		slog.Int64("plant_id", record.PlantID),
		slog.Int("year", record.Year),
	)
	return created, nil
}

func (service *Service) UpdatePhenology(ctx context.Context, id int64, record *Phenology) (*Phenology, error) {
	if err := validatePhenology(record); err != nil {
		return nil, err
	}
	return service.repo.UpdatePhenology(ctx, id, record)
}

// # Biometry

func (service *Service) ListBiometry(ctx context.Context, plantID int64) ([]Biometry, error) {
	return service.repo.ListBiometry(ctx, plantID)
}

func (service *Service) AddBiometry(ctx context.Context, record *Biometry) (*Biometry, error) {
	if err := validateBiometry(record); err != nil {
		return nil, err
	}

	created, err := service.repo.AddBiometry(ctx, record)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "biometry_recorded",
		slog.Int64("plant_id", record.PlantID),
		slog.String("date", record.Date),
	)
	return created, nil
}

func (service *Service) UpdateBiometry(ctx context.Context, id int64, record *Biometry) (*Biometry, error) {
	if err := validateBiometry(record); err != nil {
		return nil, err
	}
	return service.repo.UpdateBiometry(ctx, id, record)
}

// # Reports

/*
Export downloads the filtered catalogue as a report file.

Returns:
  - *apiclient.Download: The file, with a default name when the API sent none
  - error: Validation error for an unknown format, apperr from the client otherwise
*/
func (service *Service) Export(ctx context.Context, format ExportFormat, filters Filters) (*apiclient.Download, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldFormat, string(format), ExportFormats...)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	download, err := service.repo.Export(ctx, format, filters)
	if err != nil {
		return nil, err
	}
	if download.Filename == "" {
		download.Filename = defaultFilename(format)
	}

	service.logger.InfoContext(ctx, "plants_exported",
		slog.String("format", string(format)),
		slog.Int("bytes", len(download.Body)),
	)
	return download, nil
}

// defaultFilename names an export the API did not name.
func defaultFilename(format ExportFormat) string {
	extension := map[ExportFormat]string{ExportPDF: "pdf", ExportExcel: "xlsx", ExportWord: "docx"}[format]
	return fmt.Sprintf("plants.%s", extension)
}

// # Validation

func validateInput(input *Input) error {
	input.InventoryNumber = strings.TrimSpace(input.InventoryNumber)
	input.Genus = strings.TrimSpace(input.Genus)
	input.Species = strings.TrimSpace(input.Species)

	validator := &validate.Validator{}
	validator.Required(FieldInventoryNumber, input.InventoryNumber).
		MaxLen(FieldInventoryNumber, input.InventoryNumber, MaxInventoryNumberLength).
		Required(FieldGenus, input.Genus).
		MaxLen(FieldGenus, input.Genus, MaxTaxonLength).
		Required(FieldSpecies, input.Species).
		MaxLen(FieldSpecies, input.Species, MaxTaxonLength).
		Positive(FieldFamilyID, input.FamilyID).
		Positive(FieldLocationID, input.LocationID).
		OneOf(FieldDepartment, string(input.Department), departmentNames()...)

	if input.Cultivar != nil {
		validator.MaxLen(FieldCultivar, *input.Cultivar, MaxTaxonLength)
	}
	if input.Notes != nil {
		validator.MaxLen(FieldNotes, *input.Notes, MaxNotesLength)
	}

	return validator.Err()
}

func validatePhenology(record *Phenology) error {
	validator := &validate.Validator{}
	validator.Positive(FieldPlantID, record.PlantID).
		Range(FieldYear, record.Year, MinObservationYear, MaxObservationYear).
		Date(FieldFlowering, record.FloweringStart).
		Date(FieldFlowering, record.FloweringEnd).
		DateOrder(FieldFlowering, record.FloweringStart, record.FloweringEnd).
		Date(FieldFruiting, record.FruitingStart).
		Date(FieldFruiting, record.FruitingEnd).
		DateOrder(FieldFruiting, record.FruitingStart, record.FruitingEnd).
		Date(FieldLeafing, record.LeafingStart).
		Date(FieldLeafing, record.LeafingEnd).
		DateOrder(FieldLeafing, record.LeafingStart, record.LeafingEnd).
		MaxLen(FieldNotes, record.Notes, MaxNotesLength)
	return validator.Err()
}

func validateBiometry(record *Biometry) error {
	validator := &validate.Validator{}
	validator.Positive(FieldPlantID, record.PlantID).
		Required(FieldDate, record.Date).
		Date(FieldDate, record.Date).
		NonNegative(FieldHeight, record.Height).
		NonNegative(FieldDiameter, record.Diameter).
		NonNegative(FieldFlowerSize, record.FlowerSize).
		NonNegative(FieldLeafSize, record.LeafSize).
		MaxLen(FieldNotes, record.Notes, MaxNotesLength)
	return validator.Err()
}

func validateFilters(filters Filters) error {
	if filters.Department == "" {
		return nil
	}
	validator := &validate.Validator{}
	validator.OneOf(FieldDepartment, string(filters.Department), departmentNames()...)
	return validator.Err()
}
