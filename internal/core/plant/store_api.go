// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package plant

import (
	"context"
	"net/url"
	"strconv"

	"github.com/taibuivan/hortus/internal/platform/apiclient"
	"github.com/taibuivan/hortus/pkg/pagination"
)

// APIRepository implements [Repository] over the garden REST API.
type APIRepository struct {
	client *apiclient.Client
}

// NewAPIRepository constructs an [APIRepository].
func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

// # Catalogue

/*
ListPlants calls GET /plants?page&limit&<filters>.

Returns:
  - *pagination.Page[Plant]: One page with the API's pagination block
  - error: apperr from the client
*/
func (repository *APIRepository) ListPlants(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[Plant], error) {
	query := url.Values{}
	params.Apply(query)
	filters.Apply(query)

	var page pagination.Page[Plant]
	if err := repository.client.Get(ctx, EndpointPlants, query, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []Plant{}
	}
	return &page, nil
}

func (repository *APIRepository) GetPlant(ctx context.Context, id int64) (*Plant, error) {
	var plant Plant
	if err := repository.client.Get(ctx, plantPath(id), nil, &plant); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (repository *APIRepository) CreatePlant(ctx context.Context, input *Input) (*Plant, error) {
	var plant Plant
	if err := repository.client.Post(ctx, EndpointPlants, input, &plant); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (repository *APIRepository) UpdatePlant(ctx context.Context, id int64, input *Input) (*Plant, error) {
	var plant Plant
	if err := repository.client.Put(ctx, plantPath(id), input, &plant); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (repository *APIRepository) DeletePlant(ctx context.Context, id int64) error {
	return repository.client.Delete(ctx, plantPath(id))
}

// # Phenology

func (repository *APIRepository) ListPhenology(ctx context.Context, plantID int64) ([]Phenology, error) {
	var records []Phenology
	if err := repository.client.Get(ctx, plantPath(plantID)+EndpointPhenology, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (repository *APIRepository) AddPhenology(ctx context.Context, record *Phenology) (*Phenology, error) {
	var created Phenology
	if err := repository.client.Post(ctx, plantPath(record.PlantID)+EndpointPhenology, record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (repository *APIRepository) UpdatePhenology(ctx context.Context, id int64, record *Phenology) (*Phenology, error) {
	var updated Phenology
	if err := repository.client.Put(ctx, EndpointPhenology+"/"+strconv.FormatInt(id, 10), record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// # Biometry

func (repository *APIRepository) ListBiometry(ctx context.Context, plantID int64) ([]Biometry, error) {
	var records []Biometry
	if err := repository.client.Get(ctx, plantPath(plantID)+EndpointBiometry, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (repository *APIRepository) AddBiometry(ctx context.Context, record *Biometry) (*Biometry, error) {
	var created Biometry
	if err := repository.client.Post(ctx, plantPath(record.PlantID)+EndpointBiometry, record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (repository *APIRepository) UpdateBiometry(ctx context.Context, id int64, record *Biometry) (*Biometry, error) {
	var updated Biometry
	if err := repository.client.Put(ctx, EndpointBiometry+"/"+strconv.FormatInt(id, 10), record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// # Reports

// Export calls GET /export/{format} with the filters as query parameters.
func (repository *APIRepository) Export(ctx context.Context, format ExportFormat, filters Filters) (*apiclient.Download, error) {
	query := url.Values{}
	filters.Apply(query)
	return repository.client.Download(ctx, EndpointExport+"/"+string(format), query)
}

func plantPath(id int64) string {
	return EndpointPlants + "/" + strconv.FormatInt(id, 10)
}
