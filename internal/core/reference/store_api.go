// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"strconv"

	"github.com/taibuivan/hortus/internal/platform/apiclient"
)

// APIRepository implements [Repository] over the garden REST API.
type APIRepository struct {
	client *apiclient.Client
}

// NewAPIRepository constructs an [APIRepository].
func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

// familyPayload is the write body of a family.
type familyPayload struct {
	Name string `json:"name"`
}

// # Families

func (repository *APIRepository) ListFamilies(ctx context.Context) ([]Family, error) {
	var families []Family
	if err := repository.client.Get(ctx, EndpointFamilies, nil, &families); err != nil {
		return nil, err
	}
	return families, nil
}

func (repository *APIRepository) CreateFamily(ctx context.Context, name string) (*Family, error) {
	var family Family
	if err := repository.client.Post(ctx, EndpointFamilies, familyPayload{Name: name}, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (repository *APIRepository) UpdateFamily(ctx context.Context, id int64, name string) (*Family, error) {
	var family Family
	if err := repository.client.Put(ctx, itemPath(EndpointFamilies, id), familyPayload{Name: name}, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (repository *APIRepository) DeleteFamily(ctx context.Context, id int64) error {
	return repository.client.Delete(ctx, itemPath(EndpointFamilies, id))
}

// # Locations

func (repository *APIRepository) ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := repository.client.Get(ctx, EndpointLocations, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (repository *APIRepository) CreateLocation(ctx context.Context, location *Location) (*Location, error) {
	var created Location
	if err := repository.client.Post(ctx, EndpointLocations, location, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (repository *APIRepository) UpdateLocation(ctx context.Context, id int64, location *Location) (*Location, error) {
	var updated Location
	if err := repository.client.Put(ctx, itemPath(EndpointLocations, id), location, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (repository *APIRepository) DeleteLocation(ctx context.Context, id int64) error {
	return repository.client.Delete(ctx, itemPath(EndpointLocations, id))
}

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}
