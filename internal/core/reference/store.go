// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// Repository is the garden API's reference data surface.
type Repository interface {
	ListFamilies(ctx context.Context) ([]Family, error)
	CreateFamily(ctx context.Context, name string) (*Family, error)
	UpdateFamily(ctx context.Context, id int64, name string) (*Family, error)
	DeleteFamily(ctx context.Context, id int64) error

	ListLocations(ctx context.Context) ([]Location, error)
	CreateLocation(ctx context.Context, location *Location) (*Location, error)
	UpdateLocation(ctx context.Context, id int64, location *Location) (*Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}
