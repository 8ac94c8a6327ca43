// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package plant

import (
	"context"

	"github.com/taibuivan/hortus/internal/platform/apiclient"
	"github.com/taibuivan/hortus/pkg/pagination"
)

// Repository is the garden API's catalogue surface.
type Repository interface {
	ListPlants(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[Plant], error)
	GetPlant(ctx context.Context, id int64) (*Plant, error)
	CreatePlant(ctx context.Context, input *Input) (*Plant, error)
	UpdatePlant(ctx context.Context, id int64, input *Input) (*Plant, error)
	DeletePlant(ctx context.Context, id int64) error

	ListPhenology(ctx context.Context, plantID int64) ([]Phenology, error)
	AddPhenology(ctx context.Context, record *Phenology) (*Phenology, error)
	UpdatePhenology(ctx context.Context, id int64, record *Phenology) (*Phenology, error)

	ListBiometry(ctx context.Context, plantID int64) ([]Biometry, error)
	AddBiometry(ctx context.Context, record *Biometry) (*Biometry, error)
	UpdateBiometry(ctx context.Context, id int64, record *Biometry) (*Biometry, error)

	Export(ctx context.Context, format ExportFormat, filters Filters) (*apiclient.Download, error)
}
