// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the master data shared by every plant record.

# Core Responsibility

  - Taxonomy: Botanical [Family] entries a plant is classified under.
  - Placement: Garden [Location] entries (expositions) where a plant grows.

Both lists are small and unpaginated. Any signed-in operator may read them;
only administrators change them.
*/
package reference

// # Taxonomy Domain

// Family is a botanical family, e.g. Rosaceae.
type Family struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// # Placement Domain

// Location is an exposition or bed of the garden.
type Location struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// Length limits of the reference forms.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
)

// API paths of the reference collections.
const (
	EndpointFamilies  = "/families"
	EndpointLocations = "/locations"
)
