// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package plant manages the living collection catalogue of the garden.

# Core Responsibility

  - Catalogue: [Plant] records with their taxonomy and placement.
  - Observations: Yearly [Phenology] and dated [Biometry] logs per plant.
  - Reports: Exports of the filtered catalogue as PDF, Excel or Word.

The garden API owns the data. This package validates forms before they are
sent and maps the pages of the web shell onto API calls.

# Access Control

  - Signed in: Browse the catalogue and its observations.
  - Observers (Admin, Botanist, Researcher): Record observations.
  - Editors (Admin, Botanist): Add and edit plants.
  - Admin: Delete plants.
*/
package plant

import (
	"net/url"
	"strconv"
	"time"

	"github.com/taibuivan/hortus/internal/core/reference"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// # Departments

// Department is the scientific unit curating a plant.
type Department string

const (
	DepartmentDendrology   Department = "dendrology"
	DepartmentFlora        Department = "flora"
	DepartmentFloriculture Department = "floriculture"
)

// Departments lists every department in display order.
var Departments = []Department{DepartmentDendrology, DepartmentFlora, DepartmentFloriculture}

// departmentNames returns the departments as plain strings.
func departmentNames() []string {
	names := make([]string, 0, len(Departments))
	for _, department := range Departments {
		names = append(names, string(department))
	}
	return names
}

// # Catalogue Domain

// Input is the editable part of a plant record.
type Input struct {
	InventoryNumber string     `json:"inventoryNumber"`
	Genus           string     `json:"genus"`
	Species         string     `json:"species"`
	Cultivar        *string    `json:"cultivar,omitempty"`
	FamilyID        int64      `json:"familyId"`
	LocationID      int64      `json:"locationId"`
	Department      Department `json:"department"`
	HasHerbarium    bool       `json:"hasHerbarium"`
	Notes           *string    `json:"notes,omitempty"`
}

// Plant is one accession of the living collection.
type Plant struct {
	ID int64 `json:"id"`
	Input

	// Family and Location are expanded by the API on reads.
	Family   *reference.Family   `json:"family,omitempty"`
	Location *reference.Location `json:"location,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScientificName returns "Genus species 'Cultivar'".
func (plant *Plant) ScientificName() string {
	name := plant.Genus + " " + plant.Species
	if plant.Cultivar != nil && *plant.Cultivar != "" {
		name += " '" + *plant.Cultivar + "'"
	}
	return name
}

// # Observation Domain

// Phenology records the seasonal stages of a plant for one year.
// Dates use the YYYY-MM-DD layout.
type Phenology struct {
	ID             int64  `json:"id,omitempty"`
	PlantID        int64  `json:"plantId"`
	Year           int    `json:"year"`
	FloweringStart string `json:"floweringStart,omitempty"`
	FloweringEnd   string `json:"floweringEnd,omitempty"`
	FruitingStart  string `json:"fruitingStart,omitempty"`
	FruitingEnd    string `json:"fruitingEnd,omitempty"`
	LeafingStart   string `json:"leafingStart,omitempty"`
	LeafingEnd     string `json:"leafingEnd,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Biometry records measurements of a plant taken on one date.
type Biometry struct {
	ID              int64          `json:"id,omitempty"`
	PlantID         int64          `json:"plantId"`
	Date            string         `json:"date"`
	Height          *float64       `json:"height,omitempty"`
	Diameter        *float64       `json:"diameter,omitempty"`
	FlowerSize      *float64       `json:"flowerSize,omitempty"`
	LeafSize        *float64       `json:"leafSize,omitempty"`
	OtherParameters map[string]any `json:"otherParameters,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// # Search

// Filters narrow a catalogue listing or an export. Zero values are ignored.
type Filters struct {
	Department      Department
	FamilyID        int64
	LocationID      int64
	Genus           string
	Species         string
	InventoryNumber string
	HasHerbarium    *bool
}

// Query parameter names understood by the API.
const (
	ParamDepartment      = "department"
	ParamFamilyID        = "familyId"
	ParamLocationID      = "locationId"
	ParamGenus           = "genus"
	ParamSpecies         = "species"
	ParamInventoryNumber = "inventoryNumber"
	ParamHasHerbarium    = "hasHerbarium"
)

// Apply writes the set filters into an outgoing query string.
func (filters Filters) Apply(query url.Values) {
	setString := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	setID := func(key string, value int64) {
		if value > 0 {
			query.Set(key, strconv.FormatInt(value, 10))
		}
	}

	setString(ParamDepartment, string(filters.Department))
	setID(ParamFamilyID, filters.FamilyID)
	setID(ParamLocationID, filters.LocationID)
	setString(ParamGenus, filters.Genus)
	setString(ParamSpecies, filters.Species)
	setString(ParamInventoryNumber, filters.InventoryNumber)
	if filters.HasHerbarium != nil {
		query.Set(ParamHasHerbarium, strconv.FormatBool(*filters.HasHerbarium))
	}
}

// # Reports

// ExportFormat is a report file type offered by the API.
type ExportFormat string

const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
	ExportWord  ExportFormat = "word"
)

// ExportFormats lists the offered formats.
var ExportFormats = []string{string(ExportPDF), string(ExportExcel), string(ExportWord)}

// # Access

// Role sets gating the catalogue pages.
var (
	EditorRoles   = []sec.Role{sec.RoleAdmin, sec.RoleBotanist}
	ObserverRoles = []sec.Role{sec.RoleAdmin, sec.RoleBotanist, sec.RoleResearcher}
	DeleteRoles   = []sec.Role{sec.RoleAdmin}
)

// # Field Identifiers

const (
	FieldInventoryNumber = "inventoryNumber"
	FieldGenus           = "genus"
	FieldSpecies         = "species"
	FieldCultivar        = "cultivar"
	FieldFamilyID        = "familyId"
	FieldLocationID      = "locationId"
	FieldDepartment      = "department"
	FieldNotes           = "notes"
	FieldPlantID         = "plantId"
	FieldYear            = "year"
	FieldFlowering       = "flowering"
	FieldFruiting        = "fruiting"
	FieldLeafing         = "leafing"
	FieldDate            = "date"
	FieldHeight          = "height"
	FieldDiameter        = "diameter"
	FieldFlowerSize      = "flowerSize"
	FieldLeafSize        = "leafSize"
	FieldFormat          = "format"
)

// Form limits.
const (
	MaxInventoryNumberLength = 50
	MaxTaxonLength           = 100
	MaxNotesLength           = 4000
	MinObservationYear       = 1800
	MaxObservationYear       = 2100
)

// API paths.
const (
	EndpointPlants    = "/plants"
	EndpointPhenology = "/phenology"
	EndpointBiometry  = "/biometry"
	EndpointExport    = "/export"
)
