// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package plant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hortus/internal/guard"
	requestutil "github.com/taibuivan/hortus/internal/platform/request"
	"github.com/taibuivan/hortus/internal/platform/respond"
	"github.com/taibuivan/hortus/pkg/pagination"
)

// Handler serves the catalogue pages of the web shell.
type Handler struct {
	service *Service
	source  guard.SessionSource
}

// NewHandler constructs a new plant [Handler].
func NewHandler(service *Service, source guard.SessionSource) *Handler {
	return &Handler{service: service, source: source}
}

// RegisterRoutes mounts the catalogue, observation and report routes.
//
// # Endpoints
//   - GET    /plants                   : Paginated, filtered listing
//   - GET    /plants/add               : New plant form (editors)
//   - POST   /plants                   : Create (editors)
//   - GET    /plants/{id}              : Detail
//   - PUT    /plants/{id}              : Update (editors)
//   - DELETE /plants/{id}              : Delete (admin)
//   - GET    /plants/{id}/phenology    : Phenology log
//   - POST   /plants/{id}/phenology    : Record phenology (observers)
//   - PUT    /phenology/{id}           : Amend phenology (observers)
//   - GET    /plants/{id}/biometry     : Biometry log
//   - POST   /plants/{id}/biometry     : Record biometry (observers)
//   - PUT    /biometry/{id}            : Amend biometry (observers)
//   - GET    /reports/export/{format}  : Download a report
func (handler *Handler) RegisterRoutes(router chi.Router) {
	signedIn := guard.Require(handler.source)
	editors := guard.Require(handler.source, EditorRoles...)
	observers := guard.Require(handler.source, ObserverRoles...)
	admins := guard.Require(handler.source, DeleteRoles...)

	router.Route(EndpointPlants, func(plantRoute chi.Router) {
		plantRoute.Use(signedIn)

		plantRoute.Get("/", handler.listPlants)
		plantRoute.With(editors).Get("/add", handler.addView)
		plantRoute.With(editors).Post("/", handler.createPlant)

		plantRoute.Route("/{id}", func(itemRoute chi.Router) {
			itemRoute.Get("/", handler.getPlant)
			itemRoute.With(editors).Put("/", handler.updatePlant)
			itemRoute.With(admins).Delete("/", handler.deletePlant)

			itemRoute.Get(EndpointPhenology, handler.listPhenology)
			itemRoute.With(observers).Post(EndpointPhenology, handler.addPhenology)
			itemRoute.Get(EndpointBiometry, handler.listBiometry)
			itemRoute.With(observers).Post(EndpointBiometry, handler.addBiometry)
		})
	})

	router.With(observers).Put(EndpointPhenology+"/{id}", handler.updatePhenology)
	router.With(observers).Put(EndpointBiometry+"/{id}", handler.updateBiometry)
	router.With(signedIn).Get("/reports/export/{format}", handler.export)
}

// FiltersFromRequest reads catalogue filters from the query string.
func FiltersFromRequest(request *http.Request) Filters {
	query := request.URL.Query()
	return Filters{
		Department:      Department(query.Get(ParamDepartment)),
		FamilyID:        requestutil.QueryInt64(request, ParamFamilyID),
		LocationID:      requestutil.QueryInt64(request, ParamLocationID),
		Genus:           query.Get(ParamGenus),
		Species:         query.Get(ParamSpecies),
		InventoryNumber: query.Get(ParamInventoryNumber),
		HasHerbarium:    requestutil.QueryBool(request, ParamHasHerbarium),
	}
}

// # Catalogue

func (handler *Handler) listPlants(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListPlants(request.Context(), pagination.FromRequest(request), FiltersFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Data, page.Pagination)
}

func (handler *Handler) addView(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{
		"departments": Departments,
		"plant":       Input{Department: DepartmentDendrology},
	})
}

func (handler *Handler) getPlant(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plant, err := handler.service.GetPlant(request.Context(), plantID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plant)
}

func (handler *Handler) createPlant(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plant, err := handler.service.CreatePlant(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, plant)
}

func (handler *Handler) updatePlant(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plant, err := handler.service.UpdatePlant(request.Context(), plantID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plant)
}

func (handler *Handler) deletePlant(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePlant(request.Context(), plantID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Phenology

func (handler *Handler) listPhenology(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.ListPhenology(request.Context(), plantID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) addPhenology(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var record Phenology
	if err := requestutil.DecodeJSON(request, &record); err != nil {
		respond.Error(writer, request, err)
		return
	}
	record.PlantID = plantID

	created, err := handler.service.AddPhenology(request.Context(), &record)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updatePhenology(writer http.ResponseWriter, request *http.Request) {
	recordID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var record Phenology
	if err := requestutil.DecodeJSON(request, &record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdatePhenology(request.Context(), recordID, &record)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// # Biometry

func (handler *Handler) listBiometry(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.ListBiometry(request.Context(), plantID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) addBiometry(writer http.ResponseWriter, request *http.Request) {
	plantID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var record Biometry
	if err := requestutil.DecodeJSON(request, &record); err != nil {
		respond.Error(writer, request, err)
		return
	}
	record.PlantID = plantID

	created, err := handler.service.AddBiometry(request.Context(), &record)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateBiometry(writer http.ResponseWriter, request *http.Request) {
	recordID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var record Biometry
	if err := requestutil.DecodeJSON(request, &record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateBiometry(request.Context(), recordID, &record)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// # Reports

func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	format := ExportFormat(requestutil.Param(request, "format"))

	download, err := handler.service.Export(request.Context(), format, FiltersFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Attachment(writer, download.ContentType, download.Filename, download.Body)
}
