// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hortus/internal/guard"
	requestutil "github.com/taibuivan/hortus/internal/platform/request"
	"github.com/taibuivan/hortus/internal/platform/respond"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// Handler serves the reference data pages of the web shell.
type Handler struct {
	service *Service
	source  guard.SessionSource
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service, source guard.SessionSource) *Handler {
	return &Handler{service: service, source: source}
}

// RegisterRoutes mounts /families and /locations.
//
// # Access Control
//   - Signed in: List both collections.
//   - Admin: Create, update and delete entries.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route(EndpointFamilies, func(familyRoute chi.Router) {
		familyRoute.Use(guard.Require(handler.source))
		familyRoute.Get("/", handler.listFamilies)

		familyRoute.Group(func(adminRoute chi.Router) {
			adminRoute.Use(guard.Require(handler.source, sec.RoleAdmin))

			adminRoute.Post("/", handler.createFamily)
			adminRoute.Put("/{id}", handler.updateFamily)
			adminRoute.Delete("/{id}", handler.deleteFamily)
		})
	})

	router.Route(EndpointLocations, func(locationRoute chi.Router) {
		locationRoute.Use(guard.Require(handler.source))
		locationRoute.Get("/", handler.listLocations)

		locationRoute.Group(func(adminRoute chi.Router) {
			adminRoute.Use(guard.Require(handler.source, sec.RoleAdmin))

			adminRoute.Post("/", handler.createLocation)
			adminRoute.Put("/{id}", handler.updateLocation)
			adminRoute.Delete("/{id}", handler.deleteLocation)
		})
	})
}

// # Families

func (handler *Handler) listFamilies(writer http.ResponseWriter, request *http.Request) {
	families, err := handler.service.ListFamilies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, families)
}

func (handler *Handler) createFamily(writer http.ResponseWriter, request *http.Request) {
	var input Family
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	family, err := handler.service.CreateFamily(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, family)
}

func (handler *Handler) updateFamily(writer http.ResponseWriter, request *http.Request) {
	familyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Family
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	family, err := handler.service.UpdateFamily(request.Context(), familyID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, family)
}

func (handler *Handler) deleteFamily(writer http.ResponseWriter, request *http.Request) {
	familyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteFamily(request.Context(), familyID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Locations

func (handler *Handler) listLocations(writer http.ResponseWriter, request *http.Request) {
	locations, err := handler.service.ListLocations(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locations)
}

func (handler *Handler) createLocation(writer http.ResponseWriter, request *http.Request) {
	var input Location
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.CreateLocation(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, location)
}

func (handler *Handler) updateLocation(writer http.ResponseWriter, request *http.Request) {
	locationID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Location
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.UpdateLocation(request.Context(), locationID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

func (handler *Handler) deleteLocation(writer http.ResponseWriter, request *http.Request) {
	locationID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLocation(request.Context(), locationID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
