// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/guard"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/respond"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// pageView is the common payload of the informational pages.
type pageView struct {
	Page    string       `json:"page"`
	Title   string       `json:"title"`
	Session auth.Session `json:"session"`
	Links   []link       `json:"links,omitempty"`
}

type link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// registerPages mounts the public and navigation pages.
//
// # Access Control
//   - Public: /, /about, /visit, /forbidden
//   - Signed in: /map
//   - Admin: /admin
func registerPages(router chi.Router, source guard.SessionSource) {
	router.Get(constants.PathHome, page(source, "home", "Botanical Garden", func(session auth.Session) []link {
		links := []link{{"about", "/about"}, {"visit", "/visit"}}
		if !session.IsAuthenticated {
			return append(links, link{"login", constants.PathLogin}, link{"register", constants.PathRegister})
		}
		links = append(links, link{"plants", plant.EndpointPlants}, link{"map", "/map"})
		if session.Role().In(plant.EditorRoles...) {
			links = append(links, link{"add-plant", plant.EndpointPlants + "/add"})
		}
		if session.Role().In(sec.RoleAdmin) {
			links = append(links, link{"admin", "/admin"})
		}
		return links
	}))
	router.Get("/about", page(source, "about", "About the Garden", nil))
	router.Get("/visit", page(source, "visit", "Plan a Visit", nil))
	router.Get(constants.PathForbidden, guard.ForbiddenView)

	router.With(guard.Require(source)).Get("/map", page(source, "map", "Garden Map", nil))
	router.With(guard.Require(source, sec.RoleAdmin)).Get("/admin", page(source, "admin", "Administration", func(auth.Session) []link {
		return []link{{"families", "/families"}, {"locations", "/locations"}}
	}))
}

// page renders a pageView with links computed from the current session.
func page(source guard.SessionSource, name, title string, links func(auth.Session) []link) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		session := source.Session()
		view := pageView{Page: name, Title: title, Session: session}
		if links != nil {
			view.Links = links(session)
		}
		respond.OK(writer, view)
	}
}
