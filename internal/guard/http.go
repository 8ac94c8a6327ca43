// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/ctxutil"
	"github.com/taibuivan/hortus/internal/platform/respond"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// pendingRetrySeconds is the Retry-After hint sent while the session resolves.
const pendingRetrySeconds = 1

// pendingView is rendered instead of a protected page while the session resolves.
type pendingView struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

/*
Require guards the wrapped routes with [Decide].

# Flow
 1. Take a fresh session snapshot for this request.
 2. Pending: 503 with a loading view and a Retry-After hint.
 3. RedirectLogin / RedirectForbidden: 303 to the decision's target.
 4. Allow: serve the route.

Parameters:
  - source: SessionSource, usually the [auth.Manager]
  - required: Roles allowed through. Empty means any signed-in operator.
*/
func Require(source SessionSource, required ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			location := request.URL.RequestURI()
			decision := Decide(source.Session(), location, required...)

			switch decision.Outcome {
			case Allow:
				next.ServeHTTP(writer, request)

			case Pending:
				writer.Header().Set("Retry-After", strconv.Itoa(pendingRetrySeconds))
				respond.JSON(writer, http.StatusServiceUnavailable, respond.SuccessEnvelope{
					Data: pendingView{Status: decision.Outcome.String(), Location: location},
				})

			default:
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "guard_redirect",
					slog.String("outcome", decision.Outcome.String()),
					slog.String("location", location),
				)
				respond.SeeOther(writer, request, decision.Target.URL())
			}
		})
	}
}

// ForbiddenView renders the fixed access denied page.
func ForbiddenView(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusForbidden, respond.SuccessEnvelope{Data: map[string]string{
		constants.FieldMessage: "You do not have the required role to access this page.",
		"back":                 request.Referer(),
	}})
}
