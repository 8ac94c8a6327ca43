// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"net/http"

	"github.com/taibuivan/hortus/internal/platform/ctxutil"
)

// Follow redirects the browser to a pending navigation recorded by
// [History] and tags every request context with its own location so the
// transport can preserve it.
//
// A pending navigation that points at the path being requested is consumed
// without a redirect.
func Follow(history *History) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			location := request.URL.RequestURI()

			// 1. Honour a detour requested since the last page load
			if target, ok := history.Take(); ok && target.Path != request.URL.Path {
				http.Redirect(writer, request, target.URL(), http.StatusSeeOther)
				return
			}

			// 2. Remember where this request is rendering
			ctx := ctxutil.WithLocation(request.Context(), location)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
