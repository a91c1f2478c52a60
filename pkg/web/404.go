package web

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := NewPage(
			"Not Found",
			"The page you are looking for does not exist.",
			r.URL.Path,
			[]string{"templates/pages/404.html"},
			nil,
		)
		page.RenderStatus(w, r, http.StatusNotFound)
	}
}
