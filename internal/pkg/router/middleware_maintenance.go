package router

import (
	"net/http"

	"github.com/samber/lo"
	"github.com/shandysiswandi/backlink/internal/pkg/config"
)

// middlewareMaintenance answers 503 for the route patterns listed in
// app.maintenance.endpoints, for example "/api/v1/auth/register".
func middlewareMaintenance(cfg config.Config) Middleware {
	var routes []string
	if cfg != nil {
		routes = cfg.GetArray("app.maintenance.endpoints")
	}
	blocked := lo.SliceToMap(routes, func(route string) (string, struct{}) {
		return route, struct{}{}
	})

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
