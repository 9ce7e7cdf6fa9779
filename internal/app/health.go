package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/router"
)

type healthResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

func (healthResponse) Message() string {
	return "service is healthy"
}

func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Database: "up"}
	var errs []error

	if err := a.dbConn.Ping(ctx); err != nil {
		resp.Database = "down"
		errs = append(errs, err)
	}

	if a.cacheConn != nil {
		resp.Redis = "up"
		if err := a.cacheConn.Ping(ctx).Err(); err != nil {
			resp.Redis = "down"
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		slog.ErrorContext(ctx, "health check failed", "database", resp.Database, "redis", resp.Redis, "error", err)
		return nil, goerror.NewServer(err)
	}

	return resp, nil
}
