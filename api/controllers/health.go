package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/printforge/configurator-backend/api/responses"
	"github.com/printforge/configurator-backend/pkg/config"
	"github.com/printforge/configurator-backend/pkg/logger"
)

const envHeader = "X-Configurator-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datasources the configurator read path depends on.
func HealthReady(cfg *config.Config, logg *logger.Logger, db pinger, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["db"] = checkPing(ctx, db)
		checks["redis"] = checkPing(ctx, cache)
		for name, status := range checks {
			if status != "ok" {
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "check", name), "readiness check failed")
				}
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}

func checkPing(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
