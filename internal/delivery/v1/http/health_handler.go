package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthResponse — ответ /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthHandler
//
//	@Summary	Проверка готовности сервиса и его зависимостей
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/healthz [get]
func healthHandler(check func(ctx context.Context) error, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check == nil {
			WriteSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := check(ctx); err != nil {
			logger.Warnf("health check failed: %v", err)
			WriteSuccess(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			return
		}

		WriteSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
