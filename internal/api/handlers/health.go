package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/dto/common"
	"github.com/osa911/portfolio-api/internal/utils"
	"github.com/osa911/portfolio-api/internal/version"
)

// Pinger reports backend reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of a successful health check
type HealthResponse struct {
	Status string            `json:"status"`
	Store  string            `json:"store"`
	Sheets string            `json:"sheets"`
	Build  version.BuildInfo `json:"build"`
}

type HealthHandler struct {
	store      Pinger
	storeName  string
	sheetsMode string
}

func NewHealthHandler(store Pinger, storeName, sheetsMode string) *HealthHandler {
	return &HealthHandler{store: store, storeName: storeName, sheetsMode: sheetsMode}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable, "Store connection error")
		return
	}

	utils.HandleSuccess(c, HealthResponse{
		Status: "ok",
		Store:  h.storeName,
		Sheets: h.sheetsMode,
		Build:  version.GetBuildInfo(),
	})
}
