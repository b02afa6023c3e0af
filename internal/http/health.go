package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/storage"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Books   int               `json:"books"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	library *services.LibraryService
	checker storage.Checker
	backups *scheduler.BackupScheduler
	version string
}

func NewHealthController(lib *services.LibraryService, checker storage.Checker, backups *scheduler.BackupScheduler, version string) *HealthController {
	return &HealthController{
		library: lib,
		checker: checker,
		backups: backups,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.checker != nil {
		if err := h.checker.Check(); err != nil {
			checks["storage"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}

	// A failed load is served as an empty library, so it degrades health
	// without failing it.
	if err := h.library.LoadError(); err != nil {
		checks["library"] = "degraded: " + err.Error()
		if status == "healthy" {
			status = "degraded"
		}
	} else {
		checks["library"] = "ok"
	}

	if h.backups != nil && h.backups.IsRunning() {
		if next := h.backups.NextRunTime(); next != nil {
			checks["backup"] = "next run " + next.Format(time.RFC3339)
		}
	} else {
		checks["backup"] = "disabled"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Books:   h.library.Len(),
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
