package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
	Time     string `json:"time"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Database: "ok",
		Version:  h.version,
		Time:     time.Now().Format(time.RFC3339),
	}

	if err := h.pingDatabase(); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "error: " + err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthController) pingDatabase() error {
	if h.db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
