package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cuaderno/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	tools int
}

// NewHealthCtrl reports on db and on how many tools are being served.
func NewHealthCtrl(db *gorm.DB, tools int) *HealthCtrl { return &HealthCtrl{db: db, tools: tools} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	holding := check{OK: false, Err: "no holding configured"}
	switch sqlDB, err := h.db.DB(); {
	case err != nil:
		db = check{Err: "db.DB(): " + err.Error()}
	default:
		if err := sqlDB.PingContext(ctx); err != nil {
			db = check{Err: "ping: " + err.Error()}
		}
	}
	if db.OK {
		var n int64
		if err := h.db.WithContext(ctx).Model(&entities.Holding{}).Count(&n).Error; err != nil {
			holding.Err = err.Error()
		} else if n > 0 {
			holding = check{OK: true}
		}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	// A missing holding is reported but does not make the service unhealthy.
	checks := map[string]any{"database": db, "holding": holding}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"tools":      h.tools,
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	})
}
