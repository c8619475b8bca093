package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuaderno/entities"
	"cuaderno/pkg/testutil"
)

type healthBody struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	Tools  int              `json:"tools"`
	Checks map[string]check `json:"checks"`
}

func get(t *testing.T, h *HealthCtrl) (int, healthBody) {
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	db := testutil.DB(t)
	h := NewHealthCtrl(db, 17)

	code, body := get(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Status.OK)
	assert.Equal(t, 17, body.Tools)
	assert.True(t, body.Checks["database"].OK)
	assert.False(t, body.Checks["holding"].OK)

	require.NoError(t, db.Create(&entities.Holding{Name: "Finca Sol", NIF: "B123"}).Error)
	_, body = get(t, h)
	assert.True(t, body.Checks["holding"].OK)
}
