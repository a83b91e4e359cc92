package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	"github.com/mindjournal/mindjournal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCustomActivityControllerTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	ctrl := NewCustomActivityController(
		service.NewCustomActivityService(repository.NewCustomActivityRepository(testDB)),
	)

	router := gin.New()
	router.GET("/api/custom-activities/:email", ctrl.List)
	router.POST("/api/custom-activities", ctrl.Add)
	router.DELETE("/api/custom-activities", ctrl.Remove)
	return router
}

func decodeNames(t *testing.T, body []byte) []string {
	t.Helper()
	var names []string
	require.NoError(t, json.Unmarshal(body, &names))
	return names
}

func TestCustomActivityController_Flow(t *testing.T) {
	router := setupCustomActivityControllerTest(t)

	w := performJSON(t, router, http.MethodGet, "/api/custom-activities/a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = performJSON(t, router, http.MethodPost, "/api/custom-activities", CustomActivityRequest{Email: "a@x.com", Activity: "Yoga"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Yoga"}, decodeNames(t, w.Body.Bytes()))

	w = performJSON(t, router, http.MethodPost, "/api/custom-activities", CustomActivityRequest{Email: "a@x.com", Activity: "Yoga"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Yoga"}, decodeNames(t, w.Body.Bytes()))

	w = performJSON(t, router, http.MethodPost, "/api/custom-activities", CustomActivityRequest{Email: "a@x.com", Activity: "Walking"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodDelete, "/api/custom-activities", CustomActivityRequest{Email: "a@x.com", Activity: "Yoga"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Walking"}, decodeNames(t, w.Body.Bytes()))

	w = performJSON(t, router, http.MethodGet, "/api/custom-activities/a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Walking"}, decodeNames(t, w.Body.Bytes()))
}

func TestCustomActivityController_Validation(t *testing.T) {
	router := setupCustomActivityControllerTest(t)

	w := performJSON(t, router, http.MethodPost, "/api/custom-activities", CustomActivityRequest{Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and activity are required", decodeBody(t, w)["error"])

	w = performJSON(t, router, http.MethodDelete, "/api/custom-activities", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
