package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExercises_PublicCatalog(t *testing.T) {
	srv := newTestServer(t)
	catalog := srv.seedCatalog(t)

	all := srv.do(t, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusOK, all.Code)
	exercises := decode(t, all)["exercises"].([]any)
	require.Len(t, exercises, 3)
	assert.Equal(t, "Rowing", exercises[0].(map[string]any)["name"], "back sorts before chest")

	chest := srv.do(t, http.MethodGet, "/api/exercises/muscle-group/chest", nil)
	require.Equal(t, http.StatusOK, chest.Code)
	assert.Len(t, decode(t, chest)["exercises"], 2)

	cardio := srv.do(t, http.MethodGet, "/api/exercises/category/cardio", nil)
	require.Equal(t, http.StatusOK, cardio.Code)
	assert.Len(t, decode(t, cardio)["exercises"], 1)

	one := srv.do(t, http.MethodGet, "/api/exercises/"+catalog["Push Up"].ID, nil)
	require.Equal(t, http.StatusOK, one.Code)
	assert.Equal(t, "Push Up", decode(t, one)["exercise"].(map[string]any)["name"])
}

func TestExercises_EmptyResultsAre404(t *testing.T) {
	srv := newTestServer(t)
	srv.seedCatalog(t)

	tests := []struct {
		path    string
		wantMsg string
	}{
		{"/api/exercises/muscle-group/legs", "No exercises found for this muscle group"},
		{"/api/exercises/muscle-group/tail", "No exercises found for this muscle group"},
		{"/api/exercises/category/yoga", "No exercises found for this category"},
		{"/api/exercises/missing-id", "Exercise not found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.wantMsg, decode(t, rec)["message"])
		})
	}
}

// brokenCatalog fails every listing.
type brokenCatalog struct {
	service.ExerciseService
}

func (brokenCatalog) FindAll(context.Context) ([]domain.Exercise, error) {
	return nil, errors.New("connection reset")
}

func TestExercises_InternalErrorDetails(t *testing.T) {
	dev := newTestServer(t, withExerciseService(brokenCatalog{}))
	rec := dev.do(t, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Error fetching exercises", body["message"])
	assert.Equal(t, "connection reset", body["error"])

	prod := newTestServer(t, withExerciseService(brokenCatalog{}), withProduction())
	rec = prod.do(t, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Error fetching exercises", body["message"])
	assert.NotContains(t, body, "error")
}
