package api

import (
	"net/http"

	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the public exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	responder
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, resp responder) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, responder: resp}
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Description Returns every exercise ordered by muscle group, then name.
// @Tags Exercises
// @Produce json
// @Success 200 {object} gin.H "exercises"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Error fetching exercises")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercises": exercises})
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} gin.H "exercise"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /api/exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching exercise")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercise": exercise})
}

// ListByMuscleGroup godoc
// @Summary List exercises for a muscle group
// @Tags Exercises
// @Produce json
// @Param muscleGroup path string true "Muscle group"
// @Success 200 {object} gin.H "exercises"
// @Failure 404 {object} gin.H "No exercises found"
// @Router /api/exercises/muscle-group/{muscleGroup} [get]
func (h *ExerciseHandler) ListByMuscleGroup(c *gin.Context) {
	exercises, err := h.exerciseService.FindByMuscleGroup(c.Request.Context(), c.Param("muscleGroup"))
	if err != nil {
		h.fail(c, err, "Error fetching exercises")
		return
	}
	if len(exercises) == 0 {
		abortWithError(c, http.StatusNotFound, "No exercises found for this muscle group")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercises": exercises})
}

// ListByCategory godoc
// @Summary List exercises for a category
// @Tags Exercises
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} gin.H "exercises"
// @Failure 404 {object} gin.H "No exercises found"
// @Router /api/exercises/category/{category} [get]
func (h *ExerciseHandler) ListByCategory(c *gin.Context) {
	exercises, err := h.exerciseService.FindByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.fail(c, err, "Error fetching exercises")
		return
	}
	if len(exercises) == 0 {
		abortWithError(c, http.StatusNotFound, "No exercises found for this category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercises": exercises})
}
