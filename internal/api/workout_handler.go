package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the authenticated user's workouts.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	queryService   service.WorkoutQueryService
	responder
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, queryService service.WorkoutQueryService, resp responder) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, queryService: queryService, responder: resp}
}

// --- DTOs for API ---

type SetRequest struct {
	Weight   *float64 `json:"weight"`
	Reps     *int     `json:"reps"`
	Duration *int     `json:"duration"`
	Distance *float64 `json:"distance"`
	Order    int      `json:"order"`
	Notes    string   `json:"notes"`
}

type ExerciseEntryRequest struct {
	ExerciseID string       `json:"exerciseId"`
	Notes      string       `json:"notes"`
	Sets       []SetRequest `json:"sets"`
}

// WorkoutRequest is shared by create and update. On update only the fields
// present are changed; a present exercises array replaces the whole list.
type WorkoutRequest struct {
	Name      *string                `json:"name"`
	Date      *string                `json:"date"`
	Duration  *int                   `json:"duration"`
	Notes     *string                `json:"notes"`
	Exercises []ExerciseEntryRequest `json:"exercises"`
}

type UpdateSetsRequest struct {
	Sets []SetRequest `json:"sets"`
}

var errInvalidDate = &service.ValidationError{Message: "Invalid date"}

// dateLayouts are tried in order when parsing a workout date.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}

func toSetInputs(reqs []SetRequest) []service.SetInput {
	if reqs == nil {
		return nil
	}
	sets := make([]service.SetInput, len(reqs))
	for i, r := range reqs {
		sets[i] = service.SetInput{
			Weight:   r.Weight,
			Reps:     r.Reps,
			Duration: r.Duration,
			Distance: r.Distance,
			Order:    r.Order,
			Notes:    r.Notes,
		}
	}
	return sets
}

func toEntryInput(req ExerciseEntryRequest) service.ExerciseEntryInput {
	return service.ExerciseEntryInput{
		ExerciseID: req.ExerciseID,
		Notes:      req.Notes,
		Sets:       toSetInputs(req.Sets),
	}
}

func toEntryInputs(reqs []ExerciseEntryRequest) []service.ExerciseEntryInput {
	if reqs == nil {
		return nil
	}
	entries := make([]service.ExerciseEntryInput, len(reqs))
	for i, r := range reqs {
		entries[i] = toEntryInput(r)
	}
	return entries
}

func (r WorkoutRequest) toCreateInput() (service.CreateWorkoutInput, error) {
	input := service.CreateWorkoutInput{
		Duration:  r.Duration,
		Exercises: toEntryInputs(r.Exercises),
	}
	if r.Name != nil {
		input.Name = *r.Name
	}
	if r.Notes != nil {
		input.Notes = *r.Notes
	}
	if r.Date != nil && *r.Date != "" {
		date, err := parseDate(*r.Date)
		if err != nil {
			return input, err
		}
		input.Date = date
	}
	return input, nil
}

func (r WorkoutRequest) toUpdateInput() (service.UpdateWorkoutInput, error) {
	input := service.UpdateWorkoutInput{
		Name:      r.Name,
		Duration:  r.Duration,
		Notes:     r.Notes,
		Exercises: toEntryInputs(r.Exercises),
	}
	if r.Date != nil {
		date, err := parseDate(*r.Date)
		if err != nil {
			return input, err
		}
		input.Date = &date
	}
	return input, nil
}

// daysParam reads an optional positive ?days= window. Zero means the default.
func daysParam(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, &service.ValidationError{Message: "days must be a positive integer"}
	}
	return days, nil
}

// --- Handler Methods ---

// ListWorkouts godoc
// @Summary List my workouts
// @Description Returns the caller's workouts with exercises and sets, newest first.
// @Tags Workouts
// @Produce json
// @Success 200 {object} gin.H "workouts"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /api/workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Error fetching workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workouts": workouts})
}

// GetWorkout godoc
// @Summary Get one workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} gin.H "workout"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Error fetching workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workout": workout})
}

// CreateWorkout godoc
// @Summary Create a workout
// @Description Creates a workout, optionally with exercises and their sets.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body WorkoutRequest true "Workout"
// @Success 201 {object} gin.H "Workout created successfully"
// @Failure 400 {object} gin.H "name is required / Invalid sets data"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /api/workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	input, err := req.toCreateInput()
	if err != nil {
		h.fail(c, err, "Error creating workout")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, input)
	if err != nil {
		h.fail(c, err, "Error creating workout")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Workout created successfully",
		"workout": workout,
	})
}

// UpdateWorkout godoc
// @Summary Update a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param workout body WorkoutRequest true "Fields to change"
// @Success 200 {object} gin.H "Workout updated successfully"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	input, err := req.toUpdateInput()
	if err != nil {
		h.fail(c, err, "Error updating workout")
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		h.fail(c, err, "Error updating workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Workout updated successfully",
		"workout": workout,
	})
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} gin.H "Workout deleted successfully"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.fail(c, err, "Error deleting workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Workout deleted successfully"})
}

// RecentWorkouts godoc
// @Summary Recent workouts
// @Description Workouts of the last 7 days, or of the last `days` days.
// @Tags Workouts
// @Produce json
// @Param days query int false "Window in days"
// @Success 200 {object} gin.H "workouts"
// @Router /api/workouts/recent [get]
func (h *WorkoutHandler) RecentWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := daysParam(c)
	if err != nil {
		h.fail(c, err, "Error fetching recent workouts")
		return
	}
	workouts, err := h.queryService.RecentWorkouts(c.Request.Context(), userID, days)
	if err != nil {
		h.fail(c, err, "Error fetching recent workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workouts": workouts})
}

// WorkoutStats godoc
// @Summary Workout statistics
// @Description Totals and averages over the last 30 days, or the last `days` days.
// @Tags Workouts
// @Produce json
// @Param days query int false "Window in days"
// @Success 200 {object} gin.H "stats"
// @Router /api/workouts/stats [get]
func (h *WorkoutHandler) WorkoutStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := daysParam(c)
	if err != nil {
		h.fail(c, err, "Error fetching workout statistics")
		return
	}
	stats, err := h.queryService.WorkoutStats(c.Request.Context(), userID, days)
	if err != nil {
		h.fail(c, err, "Error fetching workout statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// AddExercise godoc
// @Summary Add an exercise to a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param exercise body ExerciseEntryRequest true "Exercise and sets"
// @Success 200 {object} gin.H "Exercise added successfully"
// @Failure 400 {object} gin.H "Invalid sets data"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /api/workouts/{id}/exercises [post]
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ExerciseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	workout, err := h.workoutService.AddExercise(c.Request.Context(), userID, c.Param("id"), toEntryInput(req))
	if err != nil {
		h.fail(c, err, "Error adding exercise to workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Exercise added successfully",
		"workout": workout,
	})
}

// UpdateSets godoc
// @Summary Replace the sets of an exercise in a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param exerciseId path string true "Exercise ID"
// @Param sets body UpdateSetsRequest true "New sets"
// @Success 200 {object} gin.H "Sets updated successfully"
// @Failure 400 {object} gin.H "Invalid sets data"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout or exercise not found"
// @Router /api/workouts/{id}/exercises/{exerciseId}/sets [put]
func (h *WorkoutHandler) UpdateSets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	workout, err := h.workoutService.UpdateSets(c.Request.Context(), userID, c.Param("id"), c.Param("exerciseId"), toSetInputs(req.Sets))
	if err != nil {
		h.fail(c, err, "Error updating sets")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sets updated successfully",
		"workout": workout,
	})
}

// RemoveExercise godoc
// @Summary Remove an exercise from a workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} gin.H "Exercise removed successfully"
// @Failure 403 {object} gin.H "not authorized"
// @Failure 404 {object} gin.H "Workout or exercise not found"
// @Router /api/workouts/{id}/exercises/{exerciseId} [delete]
func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workoutService.RemoveExercise(c.Request.Context(), userID, c.Param("id"), c.Param("exerciseId")); err != nil {
		h.fail(c, err, "Error removing exercise from workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Exercise removed successfully"})
}
