package service

import (
	"cmp"
	"slices"

	"github.com/san98215/fitness-app/internal/domain"
)

// assembleWorkouts nests links, catalog entries and sets under their
// workouts. Workout order is preserved; exercises are sorted by link order
// and sets by set order. The inputs may arrive in any order.
func assembleWorkouts(workouts []domain.Workout, links []domain.WorkoutExercise, exercises []domain.Exercise, sets []domain.Set) []domain.WorkoutDetail {
	catalog := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		catalog[e.ID] = e
	}

	setsByLink := make(map[string][]domain.Set)
	for _, s := range sets {
		setsByLink[s.WorkoutExerciseID] = append(setsByLink[s.WorkoutExerciseID], s)
	}

	linksByWorkout := make(map[string][]domain.WorkoutExercise)
	for _, l := range links {
		linksByWorkout[l.WorkoutID] = append(linksByWorkout[l.WorkoutID], l)
	}

	out := make([]domain.WorkoutDetail, 0, len(workouts))
	for _, w := range workouts {
		workoutLinks := linksByWorkout[w.ID]
		slices.SortStableFunc(workoutLinks, func(a, b domain.WorkoutExercise) int {
			return cmp.Compare(a.Order, b.Order)
		})

		detail := domain.WorkoutDetail{
			Workout:   w,
			Exercises: make([]domain.WorkoutExerciseDetail, 0, len(workoutLinks)),
		}
		for _, l := range workoutLinks {
			exercise, ok := catalog[l.ExerciseID]
			if !ok {
				// catalog entry deleted after it was logged
				exercise = domain.Exercise{ID: l.ExerciseID}
			}

			linkSets := setsByLink[l.ID]
			if linkSets == nil {
				linkSets = []domain.Set{}
			}
			slices.SortStableFunc(linkSets, func(a, b domain.Set) int {
				return cmp.Compare(a.Order, b.Order)
			})

			detail.Exercises = append(detail.Exercises, domain.WorkoutExerciseDetail{
				Exercise: exercise,
				WorkoutExercise: domain.WorkoutExerciseInfo{
					ID:    l.ID,
					Order: l.Order,
					Notes: l.Notes,
				},
				Sets: linkSets,
			})
		}
		out = append(out, detail)
	}
	return out
}
