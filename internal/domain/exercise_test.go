package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutinasapp/rutinas-api/internal/domain"
)

func TestNewExercise(t *testing.T) {
	t.Parallel()

	t.Run("valid exercise", func(t *testing.T) {
		t.Parallel()
		exercise, err := domain.NewExercise(7, "Peso muerto", domain.Friday, 3, 5, floatPtr(100), strPtr("barra"), 1)
		require.NoError(t, err)

		assert.Equal(t, int64(7), exercise.OwnerID)
		assert.Equal(t, "Peso muerto", exercise.Name)
		assert.Equal(t, domain.Friday, exercise.Day)
		assert.Equal(t, 3, exercise.Sets)
		assert.Equal(t, 5, exercise.Reps)
		require.NotNil(t, exercise.Weight)
		assert.Equal(t, 100.0, *exercise.Weight)
		assert.Zero(t, exercise.ID)
		assert.Zero(t, exercise.RoutineID)
	})

	t.Run("optional fields may be nil", func(t *testing.T) {
		t.Parallel()
		exercise, err := domain.NewExercise(7, "Plancha", domain.Sunday, 3, 1, nil, nil, 0)
		require.NoError(t, err)

		assert.Nil(t, exercise.Weight)
		assert.Nil(t, exercise.Notes)
	})

	tests := []struct {
		name     string
		exName   string
		day      domain.Weekday
		sets     int
		reps     int
		expected error
	}{
		{"empty name", "", domain.Monday, 3, 10, domain.ErrEmptyExerciseName},
		{"unknown day", "Remo", domain.Weekday("Funday"), 3, 10, domain.ErrInvalidWeekday},
		{"zero sets", "Remo", domain.Monday, 0, 10, domain.ErrInvalidSets},
		{"negative sets", "Remo", domain.Monday, -1, 10, domain.ErrInvalidSets},
		{"zero reps", "Remo", domain.Monday, 3, 0, domain.ErrInvalidReps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewExercise(7, tt.exName, tt.day, tt.sets, tt.reps, nil, nil, 1)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExercisePatchApply(t *testing.T) {
	t.Parallel()

	base := func(t *testing.T) *domain.Exercise {
		t.Helper()
		exercise, err := domain.NewExercise(7, "Remo", domain.Tuesday, 4, 8, floatPtr(50), nil, 2)
		require.NoError(t, err)
		return exercise
	}

	t.Run("unset fields are preserved", func(t *testing.T) {
		t.Parallel()
		exercise := base(t)
		patch := &domain.ExercisePatch{Weight: floatPtr(55)}

		require.NoError(t, patch.Apply(exercise))

		assert.Equal(t, "Remo", exercise.Name)
		assert.Equal(t, domain.Tuesday, exercise.Day)
		assert.Equal(t, 4, exercise.Sets)
		require.NotNil(t, exercise.Weight)
		assert.Equal(t, 55.0, *exercise.Weight)
	})

	t.Run("full patch overwrites every field", func(t *testing.T) {
		t.Parallel()
		exercise := base(t)
		patch := &domain.ExercisePatch{
			Name:     strPtr("Remo con barra"),
			Day:      dayPtr(domain.Thursday),
			Sets:     intPtr(5),
			Reps:     intPtr(6),
			Weight:   floatPtr(60),
			Notes:    strPtr("agarre prono"),
			Position: intPtr(3),
		}

		require.NoError(t, patch.Apply(exercise))

		assert.Equal(t, "Remo con barra", exercise.Name)
		assert.Equal(t, domain.Thursday, exercise.Day)
		assert.Equal(t, 5, exercise.Sets)
		assert.Equal(t, 6, exercise.Reps)
		require.NotNil(t, exercise.Notes)
		assert.Equal(t, "agarre prono", *exercise.Notes)
		assert.Equal(t, 3, exercise.Position)
	})

	t.Run("patch leaving the exercise invalid is rejected", func(t *testing.T) {
		t.Parallel()
		exercise := base(t)
		patch := &domain.ExercisePatch{Sets: intPtr(-2)}

		err := patch.Apply(exercise)
		assert.ErrorIs(t, err, domain.ErrInvalidSets)
	})
}
