package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRows(fill func(day, hour int) int) [][]int {
	rows := make([][]int, DaysInWeek)
	for d := 0; d < DaysInWeek; d++ {
		rows[d] = make([]int, HoursInDay)
		for h := 0; h < HoursInDay; h++ {
			rows[d][h] = fill(d, h)
		}
	}
	return rows
}

func TestNewDemandMatrixValidShape(t *testing.T) {
	rows := makeRows(func(d, h int) int { return 0 })
	d, err := NewDemandMatrix(rows)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestNewDemandMatrixRejectsWrongShape(t *testing.T) {
	_, err := NewDemandMatrix([][]int{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidDemandShape)
}

func TestNewDemandMatrixRejectsNegative(t *testing.T) {
	rows := makeRows(func(d, h int) int { return 0 })
	rows[0][0] = -1
	_, err := NewDemandMatrix(rows)
	assert.ErrorIs(t, err, ErrInvalidDemandShape)
}

// Required matrix: R[d][h] = ceil(D[d][h] / rate) when D[d][h] > 0, else 0.
func TestDeriveRequiredCeiling(t *testing.T) {
	rows := makeRows(func(d, h int) int { return 0 })
	rows[0][10] = 13
	d, err := NewDemandMatrix(rows)
	require.NoError(t, err)

	r := DeriveRequired(d, 12)
	assert.Equal(t, 2, r[Monday][10])
	assert.Equal(t, 0, r[Monday][11])
}

func TestDeriveRequiredZeroDemandStaysZero(t *testing.T) {
	rows := makeRows(func(d, h int) int { return 0 })
	d, err := NewDemandMatrix(rows)
	require.NoError(t, err)
	r := DeriveRequired(d, 12)
	assert.True(t, r.IsZero())
}
