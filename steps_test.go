package twophase

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveStep(t *testing.T) {
	tests := []struct {
		move Move
		want Step
	}{
		{U, Step{AxisY, 2, Clockwise, 1}},
		{UPrime, Step{AxisY, 2, CounterClockwise, 1}},
		{D, Step{AxisY, 0, CounterClockwise, 1}},
		{R2, Step{AxisX, 2, Clockwise, 2}},
		{L, Step{AxisX, 0, CounterClockwise, 1}},
		{FPrime, Step{AxisZ, 2, CounterClockwise, 1}},
		{B2, Step{AxisZ, 0, CounterClockwise, 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.move.Step(), tt.move.Notation())
	}
}

func TestStepsSplitHalfTurns(t *testing.T) {
	moves := []Move{R2, U, Move{}}

	whole := Steps(moves, false)
	assert.Len(t, whole, 2)

	split := Steps(moves, true)
	assert.Equal(t, []Step{
		{AxisX, 2, Clockwise, 1},
		{AxisX, 2, Clockwise, 1},
		{AxisY, 2, Clockwise, 1},
	}, split)
}

func TestScramble(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	moves := Scramble(rng, 30)
	assert.Len(t, moves, 30)
	for i := 1; i < len(moves); i++ {
		assert.NotEqual(t, moves[i-1].Face, moves[i].Face, FormatMoves(moves))
	}
	assert.Empty(t, Scramble(rng, -1))

	again := Scramble(rand.New(rand.NewPCG(11, 12)), 30)
	assert.Equal(t, moves, again)
}
