package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pentad/internal/dynamo"
)

func TestBatchRunsAllInputs(t *testing.T) {
	store := &memStore{}
	batch := NewBatch(newOrchestrator(store), 4)

	inputs := make([]Input, 8)
	for i := range inputs {
		in := contractingInput()
		in.State[1] = float64(i) * 0.01
		inputs[i] = in
	}

	outputs, errs := batch.Run(context.Background(), inputs)
	require.Len(t, outputs, 8)
	for i := range outputs {
		require.NoError(t, errs[i], "input %d", i)
		assert.Equal(t, 101, outputs[i].Trajectory.Len())
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	batch := NewBatch(newOrchestrator(&memStore{}), 2)

	bad := contractingInput()
	bad.StepSize = -1

	outputs, errs := batch.Run(context.Background(), []Input{contractingInput(), bad, contractingInput()})

	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], dynamo.ErrEmptyTrajectory)
	assert.NoError(t, errs[2])
	assert.Nil(t, outputs[1])
	assert.NotNil(t, outputs[0])
	assert.NotNil(t, outputs[2])
}

func TestBatchMatchesSequentialRuns(t *testing.T) {
	orch := newOrchestrator(&memStore{})
	in := contractingInput()

	solo, err := orch.Run(context.Background(), in)
	require.NoError(t, err)

	outputs, errs := NewBatch(orch, 3).Run(context.Background(), []Input{in, in, in})
	for i := range outputs {
		require.NoError(t, errs[i])
		assert.Equal(t, solo.Knowledge.Commit.Digest, outputs[i].Knowledge.Commit.Digest)
		assert.Equal(t, solo.Decision, outputs[i].Decision)
	}
}
