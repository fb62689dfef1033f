package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/intentc/internal/dag"
	"github.com/vk/intentc/internal/gate"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/registry"
	"github.com/vk/intentc/internal/testutil"
	"github.com/vk/intentc/internal/validate"
)

func TestCompileHappyPath(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("explorer", ""),
		testutil.Agent("builder", "after explorer completes"),
	)

	res, err := Compile(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, res.Recipe)
	assert.Empty(t, res.Findings)
	assert.Equal(t, gate.StateAutoApproved, res.Gate)
	assert.Len(t, res.Recipe.Steps, 2)
}

func TestCompileInvalidInputHaltsBeforeGraphBuilding(t *testing.T) {
	// A missing trigger and a contradictory sequencing cycle: validation
	// must halt the pipeline first, so no cycle error surfaces.
	d := testutil.Decomposition(
		testutil.Agent("a", "after b completes"),
		testutil.Agent("b", "after a completes"),
	)
	d.Trigger = nil

	res, err := Compile(context.Background(), d)

	var invalidErr *validate.InvalidDecompositionError
	require.ErrorAs(t, err, &invalidErr)
	var cycleErr *dag.CycleError
	assert.False(t, errors.As(err, &cycleErr))

	assert.Nil(t, res.Recipe)
	kinds := findingKinds(res.Findings)
	assert.Contains(t, kinds, validate.KindMissingTrigger)
	assert.NotContains(t, kinds, validate.KindAmbiguousSequencing)
}

func TestCompileCycleSurfacesWithPath(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", "after b completes"),
		testutil.Agent("b", "after a completes"),
	)

	res, err := Compile(context.Background(), d)

	var cycleErr *dag.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
	assert.Nil(t, res.Recipe)
}

func TestCompileAggregatesWarnings(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", "whenever convenient"),
		testutil.Agent("b", ""),
	)
	d.Intent.SuccessCriteria = []string{"the code feels clean"}

	res, err := Compile(context.Background(), d)
	require.NoError(t, err, "warnings must not halt compilation")
	require.NotNil(t, res.Recipe)

	kinds := findingKinds(res.Findings)
	assert.Contains(t, kinds, validate.KindUnmeasurableCriterion)
	assert.Contains(t, kinds, validate.KindAmbiguousSequencing)
}

func TestCompileRegistryWarnsOnUnknownAgents(t *testing.T) {
	roster := registry.New()
	require.NoError(t, roster.Register(registry.Descriptor{Name: "builder"}))

	d := testutil.Decomposition(
		testutil.Agent("builder", ""),
		testutil.Agent("phantom", ""),
		testutil.Agent("self", ""),
	)

	res, err := Compile(context.Background(), d, WithRegistry(roster))
	require.NoError(t, err)

	var unknown []validate.Finding
	for _, f := range res.Findings {
		if f.Kind == validate.KindUnknownAgent {
			unknown = append(unknown, f)
		}
	}
	require.Len(t, unknown, 1, "self is exempt, builder is registered")
	assert.Contains(t, unknown[0].Message, "phantom")
	assert.Equal(t, validate.SeverityWarning, unknown[0].Severity)
}

func TestCompileGateStates(t *testing.T) {
	cases := []struct {
		confidence float64
		want       gate.State
	}{
		{0.1, gate.StateRejected},
		{0.5, gate.StateNeedsClarification},
		{0.9, gate.StateAutoApproved},
	}

	for _, tc := range cases {
		d := testutil.Decomposition(testutil.Agent("a", ""))
		d.Confidence = tc.confidence

		res, err := Compile(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.Gate, "confidence %.2f", tc.confidence)
	}
}

func TestCompileCustomGate(t *testing.T) {
	d := testutil.Decomposition(testutil.Agent("a", ""))
	d.Confidence = 0.5

	res, err := Compile(context.Background(), d, WithGate(gate.Gate{Low: 0.1, High: 0.3}))
	require.NoError(t, err)
	assert.Equal(t, gate.StateAutoApproved, res.Gate)
}

func TestCompileUpdatesState(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", ""),
		testutil.Agent("b", "after a completes"),
	)
	state := grammar.NewState(nil)

	_, err := Compile(context.Background(), d, WithState(state))
	require.NoError(t, err)

	assert.Same(t, d, state.Decomposition)
	assert.Equal(t, grammar.StatusPending, state.Status)
	assert.Equal(t, 2, state.StepsTotal)
	assert.Equal(t, 0, state.StepsCompleted)
}

func TestCompileFailureMarksStateFailed(t *testing.T) {
	d := testutil.Decomposition(testutil.Agent("a", ""))
	d.Intent = nil
	state := grammar.NewState(nil)

	_, err := Compile(context.Background(), d, WithState(state))
	require.Error(t, err)
	assert.Equal(t, grammar.StatusFailed, state.Status)
}

func findingKinds(findings []validate.Finding) []validate.Kind {
	kinds := make([]validate.Kind, 0, len(findings))
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}
