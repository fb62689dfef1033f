package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/testutil"
	"github.com/vk/intentc/internal/validate"
)

func TestBuildSequentialEdges(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("explorer", ""),
		testutil.Agent("builder", "after explorer completes"),
	)

	g, warnings, err := Build(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	builder := g.Node("builder")
	require.Len(t, builder.Deps(), 1)
	assert.Equal(t, "explorer", builder.Deps()[0].Name)
	assert.True(t, g.Node("explorer").IsRoot())
}

func TestBuildBeforeInvertsEdge(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("gatekeeper", "before deployer"),
		testutil.Agent("deployer", ""),
	)

	g, _, err := Build(context.Background(), d)
	require.NoError(t, err)

	deployer := g.Node("deployer")
	require.Len(t, deployer.Deps(), 1)
	assert.Equal(t, "gatekeeper", deployer.Deps()[0].Name)
}

func TestBuildParallelAddsNoEdges(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", "in parallel with b"),
		testutil.Agent("b", "in parallel with a"),
	)

	g, warnings, err := Build(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, g.Node("a").IsRoot())
	assert.True(t, g.Node("b").IsRoot())
}

func TestBuildForEachMetadata(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("collector", "for each item in repositories"),
	)

	g, _, err := Build(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "repositories", g.Node("collector").ForEach)
}

func TestBuildLoopMetadata(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("reviewer", "until all criteria pass"),
	)

	g, _, err := Build(context.Background(), d)
	require.NoError(t, err)
	node := g.Node("reviewer")
	assert.Equal(t, "until", node.LoopKeyword)
	assert.Equal(t, "all criteria pass", node.LoopCondition)
}

func TestBuildAmbiguousHintWarnsAndAddsNoEdge(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", ""),
		testutil.Agent("b", "whenever convenient"),
	)

	g, warnings, err := Build(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, validate.KindAmbiguousSequencing, warnings[0].Kind)
	assert.Equal(t, validate.SeverityWarning, warnings[0].Severity)
	assert.True(t, g.Node("b").IsRoot())
}

func TestBuildUnknownTargetWarns(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", "after the nightly deploy"),
	)

	g, warnings, err := Build(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, validate.KindUnknownSequencingTarget, warnings[0].Kind)
	assert.True(t, g.Node("a").IsRoot())
}

func TestBuildCycleIsRejectedWithPath(t *testing.T) {
	// Contradictory hints: A after B, B after A.
	d := testutil.Decomposition(
		testutil.Agent("a", "after b completes"),
		testutil.Agent("b", "after a completes"),
	)

	_, _, err := Build(context.Background(), d)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
}

func TestBuildContradictoryBeforeAfterIsACycle(t *testing.T) {
	// "a before b" and "b before a" cannot both hold.
	d := testutil.Decomposition(
		grammar.Agent{Name: "a", Instruction: "x", Sequencing: "before b"},
		grammar.Agent{Name: "b", Instruction: "y", Sequencing: "before a"},
	)

	_, _, err := Build(context.Background(), d)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
}
