package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/intentc/internal/dag"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/testutil"
)

func compile(t *testing.T, d *grammar.Decomposition) *Recipe {
	t.Helper()
	g, _, err := dag.Build(context.Background(), d)
	require.NoError(t, err)
	r, err := Emit(d, g)
	require.NoError(t, err)
	return r
}

func TestEmitSequentialPair(t *testing.T) {
	// Agents [A: "", B: "after A completes"] must become
	// [{A, depends_on: []}, {B, depends_on: [A]}].
	d := testutil.Decomposition(
		testutil.Agent("A", ""),
		testutil.Agent("B", "after A completes"),
	)

	r := compile(t, d)
	require.Len(t, r.Steps, 2)

	assert.Equal(t, "A", r.Steps[0].Name)
	assert.Equal(t, "A", r.Steps[0].AgentRef)
	assert.NotNil(t, r.Steps[0].DependsOn)
	assert.Empty(t, r.Steps[0].DependsOn)

	assert.Equal(t, "B", r.Steps[1].Name)
	assert.Equal(t, []string{"A"}, r.Steps[1].DependsOn)
}

func TestEmitMutualParallel(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("A", "in parallel with B"),
		testutil.Agent("B", "in parallel with A"),
	)

	r := compile(t, d)
	require.Len(t, r.Steps, 2)
	assert.Empty(t, r.Steps[0].DependsOn)
	assert.Empty(t, r.Steps[1].DependsOn)
}

func TestEmitHumanConfirmationMarksOnlyRoots(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("rootA", ""),
		testutil.Agent("rootB", ""),
		testutil.Agent("downstream", "after rootA completes"),
	)
	d.Trigger.Confirmation = grammar.ConfirmationHuman

	r := compile(t, d)
	assert.Equal(t, ApprovalRequired, r.Step("rootA").Approval)
	assert.Equal(t, ApprovalRequired, r.Step("rootB").Approval)
	assert.Empty(t, r.Step("downstream").Approval)
}

func TestEmitAutoConfirmationMarksNothing(t *testing.T) {
	d := testutil.Decomposition(testutil.Agent("a", ""))

	r := compile(t, d)
	assert.Empty(t, r.Step("a").Approval)
}

func TestEmitForEachAndLoopMetadata(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("collector", "for each item in repositories"),
		testutil.Agent("reviewer", "until all criteria pass"),
		testutil.Agent("poller", "while the queue is non-empty"),
	)

	r := compile(t, d)
	assert.Equal(t, "repositories", r.Step("collector").ForEach)
	assert.Equal(t, "all criteria pass", r.Step("reviewer").BreakWhen)
	assert.Empty(t, r.Step("reviewer").While)
	assert.Equal(t, "the queue is non-empty", r.Step("poller").While)
	assert.Empty(t, r.Step("poller").BreakWhen)
}

func TestEmitTopLevelFields(t *testing.T) {
	d := testutil.Decomposition(testutil.Agent("a", ""))
	d.Intent.Goal = "Ship the Widget, fast!"
	d.Trigger.PreConditions = []string{"staging reachable"}
	d.Behaviors = []grammar.Behavior{{Name: "verbose"}, {Name: "tdd"}}

	r := compile(t, d)
	assert.Equal(t, "idd-ship-the-widget-fast", r.Name)
	assert.Equal(t, "Ship the Widget, fast!", r.Intent)
	assert.Equal(t, d.Intent.SuccessCriteria, r.SuccessCriteria)
	assert.Equal(t, "on-demand", r.Trigger.Activation)
	assert.Equal(t, []string{"staging reachable"}, r.Trigger.PreConditions)
	assert.Equal(t, "auto", r.Trigger.Confirmation)
	assert.Equal(t, []string{"verbose", "tdd"}, r.Behaviors)
}

func TestEmitContextInputs(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("explorer", ""),
		testutil.Agent("builder", "after explorer completes"),
	)
	d.Handoffs = []grammar.Handoff{
		{Producer: "explorer", Consumer: "builder", Output: "survey"},
	}

	r := compile(t, d)
	assert.Empty(t, r.Step("explorer").ContextInputs)
	assert.Equal(t, []string{"explorer.survey"}, r.Step("builder").ContextInputs)
}

func TestEmitTotality(t *testing.T) {
	// One step per node, no drops, no duplicates, regardless of shape.
	d := testutil.Decomposition(
		testutil.Agent("a", ""),
		testutil.Agent("b", "after a completes"),
		testutil.Agent("c", "in parallel"),
		testutil.Agent("d", "after b and c complete"),
		testutil.Agent("e", "for each item in shards"),
	)

	r := compile(t, d)
	require.Len(t, r.Steps, len(d.Agents))
	seen := make(map[string]int)
	for _, s := range r.Steps {
		seen[s.Name]++
	}
	for _, a := range d.Agents {
		assert.Equal(t, 1, seen[a.Name])
	}
}

func TestEmitStepOrderIsDeclarationStableTopological(t *testing.T) {
	// c and a are concurrent; declaration order breaks the tie.
	d := testutil.Decomposition(
		testutil.Agent("c", ""),
		testutil.Agent("a", ""),
		testutil.Agent("b", "after a completes"),
	)

	r := compile(t, d)
	names := []string{r.Steps[0].Name, r.Steps[1].Name, r.Steps[2].Name}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestEmitDependsOnDeclarationOrder(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("x", ""),
		testutil.Agent("y", ""),
		testutil.Agent("z", "after y and x complete"),
	)

	r := compile(t, d)
	assert.Equal(t, []string{"x", "y"}, r.Step("z").DependsOn)
}

func TestEmitIsIdempotent(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", ""),
		testutil.Agent("b", "after a completes"),
		testutil.Agent("c", "in parallel"),
	)
	d.Handoffs = []grammar.Handoff{{Producer: "a", Consumer: "b", Output: "out"}}

	first := compile(t, d)
	second := compile(t, d)

	b1, err := first.EncodeYAML()
	require.NoError(t, err)
	b2, err := second.EncodeYAML()
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2), "emission must be byte-for-byte deterministic")
}

func TestEncodeDecodeRecipe(t *testing.T) {
	d := testutil.Decomposition(
		testutil.Agent("a", ""),
		testutil.Agent("b", "after a completes"),
	)
	r := compile(t, d)

	data, err := r.EncodeYAML()
	require.NoError(t, err)

	decoded, err := DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestEmitEmptyGoalFallbackName(t *testing.T) {
	d := testutil.Decomposition(testutil.Agent("a", ""))
	d.Intent.Goal = "!!!"

	r := compile(t, d)
	assert.Equal(t, "idd-task", r.Name)
}
