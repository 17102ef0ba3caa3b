package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/scripting"
)

func newEvaluator(t *testing.T, src string) *scripting.Evaluator {
	t.Helper()
	e := scripting.NewEvaluator(zap.NewNop(), 0)
	t.Cleanup(e.Close)
	require.NoError(t, e.LoadString(src))
	return e
}

func TestEvalChoicePrecondition_ReadsSnapshots(t *testing.T) {
	e := newEvaluator(t, `
function any_stealthy(participants)
  for _, p in ipairs(participants) do
    if (p.skills["Stealth"] or 0) > 0 then
      return true
    end
  end
  return false
end
`)

	sneaky := scripting.SurvivorInfo{
		Name:   "Ghost",
		Skills: map[string]int{"Stealth": 2},
	}
	clumsy := scripting.SurvivorInfo{Name: "Brick", Skills: map[string]int{}}

	ok, err := e.EvalChoicePrecondition("any_stealthy", []scripting.SurvivorInfo{clumsy, sneaky})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.EvalChoicePrecondition("any_stealthy", []scripting.SurvivorInfo{clumsy})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvalChoicePrecondition_AttributesAndFlags(t *testing.T) {
	e := newEvaluator(t, `
function fit_for_duty(participants)
  local p = participants[1]
  return p.attributes["CON"] >= 5 and not p.injured
end
`)

	healthy := scripting.SurvivorInfo{
		Name:       "Ana",
		Attributes: map[string]int{"CON": 7},
	}
	ok, err := e.EvalChoicePrecondition("fit_for_duty", []scripting.SurvivorInfo{healthy})
	require.NoError(t, err)
	assert.True(t, ok)

	hurt := healthy
	hurt.Injured = true
	ok, err = e.EvalChoicePrecondition("fit_for_duty", []scripting.SurvivorInfo{hurt})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvalChoicePrecondition_MissingFunctionErrors(t *testing.T) {
	e := newEvaluator(t, `x = 1`)
	_, err := e.EvalChoicePrecondition("nope", nil)
	assert.Error(t, err)
}

func TestEvalChoicePrecondition_NonBooleanReturnErrors(t *testing.T) {
	e := newEvaluator(t, `
function bad(participants)
  return 42
end
`)
	_, err := e.EvalChoicePrecondition("bad", nil)
	assert.Error(t, err)
}

func TestEvalChoicePrecondition_RunawayScriptIsTerminated(t *testing.T) {
	e := scripting.NewEvaluator(zap.NewNop(), 1000)
	t.Cleanup(e.Close)
	require.NoError(t, e.LoadString(`
function spin(participants)
  while true do end
end
`))
	_, err := e.EvalChoicePrecondition("spin", nil)
	assert.Error(t, err)
}

func TestEvalChoicePrecondition_BudgetResetsBetweenCalls(t *testing.T) {
	e := scripting.NewEvaluator(zap.NewNop(), 5000)
	t.Cleanup(e.Close)
	require.NoError(t, e.LoadString(`
function busy(participants)
  local n = 0
  for i = 1, 200 do n = n + i end
  return n > 0
end
`))
	for i := 0; i < 50; i++ {
		ok, err := e.EvalChoicePrecondition("busy", nil)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSandbox_DangerousGlobalsRemoved(t *testing.T) {
	e := newEvaluator(t, `
function escape_attempt(participants)
  return dofile == nil and loadfile == nil and load == nil and require == nil
end
`)
	ok, err := e.EvalChoicePrecondition("escape_attempt", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
