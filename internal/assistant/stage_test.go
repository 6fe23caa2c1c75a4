package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_StartsIdle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StageIdle, m.Stage().Get().ID)
	assert.Equal(t, "", m.Error().Get())
}

func TestMachine_SetProcessingRewritesLabel(t *testing.T) {
	t.Run("known agent", func(t *testing.T) {
		m := NewMachine()
		m.SetProcessing("math")

		stage := m.Stage().Get()
		assert.Equal(t, StageProcessing, stage.ID)
		assert.Equal(t, "🔢 Math agent processing...", stage.Label)
		assert.Equal(t, "math", m.Agent().Get())
	})

	t.Run("unknown agent falls back to general", func(t *testing.T) {
		m := NewMachine()
		m.SetProcessing("quantum")

		stage := m.Stage().Get()
		assert.Equal(t, "💡 General agent processing...", stage.Label)
		// The raw identifier is still recorded
		assert.Equal(t, "quantum", m.Agent().Get())
	})
}

func TestMachine_SetStageLeavesAgentUntouched(t *testing.T) {
	m := NewMachine()
	m.SetProcessing("coding")
	m.SetStage(StageGenerating)

	assert.Equal(t, StageGenerating, m.Stage().Get().ID)
	assert.Equal(t, "coding", m.Agent().Get())
}

func TestMachine_FailAndReset(t *testing.T) {
	m := NewMachine()
	m.SetStage(StageRouting)
	m.Fail("backend unreachable")

	assert.Equal(t, StageError, m.Stage().Get().ID)
	assert.Equal(t, "backend unreachable", m.Error().Get())

	m.Reset()
	assert.Equal(t, StageIdle, m.Stage().Get().ID)
	assert.Equal(t, "", m.Error().Get())
}

func TestAgentFor(t *testing.T) {
	assert.Equal(t, "Coding", AgentFor("coding").Name)
	assert.Equal(t, "General", AgentFor("").Name)
	assert.Equal(t, "General", AgentFor("nope").Name)
}

func TestDeriveTitle(t *testing.T) {
	t.Run("short question unchanged", func(t *testing.T) {
		assert.Equal(t, "what is 2+2", deriveTitle("what is 2+2"))
	})

	t.Run("exactly fifty characters unchanged", func(t *testing.T) {
		q := ""
		for i := 0; i < 50; i++ {
			q += "x"
		}
		assert.Equal(t, q, deriveTitle(q))
	})

	t.Run("long question truncated with ellipsis", func(t *testing.T) {
		q := ""
		for i := 0; i < 73; i++ {
			q += "y"
		}
		got := deriveTitle(q)
		assert.Equal(t, q[:50]+"...", got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		q := ""
		for i := 0; i < 60; i++ {
			q += "é"
		}
		got := deriveTitle(q)
		assert.Equal(t, []rune(q)[:50], []rune(got)[:50])
		assert.Equal(t, 53, len([]rune(got)))
	})
}
