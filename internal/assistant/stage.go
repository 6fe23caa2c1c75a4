// Package assistant coordinates the query pipeline: it drives the backend
// calls, keeps the processing stage indicator in sync with network activity
// and folds responses into the local chat state.
package assistant

import "github.com/Rrens/assistant-cli/internal/store"

// StageID identifies a step of the visible query-processing pipeline.
type StageID string

const (
	StageIdle         StageID = "idle"
	StageRecording    StageID = "recording"
	StageTranscribing StageID = "transcribing"
	StageRouting      StageID = "routing"
	StageProcessing   StageID = "processing"
	StageGenerating   StageID = "generating"
	StageComplete     StageID = "complete"
	StageError        StageID = "error"
)

// Stage is a pipeline step with its display label and icon.
type Stage struct {
	ID    StageID
	Label string
	Icon  string
}

var stages = map[StageID]Stage{
	StageIdle:         {ID: StageIdle, Label: "", Icon: ""},
	StageRecording:    {ID: StageRecording, Label: "Recording audio...", Icon: "🎤"},
	StageTranscribing: {ID: StageTranscribing, Label: "Transcribing speech...", Icon: "📝"},
	StageRouting:      {ID: StageRouting, Label: "Router analyzing query...", Icon: "🔀"},
	StageProcessing:   {ID: StageProcessing, Label: "Agent processing...", Icon: "⚙️"},
	StageGenerating:   {ID: StageGenerating, Label: "Generating response...", Icon: "💭"},
	StageComplete:     {ID: StageComplete, Label: "Complete!", Icon: "✅"},
	StageError:        {ID: StageError, Label: "Error occurred", Icon: "❌"},
}

// StageFor returns the display stage for id.
func StageFor(id StageID) Stage {
	return stages[id]
}

// Agent describes one of the backend's specialized responders.
type Agent struct {
	ID          string
	Name        string
	Color       string
	Icon        string
	Description string
}

var agents = map[string]Agent{
	"general":      {ID: "general", Name: "General", Color: "#4a90d9", Icon: "💡", Description: "Knowledge & explanations"},
	"coding":       {ID: "coding", Name: "Coding", Color: "#f39c12", Icon: "💻", Description: "Programming & debugging"},
	"grammar":      {ID: "grammar", Name: "Grammar", Color: "#9b59b6", Icon: "✏️", Description: "Sentence correction"},
	"research":     {ID: "research", Name: "Research", Color: "#1abc9c", Icon: "🔍", Description: "Deep analysis"},
	"planning":     {ID: "planning", Name: "Planner", Color: "#e74c3c", Icon: "📋", Description: "Step-by-step plans"},
	"creative":     {ID: "creative", Name: "Creative", Color: "#e91e63", Icon: "🎨", Description: "Writing & content"},
	"math":         {ID: "math", Name: "Math", Color: "#3498db", Icon: "🔢", Description: "Calculations & problems"},
	"conversation": {ID: "conversation", Name: "Conversation", Color: "#27ae60", Icon: "💬", Description: "Casual chat"},
}

// AgentFor returns the catalog entry for id, defaulting to general when the
// identifier is unrecognized.
func AgentFor(id string) Agent {
	if a, ok := agents[id]; ok {
		return a
	}
	return agents["general"]
}

// Machine broadcasts pipeline progress to observers. It records the latest
// assigned stage; it does not validate transition legality.
type Machine struct {
	stage    *store.Store[Stage]
	agent    *store.Store[string]
	question *store.Store[string]
	answer   *store.Store[string]
	errMsg   *store.Store[string]
}

// NewMachine creates a machine in the idle stage.
func NewMachine() *Machine {
	return &Machine{
		stage:    store.New(StageFor(StageIdle)),
		agent:    store.New(""),
		question: store.New(""),
		answer:   store.New(""),
		errMsg:   store.New(""),
	}
}

// Stage exposes the current stage for subscription.
func (m *Machine) Stage() *store.Store[Stage] { return m.stage }

// Agent exposes the current agent identifier for subscription.
func (m *Machine) Agent() *store.Store[string] { return m.agent }

// Question exposes the current question for subscription.
func (m *Machine) Question() *store.Store[string] { return m.question }

// Answer exposes the latest answer for subscription.
func (m *Machine) Answer() *store.Store[string] { return m.answer }

// Error exposes the latest error message for subscription.
func (m *Machine) Error() *store.Store[string] { return m.errMsg }

// SetStage records the given stage. The current agent is left untouched.
func (m *Machine) SetStage(id StageID) {
	m.stage.Set(StageFor(id))
}

// SetProcessing records the processing stage with its label rewritten for
// the given agent, and records the agent at the same time.
func (m *Machine) SetProcessing(agentID string) {
	agent := AgentFor(agentID)
	stage := StageFor(StageProcessing)
	stage.Label = agent.Icon + " " + agent.Name + " agent processing..."
	m.stage.Set(stage)
	m.agent.Set(agentID)
}

// SetQuestion records the question currently being answered.
func (m *Machine) SetQuestion(q string) {
	m.question.Set(q)
}

// SetAnswer records the latest answer.
func (m *Machine) SetAnswer(a string) {
	m.answer.Set(a)
}

// ClearError clears the error message without touching the stage.
func (m *Machine) ClearError() {
	m.errMsg.Set("")
}

// Fail records the error stage and the failure message.
func (m *Machine) Fail(msg string) {
	m.stage.Set(StageFor(StageError))
	m.errMsg.Set(msg)
}

// Reset returns to idle and clears the error message.
func (m *Machine) Reset() {
	m.stage.Set(StageFor(StageIdle))
	m.errMsg.Set("")
}
