package assistant

import (
	"context"
	"time"

	"github.com/Rrens/assistant-cli/internal/client"
	"github.com/Rrens/assistant-cli/internal/config"
	"github.com/Rrens/assistant-cli/internal/domain"
	"github.com/Rrens/assistant-cli/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// titleLimit is the number of characters of the question used for a derived
// session title before truncation.
const titleLimit = 50

// Orchestrator is the central coordinator: it issues backend calls, drives
// the stage machine through its states and folds responses into the chat
// store. There is no isolation between overlapping invocations; two
// concurrent Ask calls interleave on the same machine and stores in
// whatever order their responses arrive.
type Orchestrator struct {
	client  *client.Client
	auth    *store.AuthStore
	chat    *store.ChatStore
	machine *Machine
	delays  config.StagesConfig
	logger  zerolog.Logger
}

// NewOrchestrator wires the coordinator to its collaborators.
func NewOrchestrator(
	c *client.Client,
	auth *store.AuthStore,
	chat *store.ChatStore,
	machine *Machine,
	delays config.StagesConfig,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		client:  c,
		auth:    auth,
		chat:    chat,
		machine: machine,
		delays:  delays,
		logger:  logger,
	}
}

// Machine returns the stage machine observed by presentation layers.
func (o *Orchestrator) Machine() *Machine { return o.machine }

// Chat returns the chat store observed by presentation layers.
func (o *Orchestrator) Chat() *store.ChatStore { return o.chat }

// AskText runs a text question through the pipeline. On success the stage
// machine ends at complete and any session updates from the response are
// folded into the chat store; on failure the machine ends at error with the
// failure message and the error is returned to the caller as well.
func (o *Orchestrator) AskText(ctx context.Context, text string) (*domain.AskResponse, error) {
	log := o.logger.With().Str("request_id", uuid.New().String()).Logger()

	o.machine.ClearError()
	o.machine.SetQuestion(text)

	activeID := o.chat.ActiveID()

	o.machine.SetStage(StageRouting)
	o.hold(o.delays.RoutingDelay)

	resp, err := o.client.AskText(ctx, domain.AskRequest{
		Question:  text,
		SessionID: activeID,
	})
	if err != nil {
		return nil, o.fail(log, err)
	}

	o.finishStages(resp)
	o.foldSession(activeID, text, resp)

	log.Info().
		Str("agent", resp.AgentUsed).
		Str("session_id", resp.SessionID).
		Msg("question answered")
	return resp, nil
}

// AskVoice runs recorded audio through the pipeline. The question text is
// not known until the backend returns the transcript, so it is taken from
// the response and used for title derivation and message pairing.
func (o *Orchestrator) AskVoice(ctx context.Context, audio []byte, extension string) (*domain.AskResponse, error) {
	if extension == "" {
		extension = ".webm"
	}
	log := o.logger.With().Str("request_id", uuid.New().String()).Logger()

	o.machine.ClearError()

	activeID := o.chat.ActiveID()

	o.machine.SetStage(StageTranscribing)
	o.hold(o.delays.TranscribingDelay)

	resp, err := o.client.AskVoice(ctx, audio, extension, activeID)
	if err != nil {
		return nil, o.fail(log, err)
	}

	o.machine.SetQuestion(resp.Question)

	o.machine.SetStage(StageRouting)
	o.hold(o.delays.RoutingDelay)

	o.finishStages(resp)
	o.foldSession(activeID, resp.Question, resp)

	log.Info().
		Str("agent", resp.AgentUsed).
		Str("session_id", resp.SessionID).
		Msg("voice question answered")
	return resp, nil
}

// finishStages walks the machine through processing, generating and
// complete, and records the agent and answer.
func (o *Orchestrator) finishStages(resp *domain.AskResponse) {
	agentID := resp.AgentUsed
	if agentID == "" {
		agentID = "general"
	}

	o.machine.SetProcessing(agentID)
	o.hold(o.delays.ProcessingDelay)

	o.machine.SetStage(StageGenerating)
	o.hold(o.delays.GeneratingDelay)

	o.machine.SetAnswer(resp.Answer)
	o.machine.SetStage(StageComplete)
}

// foldSession merges a response's session data into the chat store.
// activeID is the active session id captured at call start; when it was
// empty and the backend opened a session, a local entry is synthesized.
func (o *Orchestrator) foldSession(activeID, question string, resp *domain.AskResponse) {
	if resp.SessionID == "" {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if activeID == "" {
		title := resp.SessionTitle
		if title == "" {
			title = deriveTitle(question)
		}
		o.chat.AddSession(domain.Session{
			ID:        resp.SessionID,
			Title:     title,
			CreatedAt: now,
			UpdatedAt: now,
		})
		o.chat.Active().Set(resp.SessionID)
	}

	o.chat.AppendPair(question, resp.Answer, domain.MessageMeta{
		MessageID: resp.MessageID,
		QueryType: resp.QueryType,
		AgentUsed: resp.AgentUsed,
		Plan:      resp.Plan,
	})

	o.chat.UpdateSession(resp.SessionID, domain.SessionPatch{UpdatedAt: &now})
}

// fail records the failure for observers and hands it back to the caller.
func (o *Orchestrator) fail(log zerolog.Logger, err error) error {
	o.machine.Fail(err.Error())
	log.Error().Err(err).Msg("query failed")
	return err
}

func (o *Orchestrator) hold(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// deriveTitle builds a session title from the question: the first 50
// characters, with an ellipsis when truncated.
func deriveTitle(question string) string {
	runes := []rune(question)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return question
}
