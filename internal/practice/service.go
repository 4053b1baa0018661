// Package practice orchestrates one practice conversation end to end:
// transcribe the learner, route the utterance through task state, compose the
// next instruction, generate and voice the reply, and reduce the finished
// session into a report.
package practice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parlolabs/parlo/internal/convo"
	"github.com/parlolabs/parlo/internal/eval"
	"github.com/parlolabs/parlo/internal/groq"
)

// Responder generates assistant replies. Satisfied by *groq.Client. Per its
// contract it degrades to a fallback string instead of failing.
type Responder interface {
	Complete(ctx context.Context, system string, messages []groq.Message) string
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Speaker voices assistant text. Degrades to a fallback tone, never fails.
type Speaker interface {
	Synthesize(ctx context.Context, text string) []byte
}

// Publisher emits session lifecycle events. Optional.
type Publisher interface {
	Publish(subject string, data any) error
}

// Archiver persists finished sessions. Optional; archival failure is logged,
// never surfaced to the learner.
type Archiver interface {
	SaveSession(ctx context.Context, session *convo.Session, report *eval.Report) error
}

type Service struct {
	sessions  *convo.Manager
	llm       Responder
	stt       Transcriber
	speech    Speaker
	evaluator *eval.Evaluator
	events    Publisher
	archive   Archiver
	logger    *slog.Logger
}

func New(llm Responder, stt Transcriber, speech Speaker, evaluator *eval.Evaluator, events Publisher, archive Archiver, logger *slog.Logger) *Service {
	return &Service{
		sessions:  convo.NewManager(),
		llm:       llm,
		stt:       stt,
		speech:    speech,
		evaluator: evaluator,
		events:    events,
		archive:   archive,
		logger:    logger,
	}
}

// StartResult is the outcome of level selection: a fresh session opened by an
// assistant greeting.
type StartResult struct {
	SessionID uuid.UUID
	Greeting  string
	Audio     []byte
}

// UtteranceResult is the outcome of one processed user utterance.
type UtteranceResult struct {
	Transcription  string
	Reply          string
	Audio          []byte
	TaskCompleted  bool
	AssignedTaskID int // 0 when no task was assigned this turn
}

// Start opens a new session at the given level and produces the greeting.
func (s *Service) Start(ctx context.Context, level convo.Level) (*StartResult, error) {
	session := s.sessions.Create(level)
	session.Lock()
	defer session.Unlock()

	greeting := s.llm.Complete(ctx, convo.GreetingPrompt(level), nil)
	if err := session.AppendTurn(convo.RoleAssistant, greeting); err != nil {
		return nil, fmt.Errorf("record greeting: %w", err)
	}

	s.logger.Info("session started", "session_id", session.ID, "level", level)
	s.publish(SubjectSessionStarted, SessionEvent{SessionID: session.ID.String(), Level: string(level)})

	return &StartResult{
		SessionID: session.ID,
		Greeting:  greeting,
		Audio:     s.speech.Synthesize(ctx, greeting),
	}, nil
}

// SubmitUtterance processes one recorded user utterance: transcription, task
// routing, reply generation, task extraction, and synthesis. Transcription
// failure aborts the request before any session state is touched.
func (s *Service) SubmitUtterance(ctx context.Context, id uuid.UUID, audio []byte) (*UtteranceResult, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	transcription, err := s.stt.Transcribe(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("transcribe utterance: %w", err)
	}

	session.Lock()
	defer session.Unlock()
	profile := session.Profile()

	if err := session.AppendTurn(convo.RoleUser, transcription); err != nil {
		return nil, fmt.Errorf("record utterance: %w", err)
	}

	// Routing happens before the prompt is composed: a completed task flips
	// the instruction to the feedback variant.
	taskCompleted, err := convo.RouteUtterance(profile, transcription)
	if err != nil {
		return nil, fmt.Errorf("route utterance: %w", err)
	}
	if taskCompleted {
		s.publish(SubjectTaskCompleted, TaskEvent{SessionID: id.String(), Response: transcription})
	}

	system := convo.ComposePrompt(profile.Level, session.TurnCount(), taskCompleted, profile.Tasks.Count())
	response := s.llm.Complete(ctx, system, toMessages(session.Turns()))

	reply, task, err := convo.ExtractTask(profile, response)
	if err != nil {
		return nil, fmt.Errorf("extract task: %w", err)
	}
	if task != nil {
		s.logger.Info("task assigned", "session_id", id, "task_id", task.ID)
		s.publish(SubjectTaskAssigned, TaskEvent{SessionID: id.String(), TaskID: task.ID, Description: task.Description})
	}

	if err := session.AppendTurn(convo.RoleAssistant, reply); err != nil {
		return nil, fmt.Errorf("record reply: %w", err)
	}

	result := &UtteranceResult{
		Transcription: transcription,
		Reply:         reply,
		Audio:         s.speech.Synthesize(ctx, reply),
		TaskCompleted: taskCompleted,
	}
	if task != nil {
		result.AssignedTaskID = task.ID
	}
	return result, nil
}

// End evaluates the session and closes it. The session survives an empty
// transcript: nothing was said, nothing is torn down.
func (s *Service) End(ctx context.Context, id uuid.UUID) (*eval.Report, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	report, err := s.evaluator.Evaluate(ctx, session.Profile(), session.Turns())
	if err != nil {
		return nil, err
	}

	s.logger.Info("session evaluated", "session_id", id, "word_count", report.WordCount)
	s.publish(SubjectSessionEvaluated, SessionEvent{SessionID: id.String(), Level: string(report.Level)})

	if s.archive != nil {
		if err := s.archive.SaveSession(ctx, session, report); err != nil {
			s.logger.Warn("failed to archive session", "session_id", id, "error", err)
		}
	}
	s.sessions.Remove(id)

	return report, nil
}

func (s *Service) publish(subject string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func toMessages(turns []convo.Turn) []groq.Message {
	msgs := make([]groq.Message, len(turns))
	for i, t := range turns {
		msgs[i] = groq.Message{Role: string(t.Role), Content: t.Text}
	}
	return msgs
}
