// Package quiztake drives the quiz-taking lifecycle: select a quiz,
// answer questions, submit for server-side grading.
package quiztake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/store"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	// PhaseIdle: no quiz chosen.
	PhaseIdle Phase = iota
	// PhaseLoaded: question set fetched, answers accumulating.
	PhaseLoaded
	// PhaseSubmitted: grade available.
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoaded:
		return "loaded"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// ErrNoQuizLoaded is returned by operations that need a loaded quiz.
var ErrNoQuizLoaded = errors.New("no quiz loaded")

// API is the slice of the gateway the controller depends on.
type API interface {
	TakeQuiz(ctx context.Context, quizID int) ([]api.Question, error)
	GradeQuiz(ctx context.Context, quizID, studentID int, answers []api.GradeAnswer) (*api.Attempt, error)
}

// IdentitySource reports the verified identity, or nil.
type IdentitySource interface {
	Identity() *api.User
}

// AttemptLog records graded attempts locally. May be nil.
type AttemptLog interface {
	Append(rec store.AttemptRecord) error
}

// Controller is the quiz session state machine. It owns the ephemeral
// session state exclusively: the loaded question set, the answer map,
// and the grade. It performs no grading of its own. The mutex is held
// for state access only, never across network calls; select tokens
// resolve the races that opens up.
type Controller struct {
	api API
	ids IdentitySource
	log AttemptLog

	mu        sync.Mutex
	phase     Phase
	quiz      api.Quiz
	questions []api.Question
	answers   map[int]int // question id -> selected choice id
	attemptID string
	score     float64
	seq       uint64
}

// New creates an idle Controller. log may be nil.
func New(client API, ids IdentitySource, log AttemptLog) *Controller {
	return &Controller{api: client, ids: ids, log: log}
}

// Phase returns the current lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Quiz returns the selected quiz. Meaningful only outside PhaseIdle.
func (c *Controller) Quiz() api.Quiz {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quiz
}

// Questions returns the loaded question set in server order. The slice
// is shared; callers treat it as read-only.
func (c *Controller) Questions() []api.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions
}

// Score returns the grade percentage. Meaningful only in PhaseSubmitted.
func (c *Controller) Score() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// Answered returns how many questions currently have an answer.
func (c *Controller) Answered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.answers)
}

// Selected returns the chosen choice id for a question, or false.
func (c *Controller) Selected(questionID int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.answers[questionID]
	return id, ok
}

// Select fetches the question set for quiz through the redacted take
// path and moves to PhaseLoaded from any state. Any in-progress answers
// for a previously selected quiz are discarded unconditionally. Each
// select is issued a token; a response that is no longer the latest is
// discarded on arrival. A failed fetch leaves the prior state in place.
func (c *Controller) Select(ctx context.Context, quiz api.Quiz) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	questions, err := c.api.TakeQuiz(ctx, quiz.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		// A newer select was issued while this one was in flight.
		return nil
	}
	if err != nil {
		return err
	}

	c.quiz = quiz
	c.questions = questions
	c.answers = make(map[int]int, len(questions))
	c.attemptID = uuid.NewString()
	c.score = 0
	c.phase = PhaseLoaded
	return nil
}

// Answer records the selected choice for a question, overwriting any
// previous selection for the same question id. Answering every question
// is not required.
func (c *Controller) Answer(questionID, choiceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseLoaded {
		return ErrNoQuizLoaded
	}
	for _, q := range c.questions {
		if q.ID == questionID {
			c.answers[questionID] = choiceID
			return nil
		}
	}
	return &api.ErrValidation{Detail: fmt.Sprintf("question %d is not part of the loaded quiz", questionID)}
}

// Submit sends the answers for grading and moves to PhaseSubmitted.
// Requires a verified identity: without one the call is rejected before
// any network request. The payload enumerates every loaded question in
// order, with null for the unanswered ones, so positional
// correspondence with the question set is preserved for grading.
func (c *Controller) Submit(ctx context.Context) (*api.Attempt, error) {
	c.mu.Lock()
	if c.phase != PhaseLoaded {
		c.mu.Unlock()
		return nil, ErrNoQuizLoaded
	}
	identity := c.ids.Identity()
	if identity == nil {
		c.mu.Unlock()
		return nil, &api.ErrAuthRequired{Op: "submit quiz"}
	}

	token := c.seq
	quiz := c.quiz
	answered := len(c.answers)
	total := len(c.questions)
	attemptID := c.attemptID
	answers := make([]api.GradeAnswer, 0, len(c.questions))
	for _, q := range c.questions {
		ga := api.GradeAnswer{Question: q.ID}
		if choiceID, ok := c.answers[q.ID]; ok {
			ga.SelectedChoice = &choiceID
		}
		answers = append(answers, ga)
	}
	c.mu.Unlock()

	attempt, err := c.api.GradeQuiz(ctx, quiz.ID, identity.ID, answers)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if token == c.seq {
		c.score = attempt.Score
		c.phase = PhaseSubmitted
	}
	c.mu.Unlock()

	if c.log != nil {
		rec := store.AttemptRecord{
			ID:        attemptID,
			QuizID:    quiz.ID,
			QuizTitle: quiz.Title,
			Score:     attempt.Score,
			Answered:  answered,
			Total:     total,
		}
		if logErr := c.log.Append(rec); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record attempt: %v\n", logErr)
		}
	}
	return attempt, nil
}
