// Package aigen runs quiz drafting in two phases: generate a draft from
// study material, then commit the reviewed draft as a real quiz.
package aigen

import (
	"context"
	"encoding/json"

	"github.com/abhisek/edusuite/internal/api"
)

// API is the slice of the gateway the pipeline depends on.
type API interface {
	GenerateQuestions(ctx context.Context, text string, file *api.FilePayload) ([]api.DraftQuestion, error)
	CreateQuiz(ctx context.Context, title string, questions []api.DraftQuestion) (*api.Quiz, error)
}

// Pipeline holds at most one draft in memory. Generation never creates
// server-side state beyond the transient generation request itself; a
// quiz exists only after an explicit Commit. Replacing or discarding a
// draft loses it.
type Pipeline struct {
	api     API
	creds   api.CredentialSource
	refresh func(ctx context.Context) error
	draft   []api.DraftQuestion
}

// New creates a Pipeline. refresh, when non-nil, is invoked after a
// successful commit so the quiz list reflects the new quiz.
func New(client API, creds api.CredentialSource, refresh func(ctx context.Context) error) *Pipeline {
	return &Pipeline{api: client, creds: creds, refresh: refresh}
}

// Draft returns the current draft questions, correctness flags intact.
func (p *Pipeline) Draft() []api.DraftQuestion { return p.draft }

// HasDraft reports whether a draft is awaiting review.
func (p *Pipeline) HasDraft() bool { return len(p.draft) > 0 }

// Generate asks the platform for a quiz draft from text and/or a file
// and holds the result in memory, replacing any previous draft. At
// least one input is required. The response is checked against the
// draft schema before it is accepted.
func (p *Pipeline) Generate(ctx context.Context, text string, file *api.FilePayload) error {
	if text == "" && file == nil {
		return &api.ErrValidation{Detail: "source text or a file is required"}
	}
	if p.creds == nil || p.creds.Credential() == "" {
		return &api.ErrAuthRequired{Op: "generate questions"}
	}

	questions, err := p.api.GenerateQuestions(ctx, text, file)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(map[string]any{"questions": questions})
	if err != nil {
		return &api.ErrMalformedResponse{Err: err}
	}
	if err := validateDraft(raw); err != nil {
		return &api.ErrMalformedResponse{Body: raw, Err: err}
	}

	p.draft = questions
	return nil
}

// Commit creates a quiz from the current draft and discards the draft
// on success. The draft itself is the payload: what was reviewed is
// what gets created.
func (p *Pipeline) Commit(ctx context.Context, title string) (*api.Quiz, error) {
	if title == "" {
		return nil, &api.ErrValidation{Detail: "quiz title is required"}
	}
	if len(p.draft) == 0 {
		return nil, &api.ErrValidation{Detail: "nothing to commit: generate a draft first"}
	}
	if p.creds == nil || p.creds.Credential() == "" {
		return nil, &api.ErrAuthRequired{Op: "create quiz"}
	}

	quiz, err := p.api.CreateQuiz(ctx, title, p.draft)
	if err != nil {
		return nil, err
	}
	p.draft = nil

	if p.refresh != nil {
		if err := p.refresh(ctx); err != nil {
			return quiz, err
		}
	}
	return quiz, nil
}

// Discard drops the current draft without creating anything.
func (p *Pipeline) Discard() { p.draft = nil }
