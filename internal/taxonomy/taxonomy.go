// Package taxonomy synchronizes the subject/topic/chapter list views.
package taxonomy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/catalog"
)

// API is the slice of the gateway the synchronizer depends on.
type API interface {
	ListSubjects(ctx context.Context) ([]api.Subject, error)
	CreateSubject(ctx context.Context, name string) (*api.Subject, error)
	ListTopics(ctx context.Context) ([]api.Topic, error)
	CreateTopic(ctx context.Context, subjectID int, name string) (*api.Topic, error)
	ListChapters(ctx context.Context) ([]api.Chapter, error)
	CreateChapter(ctx context.Context, topicID int, title string) (*api.Chapter, error)
}

// Synchronizer holds the three taxonomy slots. Creation requires a
// credential and triggers a full refetch of the affected slot.
type Synchronizer struct {
	api      API
	creds    api.CredentialSource
	subjects *catalog.Slot[api.Subject]
	topics   *catalog.Slot[api.Topic]
	chapters *catalog.Slot[api.Chapter]
}

// New creates a Synchronizer.
func New(client API, creds api.CredentialSource) *Synchronizer {
	return &Synchronizer{
		api:      client,
		creds:    creds,
		subjects: catalog.NewSlot(client.ListSubjects),
		topics:   catalog.NewSlot(client.ListTopics),
		chapters: catalog.NewSlot(client.ListChapters),
	}
}

// RefreshAll fans out the three fetches concurrently and joins before
// returning; state is only guaranteed consistent once all complete.
func (s *Synchronizer) RefreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.subjects.Refresh(gctx) })
	g.Go(func() error { return s.topics.Refresh(gctx) })
	g.Go(func() error { return s.chapters.Refresh(gctx) })
	return g.Wait()
}

func (s *Synchronizer) Subjects() []api.Subject { return s.subjects.Items() }
func (s *Synchronizer) Topics() []api.Topic     { return s.topics.Items() }
func (s *Synchronizer) Chapters() []api.Chapter { return s.chapters.Items() }

// requireCredential is the local pre-flight check shared by the create
// operations; it never issues a request.
func (s *Synchronizer) requireCredential(op string) error {
	if s.creds == nil || s.creds.Credential() == "" {
		return &api.ErrAuthRequired{Op: op}
	}
	return nil
}

// CreateSubject validates locally, dispatches, and refetches the
// subject list in full.
func (s *Synchronizer) CreateSubject(ctx context.Context, name string) error {
	if name == "" {
		return &api.ErrValidation{Detail: "subject name is required"}
	}
	if err := s.requireCredential("create subject"); err != nil {
		return err
	}
	if _, err := s.api.CreateSubject(ctx, name); err != nil {
		return err
	}
	return s.subjects.Refresh(ctx)
}

// CreateTopic validates locally, dispatches, and refetches the topic
// list in full.
func (s *Synchronizer) CreateTopic(ctx context.Context, subjectID int, name string) error {
	if subjectID <= 0 || name == "" {
		return &api.ErrValidation{Detail: "topic requires a subject and a name"}
	}
	if err := s.requireCredential("create topic"); err != nil {
		return err
	}
	if _, err := s.api.CreateTopic(ctx, subjectID, name); err != nil {
		return err
	}
	return s.topics.Refresh(ctx)
}

// CreateChapter validates locally, dispatches, and refetches the
// chapter list in full.
func (s *Synchronizer) CreateChapter(ctx context.Context, topicID int, title string) error {
	if topicID <= 0 || title == "" {
		return &api.ErrValidation{Detail: "chapter requires a topic and a title"}
	}
	if err := s.requireCredential("create chapter"); err != nil {
		return err
	}
	if _, err := s.api.CreateChapter(ctx, topicID, title); err != nil {
		return err
	}
	return s.chapters.Refresh(ctx)
}
