package taxonomy

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/abhisek/edusuite/internal/api"
)

type fakeAPI struct {
	subjects []api.Subject
	topics   []api.Topic
	chapters []api.Chapter

	subjectFetches atomic.Int32
	created        []string
	createErr      error
}

func (f *fakeAPI) ListSubjects(ctx context.Context) ([]api.Subject, error) {
	f.subjectFetches.Add(1)
	return f.subjects, nil
}

func (f *fakeAPI) CreateSubject(ctx context.Context, name string) (*api.Subject, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	f.subjects = append(f.subjects, api.Subject{ID: len(f.subjects) + 1, Name: name})
	return &f.subjects[len(f.subjects)-1], nil
}

func (f *fakeAPI) ListTopics(ctx context.Context) ([]api.Topic, error) { return f.topics, nil }

func (f *fakeAPI) CreateTopic(ctx context.Context, subjectID int, name string) (*api.Topic, error) {
	f.topics = append(f.topics, api.Topic{ID: len(f.topics) + 1, Subject: subjectID, Name: name})
	return &f.topics[len(f.topics)-1], nil
}

func (f *fakeAPI) ListChapters(ctx context.Context) ([]api.Chapter, error) { return f.chapters, nil }

func (f *fakeAPI) CreateChapter(ctx context.Context, topicID int, title string) (*api.Chapter, error) {
	f.chapters = append(f.chapters, api.Chapter{ID: len(f.chapters) + 1, Topic: topicID, Title: title})
	return &f.chapters[len(f.chapters)-1], nil
}

func TestSynchronizer_RefreshAllJoinsAllThree(t *testing.T) {
	f := &fakeAPI{
		subjects: []api.Subject{{ID: 1, Name: "Biology"}},
		topics:   []api.Topic{{ID: 1, Subject: 1, Name: "Cells"}},
		chapters: []api.Chapter{{ID: 1, Topic: 1, Title: "Mitosis"}},
	}
	s := New(f, api.StaticCredential(""))

	if err := s.RefreshAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Subjects()) != 1 || len(s.Topics()) != 1 || len(s.Chapters()) != 1 {
		t.Fatal("expected all three slots populated")
	}
}

func TestSynchronizer_CreateRequiresCredentialLocally(t *testing.T) {
	f := &fakeAPI{}
	s := New(f, api.StaticCredential(""))

	err := s.CreateSubject(context.Background(), "Chemistry")
	var ar *api.ErrAuthRequired
	if !errors.As(err, &ar) {
		t.Fatalf("expected ErrAuthRequired, got %T: %v", err, err)
	}
	if len(f.created) != 0 {
		t.Fatal("no request may be dispatched without a credential")
	}
}

func TestSynchronizer_CreateValidatesBeforeDispatch(t *testing.T) {
	f := &fakeAPI{}
	s := New(f, api.StaticCredential("tok"))

	var ve *api.ErrValidation
	if err := s.CreateSubject(context.Background(), ""); !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := s.CreateTopic(context.Background(), 0, "Cells"); !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := s.CreateChapter(context.Background(), 3, ""); !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(f.created) != 0 || len(f.topics) != 0 || len(f.chapters) != 0 {
		t.Fatal("invalid creates must not reach the server")
	}
}

func TestSynchronizer_CreateTriggersFullRefetch(t *testing.T) {
	f := &fakeAPI{}
	s := New(f, api.StaticCredential("tok"))

	if err := s.CreateSubject(context.Background(), "Physics"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One fetch caused by the create; local state comes from it, not
	// from patching in the response.
	if got := f.subjectFetches.Load(); got != 1 {
		t.Fatalf("expected 1 refetch after create, got %d", got)
	}
	if subs := s.Subjects(); len(subs) != 1 || subs[0].Name != "Physics" {
		t.Fatalf("unexpected subjects: %v", subs)
	}
}
