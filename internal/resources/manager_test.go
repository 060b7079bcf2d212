package resources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/edusuite/internal/api"
)

type fakeAPI struct {
	resources  []api.Resource
	lastFilter api.ResourceFilter
	nextID     int
}

func (f *fakeAPI) ListResources(ctx context.Context, filter api.ResourceFilter) ([]api.Resource, error) {
	f.lastFilter = filter
	return f.resources, nil
}

func (f *fakeAPI) CreateResource(ctx context.Context, fields api.ResourceFields, file *api.FilePayload) (*api.Resource, error) {
	f.nextID++
	res := api.Resource{
		ID:         f.nextID,
		Title:      fields.Title,
		Difficulty: fields.Difficulty,
		Tags:       fields.Tags,
	}
	if file != nil {
		res.Versions = []api.ResourceVersion{{ID: 1, VersionNumber: 1, File: file.Name}}
	}
	f.resources = append(f.resources, res)
	return &res, nil
}

func (f *fakeAPI) UploadVersion(ctx context.Context, resourceID int, file api.FilePayload, notes string) (*api.ResourceVersion, error) {
	for i := range f.resources {
		if f.resources[i].ID != resourceID {
			continue
		}
		next := 0
		for _, v := range f.resources[i].Versions {
			if v.VersionNumber > next {
				next = v.VersionNumber
			}
		}
		ver := api.ResourceVersion{ID: next + 100, VersionNumber: next + 1, File: file.Name, Notes: notes}
		// Server returns newest first.
		f.resources[i].Versions = append([]api.ResourceVersion{ver}, f.resources[i].Versions...)
		return &ver, nil
	}
	return nil, &api.ErrNotFound{Detail: "resource not found"}
}

func TestManager_SearchPassesQueryThrough(t *testing.T) {
	f := &fakeAPI{}
	m := New(f, api.StaticCredential(""))

	if err := m.Search(context.Background(), "mitosis & meiosis"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.lastFilter.Query != "mitosis & meiosis" {
		t.Fatalf("query must pass through unmodified, got %q", f.lastFilter.Query)
	}
}

func TestManager_CreateValidatesAndRefetches(t *testing.T) {
	f := &fakeAPI{}
	m := New(f, api.StaticCredential("tok"))

	var ve *api.ErrValidation
	if _, err := m.Create(context.Background(), api.ResourceFields{}, nil); !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation for missing title, got %v", err)
	}

	_, err := m.Create(context.Background(), api.ResourceFields{
		Title: "T", Difficulty: "hard", Tags: "x,y",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := m.Items()
	if len(items) != 1 || items[0].Title != "T" || items[0].Difficulty != "hard" {
		t.Fatalf("list after create must contain the new resource: %+v", items)
	}
}

func TestManager_CreateWithoutCredential(t *testing.T) {
	f := &fakeAPI{}
	m := New(f, api.StaticCredential(""))

	_, err := m.Create(context.Background(), api.ResourceFields{Title: "T"}, nil)
	var ar *api.ErrAuthRequired
	if !errors.As(err, &ar) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if len(f.resources) != 0 {
		t.Fatal("nothing may be created without a credential")
	}
}

func TestManager_UploadVersionsAppendOnly(t *testing.T) {
	f := &fakeAPI{}
	m := New(f, api.StaticCredential("tok"))

	res, err := m.Create(context.Background(), api.ResourceFields{Title: "Notes"},
		&api.FilePayload{Name: "v1.pdf", Reader: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Initial file counts as version 1.
	if got := Latest(m.Items()[0]); got == nil || got.VersionNumber != 1 {
		t.Fatalf("expected initial file as version 1, got %+v", got)
	}

	const n = 3
	for i := 0; i < n; i++ {
		if _, err := m.UploadVersion(context.Background(), res.ID,
			api.FilePayload{Name: "next.pdf", Reader: strings.NewReader("x")}, ""); err != nil {
			t.Fatalf("upload %d failed: %v", i+1, err)
		}
	}

	updated := m.Items()[0]
	if len(updated.Versions) != n+1 {
		t.Fatalf("expected %d versions after %d uploads, got %d", n+1, n, len(updated.Versions))
	}
	if got := Latest(updated); got.VersionNumber != n+1 {
		t.Fatalf("latest must be the %dth appended version, got %d", n+1, got.VersionNumber)
	}
	// Prior entries unchanged.
	for _, v := range updated.Versions {
		if v.VersionNumber == 1 && v.File != "v1.pdf" {
			t.Fatalf("version 1 was altered: %+v", v)
		}
	}
}

func TestManager_UploadVersionWithoutCredential(t *testing.T) {
	f := &fakeAPI{}
	m := New(f, api.StaticCredential(""))

	_, err := m.UploadVersion(context.Background(), 1,
		api.FilePayload{Name: "x", Reader: strings.NewReader("x")}, "")
	var ar *api.ErrAuthRequired
	if !errors.As(err, &ar) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestLatest_EmptyHistory(t *testing.T) {
	if got := Latest(api.Resource{}); got != nil {
		t.Fatalf("expected nil for empty history, got %+v", got)
	}
}
