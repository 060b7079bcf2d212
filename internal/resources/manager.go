// Package resources manages the versioned study resource collection.
package resources

import (
	"context"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/catalog"
)

// API is the slice of the gateway the manager depends on.
type API interface {
	ListResources(ctx context.Context, filter api.ResourceFilter) ([]api.Resource, error)
	CreateResource(ctx context.Context, fields api.ResourceFields, file *api.FilePayload) (*api.Resource, error)
	UploadVersion(ctx context.Context, resourceID int, file api.FilePayload, notes string) (*api.ResourceVersion, error)
}

// Manager owns the resource list slot and the append-only version
// history operations. It never filters or ranks locally: the search
// query passes straight through to the server.
type Manager struct {
	api    API
	creds  api.CredentialSource
	filter api.ResourceFilter
	slot   *catalog.Slot[api.Resource]
}

// New creates a Manager.
func New(client API, creds api.CredentialSource) *Manager {
	m := &Manager{api: client, creds: creds}
	m.slot = catalog.NewSlot(func(ctx context.Context) ([]api.Resource, error) {
		return m.api.ListResources(ctx, m.filter)
	})
	return m
}

// SetFilter replaces the full listing filter. Takes effect on the next
// refresh.
func (m *Manager) SetFilter(f api.ResourceFilter) {
	m.filter = f
}

// Search sets the free-text query and refetches the list.
func (m *Manager) Search(ctx context.Context, query string) error {
	m.filter.Query = query
	return m.slot.Refresh(ctx)
}

// Refresh refetches the list with the current filter.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.slot.Refresh(ctx)
}

// Items returns the current resource list.
func (m *Manager) Items() []api.Resource {
	return m.slot.Items()
}

// Create persists resource metadata and, when file is non-nil, the
// initial file in one combined request; that file becomes version 1.
// On success the list is refetched in full.
func (m *Manager) Create(ctx context.Context, fields api.ResourceFields, file *api.FilePayload) (*api.Resource, error) {
	if fields.Title == "" {
		return nil, &api.ErrValidation{Detail: "resource title is required"}
	}
	if m.creds == nil || m.creds.Credential() == "" {
		return nil, &api.ErrAuthRequired{Op: "create resource"}
	}
	res, err := m.api.CreateResource(ctx, fields, file)
	if err != nil {
		return nil, err
	}
	if err := m.slot.Refresh(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// UploadVersion appends exactly one entry to the resource's version
// history. Prior entries are never touched; after the call completes
// the appended entry is the latest.
func (m *Manager) UploadVersion(ctx context.Context, resourceID int, file api.FilePayload, notes string) (*api.ResourceVersion, error) {
	if m.creds == nil || m.creds.Credential() == "" {
		return nil, &api.ErrAuthRequired{Op: "upload version"}
	}
	ver, err := m.api.UploadVersion(ctx, resourceID, file, notes)
	if err != nil {
		return nil, err
	}
	if err := m.slot.Refresh(ctx); err != nil {
		return ver, err
	}
	return ver, nil
}

// Latest returns the newest version of a resource, or nil when it has
// no versions. The history is append-only, so the newest entry is the
// one with the highest version number.
func Latest(r api.Resource) *api.ResourceVersion {
	var latest *api.ResourceVersion
	for i := range r.Versions {
		v := &r.Versions[i]
		if latest == nil || v.VersionNumber > latest.VersionNumber {
			latest = v
		}
	}
	return latest
}
