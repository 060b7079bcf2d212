package api

import (
	"context"
	"fmt"
	"net/url"
)

// ResourceFilter narrows a resource listing. Query is passed through to
// the server verbatim (URL-escaped); no filtering happens client-side.
type ResourceFilter struct {
	Query      string
	Subject    int
	Topic      int
	Chapter    int
	Difficulty string
	FileType   string
}

func (f ResourceFilter) values() url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Subject > 0 {
		q.Set("subject", fmt.Sprint(f.Subject))
	}
	if f.Topic > 0 {
		q.Set("topic", fmt.Sprint(f.Topic))
	}
	if f.Chapter > 0 {
		q.Set("chapter", fmt.Sprint(f.Chapter))
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.FileType != "" {
		q.Set("filetype", f.FileType)
	}
	return q
}

func (c *Client) ListResources(ctx context.Context, filter ResourceFilter) ([]Resource, error) {
	var out []Resource
	if err := c.getJSON(ctx, "/resources/", filter.values(), false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceFields are the structured fields of a resource creation call.
type ResourceFields struct {
	Title       string
	Description string
	Subject     int
	Topic       int
	Chapter     int
	Difficulty  string
	Tags        string // comma-separated
}

func (f ResourceFields) formFields() map[string]string {
	fields := map[string]string{"title": f.Title}
	if f.Description != "" {
		fields["description"] = f.Description
	}
	if f.Subject > 0 {
		fields["subject"] = fmt.Sprint(f.Subject)
	}
	if f.Topic > 0 {
		fields["topic"] = fmt.Sprint(f.Topic)
	}
	if f.Chapter > 0 {
		fields["chapter"] = fmt.Sprint(f.Chapter)
	}
	if f.Difficulty != "" {
		fields["difficulty"] = f.Difficulty
	}
	if f.Tags != "" {
		fields["tags"] = f.Tags
	}
	return fields
}

// CreateResource persists resource metadata and, when file is non-nil,
// the initial file in the same request. The server records that file as
// version 1.
func (c *Client) CreateResource(ctx context.Context, fields ResourceFields, file *FilePayload) (*Resource, error) {
	var out Resource
	if err := c.postMultipart(ctx, "/resources/", fields.formFields(), file, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadVersion appends one new version to the resource's file history.
func (c *Client) UploadVersion(ctx context.Context, resourceID int, file FilePayload, notes string) (*ResourceVersion, error) {
	fields := map[string]string{}
	if notes != "" {
		fields["notes"] = notes
	}
	path := fmt.Sprintf("/resources/%d/upload_version/", resourceID)
	var out ResourceVersion
	if err := c.postMultipart(ctx, path, fields, &file, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs the cross-collection free-text search.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	var out SearchResult
	if err := c.getJSON(ctx, "/search/", q, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
