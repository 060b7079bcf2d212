package api

import (
	"context"
	"fmt"
)

// Dashboard returns the learner's aggregate progress view.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.getJSON(ctx, "/dashboard/", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	var out []Bookmark
	if err := c.getJSON(ctx, "/bookmarks/", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddBookmark bookmarks a resource for the given user.
func (c *Client) AddBookmark(ctx context.Context, userID, resourceID int) (*Bookmark, error) {
	payload := map[string]any{"user": userID, "resource": resourceID}
	var out Bookmark
	if err := c.postJSON(ctx, "/bookmarks/", payload, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveBookmark(ctx context.Context, bookmarkID int) error {
	return c.delete(ctx, fmt.Sprintf("/bookmarks/%d/", bookmarkID), true)
}

func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.getJSON(ctx, "/notifications/", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int) error {
	path := fmt.Sprintf("/notifications/%d/mark_read/", notificationID)
	return c.postJSON(ctx, path, nil, true, nil)
}

// MarkTopicComplete records the learner's completion of a topic.
func (c *Client) MarkTopicComplete(ctx context.Context, topicID int) (*TopicProgress, error) {
	var out TopicProgress
	if err := c.postJSON(ctx, "/progress/mark_complete/", map[string]any{"topic": topicID}, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
