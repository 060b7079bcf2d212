package api

import (
	"context"
	"fmt"
	"time"
)

// ListHomeworks returns all homework assignments, newest first.
func (c *Client) ListHomeworks(ctx context.Context) ([]Homework, error) {
	var out []Homework
	if err := c.getJSON(ctx, "/homeworks/", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHomework posts a new assignment owned by teacherID.
func (c *Client) CreateHomework(ctx context.Context, teacherID int, title, description string, due time.Time) (*Homework, error) {
	payload := map[string]any{
		"teacher":     teacherID,
		"title":       title,
		"description": description,
		"due_date":    due.Format(time.RFC3339),
	}
	var out Homework
	if err := c.postJSON(ctx, "/homeworks/", payload, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSubmissions returns homework submissions, newest first.
func (c *Client) ListSubmissions(ctx context.Context) ([]HomeworkSubmission, error) {
	var out []HomeworkSubmission
	if err := c.getJSON(ctx, "/submissions/", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitHomework posts a submission for homeworkID: a text response
// and/or an attached file, in one multipart request.
func (c *Client) SubmitHomework(ctx context.Context, homeworkID, studentID int, textResponse string, file *FilePayload) (*HomeworkSubmission, error) {
	fields := map[string]string{
		"homework":      fmt.Sprint(homeworkID),
		"student":       fmt.Sprint(studentID),
		"text_response": textResponse,
	}
	var out HomeworkSubmission
	if err := c.postMultipart(ctx, "/submissions/", fields, file, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
