package api

import "context"

func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out []Subject
	if err := c.getJSON(ctx, "/subjects/", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSubject(ctx context.Context, name string) (*Subject, error) {
	var out Subject
	if err := c.postJSON(ctx, "/subjects/", map[string]string{"name": name}, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTopics(ctx context.Context) ([]Topic, error) {
	var out []Topic
	if err := c.getJSON(ctx, "/topics/", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTopic(ctx context.Context, subjectID int, name string) (*Topic, error) {
	payload := map[string]any{"subject": subjectID, "name": name}
	var out Topic
	if err := c.postJSON(ctx, "/topics/", payload, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListChapters(ctx context.Context) ([]Chapter, error) {
	var out []Chapter
	if err := c.getJSON(ctx, "/chapters/", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateChapter(ctx context.Context, topicID int, title string) (*Chapter, error) {
	payload := map[string]any{"topic": topicID, "title": title}
	var out Chapter
	if err := c.postJSON(ctx, "/chapters/", payload, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
