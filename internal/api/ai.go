package api

import "context"

// generateResponse is the draft envelope returned by the generation
// endpoint. Correctness flags are intact: the caller is the author.
type generateResponse struct {
	Questions []DraftQuestion `json:"questions"`
}

// GenerateQuestions asks the platform's content-generation service for a
// quiz draft from study text and/or an attached file. Text-only input is
// sent as JSON; when a file is attached the request switches to a
// multipart body carrying both.
func (c *Client) GenerateQuestions(ctx context.Context, text string, file *FilePayload) ([]DraftQuestion, error) {
	var resp generateResponse
	if file != nil {
		fields := map[string]string{}
		if text != "" {
			fields["text"] = text
		}
		if err := c.postMultipart(ctx, "/ai/generate-questions/", fields, file, true, &resp); err != nil {
			return nil, err
		}
	} else {
		payload := map[string]string{"text": text}
		if err := c.postJSON(ctx, "/ai/generate-questions/", payload, true, &resp); err != nil {
			return nil, err
		}
	}
	return resp.Questions, nil
}

// Chat asks the study assistant a question about uploaded materials.
func (c *Client) Chat(ctx context.Context, question string) (*ChatAnswer, error) {
	var out ChatAnswer
	if err := c.postJSON(ctx, "/ai/chat/", map[string]string{"question": question}, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
