package api

import (
	"context"
	"fmt"
)

func (c *Client) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	var out []Quiz
	if err := c.getJSON(ctx, "/quizzes/", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TakeQuiz fetches the question set for taking a quiz. The server
// delivers choices with correctness stripped; the Choice type cannot
// even represent the flag.
func (c *Client) TakeQuiz(ctx context.Context, quizID int) ([]Question, error) {
	var out []Question
	path := fmt.Sprintf("/quizzes/%d/take/", quizID)
	if err := c.getJSON(ctx, path, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// gradePayload enumerates every question of the taken quiz in order.
type gradePayload struct {
	Student int           `json:"student"`
	Answers []GradeAnswer `json:"answers"`
}

// GradeQuiz submits the answer list for server-side grading and returns
// the recorded attempt.
func (c *Client) GradeQuiz(ctx context.Context, quizID, studentID int, answers []GradeAnswer) (*Attempt, error) {
	path := fmt.Sprintf("/quizzes/%d/grade/", quizID)
	payload := gradePayload{Student: studentID, Answers: answers}
	var out Attempt
	if err := c.postJSON(ctx, path, payload, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// quizCreatePayload is the write shape of a quiz.
type quizCreatePayload struct {
	Title     string          `json:"title"`
	Questions []DraftQuestion `json:"questions"`
}

// CreateQuiz persists a quiz with its full question set in one call.
func (c *Client) CreateQuiz(ctx context.Context, title string, questions []DraftQuestion) (*Quiz, error) {
	var out Quiz
	if err := c.postJSON(ctx, "/quizzes/", quizCreatePayload{Title: title, Questions: questions}, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
