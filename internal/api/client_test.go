package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_AttachesCredentialOnlyWhenPresent(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok123")))
	if _, err := c.ListQuizzes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.TakeQuiz(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Quiz listing is a public read; the take path is authenticated.
	if gotAuth[0] != "" {
		t.Fatalf("expected no Authorization on list, got %q", gotAuth[0])
	}
	if gotAuth[1] != "Token tok123" {
		t.Fatalf("expected Token header on take, got %q", gotAuth[1])
	}
}

func TestClient_EmptyCredentialSendsNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("expected no Authorization header, got %q", h)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("")))
	if _, err := c.TakeQuiz(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_NoContentYieldsNilResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok")))
	if err := c.RemoveBookmark(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ErrorCarriesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"file is required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok")))
	_, err := c.ListQuizzes(context.Background())
	var ve *ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %T: %v", err, err)
	}
	if ve.Detail != "file is required" {
		t.Fatalf("expected server detail, got %q", ve.Detail)
	}
}

func TestClient_ErrorFallsBackToVerbatimBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListQuizzes(context.Background())
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if ae.Detail != "boom" || ae.StatusCode != 500 {
		t.Fatalf("unexpected error contents: %+v", ae)
	}
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{401, func(err error) bool { var e *ErrUnauthorized; return errors.As(err, &e) }},
		{403, func(err error) bool { var e *ErrUnauthorized; return errors.As(err, &e) }},
		{404, func(err error) bool { var e *ErrNotFound; return errors.As(err, &e) }},
		{400, func(err error) bool { var e *ErrValidation; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"detail":"nope"}`))
		}))
		c := New(srv.URL)
		_, err := c.ListQuizzes(context.Background())
		if !tt.check(err) {
			t.Fatalf("status %d: wrong error type %T", tt.status, err)
		}
		srv.Close()
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListQuizzes(context.Background())
	var me *ErrMalformedResponse
	if !errors.As(err, &me) {
		t.Fatalf("expected ErrMalformedResponse, got %T: %v", err, err)
	}
	if string(me.Body) != "not json" {
		t.Fatalf("expected body preserved, got %q", me.Body)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.ListQuizzes(context.Background())
	var te *ErrTransport
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTransport, got %T: %v", err, err)
	}
}

func TestClient_MultipartCarriesFieldsAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("expected multipart body, got %q", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("title"); got != "Algebra Notes" {
			t.Errorf("expected title field, got %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			defer f.Close()
			data, _ := io.ReadAll(f)
			if string(data) != "pdf-bytes" {
				t.Errorf("file payload altered: %q", data)
			}
			if hdr.Filename != "notes.pdf" {
				t.Errorf("unexpected filename %q", hdr.Filename)
			}
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"title":"Algebra Notes"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok")))
	res, err := c.CreateResource(context.Background(),
		ResourceFields{Title: "Algebra Notes"},
		&FilePayload{Name: "notes.pdf", Reader: strings.NewReader("pdf-bytes")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != 1 {
		t.Fatalf("expected resource id 1, got %d", res.ID)
	}
}

func TestClient_SubmitHomeworkCarriesAllParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/submissions/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("homework"); got != "3" {
			t.Errorf("expected homework field 3, got %q", got)
		}
		if got := r.FormValue("student"); got != "7" {
			t.Errorf("expected student field 7, got %q", got)
		}
		if got := r.FormValue("text_response"); got != "my answer" {
			t.Errorf("expected text response, got %q", got)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			defer f.Close()
			data, _ := io.ReadAll(f)
			if string(data) != "essay" {
				t.Errorf("file payload altered: %q", data)
			}
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":12,"homework":3,"student":7,"text_response":"my answer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok")))
	sub, err := c.SubmitHomework(context.Background(), 3, 7, "my answer",
		&FilePayload{Name: "essay.txt", Reader: strings.NewReader("essay")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != 12 || sub.Grade != nil {
		t.Fatalf("unexpected submission: %+v", sub)
	}
}

func TestClient_TakeQuizDropsStrayCorrectnessFields(t *testing.T) {
	// Even if a server ever leaked the flag, the decoded shape has
	// nowhere to put it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"text":"Q","choices":[{"id":10,"text":"a","is_correct":true},{"id":11,"text":"b","is_correct":false}]}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredentials(StaticCredential("tok")))
	questions, err := c.TakeQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 || len(questions[0].Choices) != 2 {
		t.Fatalf("unexpected decode: %+v", questions)
	}
	if questions[0].Choices[0].ID != 10 || questions[0].Choices[0].Text != "a" {
		t.Fatalf("unexpected choice: %+v", questions[0].Choices[0])
	}
}

type recorderStub struct {
	events []RequestEvent
}

func (r *recorderStub) RecordRequest(ev RequestEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func TestClient_RecordsRequestEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"missing"}`))
	}))
	defer srv.Close()

	rec := &recorderStub{}
	c := New(srv.URL, WithRecorder(rec))
	_, err := c.ListQuizzes(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Method != "GET" || ev.Path != "/quizzes/" || ev.Status != 404 || ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestClient_QueryIsURLEscaped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListResources(context.Background(), ResourceFilter{Query: "cell biology & mitosis"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "cell biology & mitosis" {
		t.Fatalf("query not passed through verbatim: %q", gotQuery)
	}
}
