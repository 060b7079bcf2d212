package api

import "time"

// User is the authenticated identity as reported by /auth/me/.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Topic struct {
	ID        int       `json:"id"`
	Subject   int       `json:"subject"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Chapter struct {
	ID        int       `json:"id"`
	Topic     int       `json:"topic"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResourceVersion is one entry in a resource's append-only file history.
// The server returns versions newest-first.
type ResourceVersion struct {
	ID            int       `json:"id"`
	File          string    `json:"file"`
	VersionNumber int       `json:"version_number"`
	Notes         string    `json:"notes"`
	ExtractedText string    `json:"extracted_text"`
	FileMime      string    `json:"file_mime"`
	CreatedAt     time.Time `json:"created_at"`
}

type Resource struct {
	ID          int               `json:"id"`
	Uploader    int               `json:"uploader"`
	Subject     *int              `json:"subject"`
	Topic       *int              `json:"topic"`
	Chapter     *int              `json:"chapter"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        string            `json:"tags"`
	Difficulty  string            `json:"difficulty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Versions    []ResourceVersion `json:"versions"`
}

// Choice is the read shape of a quiz choice. The server strips the
// correctness flag from every response, so the type has no field for it.
type Choice struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Question is the read shape of a quiz question, as returned by quiz
// list responses and the take path.
type Question struct {
	ID           int      `json:"id"`
	Quiz         int      `json:"quiz"`
	Text         string   `json:"text"`
	QuestionType string   `json:"question_type"`
	Difficulty   string   `json:"difficulty"`
	Explanation  string   `json:"explanation"`
	Choices      []Choice `json:"choices"`
}

type Quiz struct {
	ID               int        `json:"id"`
	Creator          int        `json:"creator"`
	Title            string     `json:"title"`
	Subject          *int       `json:"subject"`
	Topic            *int       `json:"topic"`
	Chapter          *int       `json:"chapter"`
	IsTimed          bool       `json:"is_timed"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
	RandomizeOrder   bool       `json:"randomize_order"`
	Questions        []Question `json:"questions"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DraftChoice is the write shape of a choice: it carries the correctness
// flag because its author is composing the quiz. It is deliberately a
// separate type from Choice.
type DraftChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// DraftQuestion is the write shape of a question, used by quiz creation
// and the AI generation pipeline.
type DraftQuestion struct {
	Text         string        `json:"text"`
	QuestionType string        `json:"question_type"`
	Choices      []DraftChoice `json:"choices"`
}

// GradeAnswer is one positional entry of the grade payload. A nil
// SelectedChoice marks an unanswered question; it is sent as null, never
// omitted.
type GradeAnswer struct {
	Question       int    `json:"question"`
	SelectedChoice *int   `json:"selected_choice"`
	TextAnswer     string `json:"text_answer"`
}

type AttemptAnswer struct {
	ID             int    `json:"id"`
	Attempt        int    `json:"attempt"`
	Question       int    `json:"question"`
	SelectedChoice *int   `json:"selected_choice"`
	TextAnswer     string `json:"text_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Attempt is a graded quiz attempt. Score is a percentage in [0,100],
// computed server-side.
type Attempt struct {
	ID               int             `json:"id"`
	Quiz             int             `json:"quiz"`
	Student          int             `json:"student"`
	Score            float64         `json:"score"`
	TimeTakenSeconds int             `json:"time_taken_seconds"`
	Answers          []AttemptAnswer `json:"answers"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Homework struct {
	ID          int       `json:"id"`
	Teacher     int       `json:"teacher"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HomeworkSubmission is a student's answer to a homework, graded later
// by the teacher. Grade is nil until then.
type HomeworkSubmission struct {
	ID           int       `json:"id"`
	Homework     int       `json:"homework"`
	Student      int       `json:"student"`
	TextResponse string    `json:"text_response"`
	File         string    `json:"file"`
	Grade        *float64  `json:"grade"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

type Bookmark struct {
	ID        int       `json:"id"`
	User      int       `json:"user"`
	Resource  *int      `json:"resource"`
	Quiz      *int      `json:"quiz"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID        int       `json:"id"`
	User      int       `json:"user"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type TopicProgress struct {
	ID          int  `json:"id"`
	User        int  `json:"user"`
	Topic       int  `json:"topic"`
	IsCompleted bool `json:"is_completed"`
}

// SubjectScore is one row of the dashboard per-subject breakdown. Name is
// nil for attempts on quizzes without a subject.
type SubjectScore struct {
	Name *string `json:"quiz__subject__name"`
	Avg  float64 `json:"avg"`
}

type Dashboard struct {
	AvgScore    float64        `json:"avg_score"`
	NumAttempts int            `json:"num_attempts"`
	Subjects    []SubjectScore `json:"subjects"`
}

// SearchResult is the cross-collection response of /search/.
type SearchResult struct {
	Resources []Resource `json:"resources"`
	Quizzes   []Quiz     `json:"quizzes"`
}

// ChatAnswer is the response of the study-assistant endpoint.
type ChatAnswer struct {
	Answer        string  `json:"answer"`
	ResourceID    *int    `json:"resource_id"`
	ResourceTitle *string `json:"resource_title"`
}
