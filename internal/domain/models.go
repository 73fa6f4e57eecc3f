package domain

import "time"

// GameMode controls who advances a live show.
type GameMode string

const (
	ModeAutomatic GameMode = "automatic"
	ModeManual    GameMode = "manual"
)

// Toggle returns the opposite mode. Unknown values are treated as automatic.
func (m GameMode) Toggle() GameMode {
	if m == ModeManual {
		return ModeAutomatic
	}
	return ModeManual
}

// QuestionType distinguishes multiple-choice from fill-in-blank questions.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionFillInBlank    QuestionType = "fill-in-blank"
)

// NotSpecified is shown on the answer screen when no correct choice is marked.
const NotSpecified = "Not specified"

// Choice is one selectable answer. Index is stable for the whole session and is
// the join key against viewer responses.
type Choice struct {
	Index    int    `json:"choiceIndex" yaml:"choiceIndex"`
	Text     string `json:"choiceText" yaml:"choiceText"`
	ImageURL string `json:"choiceImageUrl,omitempty" yaml:"choiceImageUrl,omitempty"`
	Correct  bool   `json:"isCorrectChoice" yaml:"isCorrectChoice"`
}

// Question is a single quiz question.
type Question struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Type        QuestionType `json:"questionType,omitempty" yaml:"questionType,omitempty"`
	Text        string       `json:"questionText" yaml:"questionText"`
	ImageURL    string       `json:"questionImageUrl,omitempty" yaml:"questionImageUrl,omitempty"`
	VideoURL    string       `json:"questionVideoUrl,omitempty" yaml:"questionVideoUrl,omitempty"`
	Choices     []Choice     `json:"choices" yaml:"choices"`
	Explanation string       `json:"answerExplanation,omitempty" yaml:"answerExplanation,omitempty"`
	AnswerText  string       `json:"answerText,omitempty" yaml:"answerText,omitempty"` // fill-in-blank only
}

// CorrectChoice returns the first choice flagged as correct.
func (q Question) CorrectChoice() (Choice, bool) {
	for _, c := range q.Choices {
		if c.Correct {
			return c, true
		}
	}
	return Choice{}, false
}

// CorrectChoiceIndex returns the stable index of the correct choice or -1.
func (q Question) CorrectChoiceIndex() int {
	if c, ok := q.CorrectChoice(); ok {
		return c.Index
	}
	return -1
}

// ResolvedAnswer is the text revealed on the answer screen.
func (q Question) ResolvedAnswer() string {
	if q.Type == QuestionFillInBlank && q.AnswerText != "" {
		return q.AnswerText
	}
	if c, ok := q.CorrectChoice(); ok {
		return c.Text
	}
	return NotSpecified
}

// ChoiceTexts lists the choice texts in display order.
func (q Question) ChoiceTexts() []string {
	out := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		out = append(out, c.Text)
	}
	return out
}

// SessionState holds the GameRecord fields owned by the sequence driver while a
// session is open. It is persisted as a partial document update.
type SessionState struct {
	ActiveQuestionIndex int        `json:"activeQuestionIndex" yaml:"activeQuestionIndex"`
	IsQuestionOpen      bool       `json:"isQuestionOpen" yaml:"isQuestionOpen"`
	IsGameOpen          bool       `json:"isGameOpen" yaml:"isGameOpen"`
	QuestionStartedAt   *time.Time `json:"questionStartedAt" yaml:"questionStartedAt,omitempty"`
	CorrectChoiceIndex  int        `json:"correctChoiceIndex" yaml:"correctChoiceIndex"`
	Mode                GameMode   `json:"gameMode" yaml:"gameMode"`
	StartedAt           *time.Time `json:"gameStartedAt" yaml:"gameStartedAt,omitempty"`
	EndedAt             *time.Time `json:"gameEndedAt" yaml:"gameEndedAt,omitempty"`
}

// GameRecord is one live or scheduled quiz show.
type GameRecord struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"gameTitle" yaml:"gameTitle"`
	QuizID         string     `json:"quizId,omitempty" yaml:"quizId,omitempty"`
	Questions      []Question `json:"questions" yaml:"questions"`
	ScheduledStart *time.Time `json:"gameScheduledStart,omitempty" yaml:"gameScheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"gameScheduledEnd,omitempty" yaml:"gameScheduledEnd,omitempty"`
	LiveIDs        []string   `json:"liveIDs,omitempty" yaml:"liveIDs,omitempty"`
	SessionState   `yaml:",inline"`
}

// NewGameRecord returns a closed record with the -1 sentinels set.
func NewGameRecord(id, title string, questions []Question) GameRecord {
	return GameRecord{
		ID:        id,
		Title:     title,
		Questions: questions,
		SessionState: SessionState{
			ActiveQuestionIndex: -1,
			CorrectChoiceIndex:  -1,
			Mode:                ModeAutomatic,
		},
	}
}

// Viewer identifies whoever submitted a response. ID is opaque (a channel id,
// a chat handle, ...).
type Viewer struct {
	ID        string `json:"viewerId"`
	Name      string `json:"name"`
	AvatarURL string `json:"picture,omitempty"`
}

// ResponseRecord is one viewer answer as read from the response feed.
type ResponseRecord struct {
	ID            string    `json:"id"`
	GameID        string    `json:"gameId"`
	QuestionIndex int       `json:"questionIndex"`
	Viewer        Viewer    `json:"viewer"`
	Text          string    `json:"text"`
	SubmittedAt   time.Time `json:"submittedAt"`
	ResponseTime  float64   `json:"responseTime"` // seconds since questionStartedAt
}
