package domain

import (
	"encoding/json"
	"time"
)

// PayloadKind tags the closed set of display payloads.
type PayloadKind string

const (
	KindQuestion         PayloadKind = "question"
	KindAnswer           PayloadKind = "answer"
	KindImage            PayloadKind = "image"
	KindVideo            PayloadKind = "video"
	KindDisclaimer       PayloadKind = "disclaimer"
	KindCredits          PayloadKind = "credits"
	KindLeaderboard      PayloadKind = "leaderboard"
	KindUpcomingSchedule PayloadKind = "upcomingSchedule"
	KindResponses        PayloadKind = "responses"
	KindFastestAnswers   PayloadKind = "fastestAnswers"
)

// Payload is implemented only by the payload types in this file.
type Payload interface {
	Kind() PayloadKind
	sealed()
}

type QuestionPayload struct {
	Text    string   `json:"text"`
	Image   string   `json:"image,omitempty"`
	Video   string   `json:"video,omitempty"`
	Choices []string `json:"choices"`
}

type AnswerPayload struct {
	Text          string `json:"text"`
	Description   string `json:"description,omitempty"`
	QuestionText  string `json:"questionText"`
	QuestionImage string `json:"questionImage,omitempty"`
}

// Media describes an image or video asset.
type Media struct {
	URL         string `json:"url" yaml:"url"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type ImagePayload struct{ Media }

type VideoPayload struct{ Media }

type DisclaimerPayload struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

type CreditLine struct {
	Role string `json:"role" yaml:"role"`
	Name string `json:"name" yaml:"name"`
}

type CreditsPayload struct {
	Title string       `json:"title" yaml:"title"`
	Lines []CreditLine `json:"lines" yaml:"lines"`
}

type LeaderboardEntry struct {
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Score   int    `json:"score"`
}

type LeaderboardPayload struct {
	Users []LeaderboardEntry `json:"users"`
}

type ScheduledProgram struct {
	ProgramName   string    `json:"programName" yaml:"programName"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	StartDateTime time.Time `json:"startDateTime" yaml:"startDateTime"`
	StartsIn      string    `json:"startsIn,omitempty" yaml:"startsIn,omitempty"`
}

type UpcomingSchedulePayload struct {
	Schedule []ScheduledProgram `json:"schedule" yaml:"schedule"`
}

// ResponseEntry is one row of a responses or fastest-answers view.
type ResponseEntry struct {
	ViewerID     string  `json:"viewerId"`
	Name         string  `json:"name"`
	Picture      string  `json:"picture,omitempty"`
	Choice       int     `json:"choice"`
	ResponseTime float64 `json:"responseTime"`
}

type ResponsesPayload struct {
	Responses []ResponseEntry `json:"responses"`
	Page      int             `json:"page"`
	Total     int             `json:"total"`
}

type FastestAnswersPayload struct {
	Responses []ResponseEntry `json:"responses"`
}

func (QuestionPayload) Kind() PayloadKind         { return KindQuestion }
func (AnswerPayload) Kind() PayloadKind           { return KindAnswer }
func (ImagePayload) Kind() PayloadKind            { return KindImage }
func (VideoPayload) Kind() PayloadKind            { return KindVideo }
func (DisclaimerPayload) Kind() PayloadKind       { return KindDisclaimer }
func (CreditsPayload) Kind() PayloadKind          { return KindCredits }
func (LeaderboardPayload) Kind() PayloadKind      { return KindLeaderboard }
func (UpcomingSchedulePayload) Kind() PayloadKind { return KindUpcomingSchedule }
func (ResponsesPayload) Kind() PayloadKind        { return KindResponses }
func (FastestAnswersPayload) Kind() PayloadKind   { return KindFastestAnswers }

func (QuestionPayload) sealed()         {}
func (AnswerPayload) sealed()           {}
func (ImagePayload) sealed()            {}
func (VideoPayload) sealed()            {}
func (DisclaimerPayload) sealed()       {}
func (CreditsPayload) sealed()          {}
func (LeaderboardPayload) sealed()      {}
func (UpcomingSchedulePayload) sealed() {}
func (ResponsesPayload) sealed()        {}
func (FastestAnswersPayload) sealed()   {}

// DisplayItem is one timed unit of broadcast content.
type DisplayItem struct {
	Primary        Payload
	Secondary      Payload
	Duration       time.Duration
	QuestionIndex  *int
	TotalQuestions int
}

// HasQuestion reports whether the item is tied to a question.
func (d DisplayItem) HasQuestion() bool { return d.QuestionIndex != nil }

// Is reports whether the primary payload has the given kind.
func (d DisplayItem) Is(kind PayloadKind) bool {
	return d.Primary != nil && d.Primary.Kind() == kind
}

type payloadEnvelope struct {
	Type PayloadKind `json:"type"`
	Data Payload     `json:"data"`
}

type displayItemJSON struct {
	Primary        *payloadEnvelope `json:"primary"`
	Secondary      *payloadEnvelope `json:"secondary,omitempty"`
	Duration       int64            `json:"duration"`
	QuestionIndex  *int             `json:"questionIndex,omitempty"`
	TotalQuestions int              `json:"totalQuestions,omitempty"`
}

func envelope(p Payload) *payloadEnvelope {
	if p == nil {
		return nil
	}
	return &payloadEnvelope{Type: p.Kind(), Data: p}
}

// MarshalJSON renders the wire form {primary:{type,data}, secondary?, duration(ms), ...}.
func (d DisplayItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayItemJSON{
		Primary:        envelope(d.Primary),
		Secondary:      envelope(d.Secondary),
		Duration:       d.Duration.Milliseconds(),
		QuestionIndex:  d.QuestionIndex,
		TotalQuestions: d.TotalQuestions,
	})
}

// GameSequence is the ordered display list of one session plus its cursor.
type GameSequence struct {
	Items  []DisplayItem
	Cursor int
}

// Current returns the item at the cursor.
func (s *GameSequence) Current() (DisplayItem, bool) {
	if s == nil || s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return DisplayItem{}, false
	}
	return s.Items[s.Cursor], true
}

// Find returns the position of the first item of the given kind tied to questionIndex.
func (s *GameSequence) Find(kind PayloadKind, questionIndex int) int {
	for i, item := range s.Items {
		if item.Is(kind) && item.QuestionIndex != nil && *item.QuestionIndex == questionIndex {
			return i
		}
	}
	return -1
}

// IsLast reports whether the cursor sits on the final item.
func (s *GameSequence) IsLast() bool {
	return s.Cursor == len(s.Items)-1
}
