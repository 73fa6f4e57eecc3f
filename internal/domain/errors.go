package domain

import "errors"

var (
	// ErrGameNotFound is returned when a referenced game record does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrWrongMode is returned when a command is not valid for the current game mode.
	ErrWrongMode = errors.New("command not allowed in current game mode")
	// ErrGameNotOpen is returned when a command requires an open session.
	ErrGameNotOpen = errors.New("game is not open")
	// ErrInvalidGame indicates a display sequence cannot be built for the game.
	ErrInvalidGame = errors.New("invalid game")
	// ErrAggregationFetch wraps response feed failures during a refresh tick.
	ErrAggregationFetch = errors.New("response aggregation fetch failed")
	// ErrNoMoreQuestions is returned when a manual advance runs past the last question.
	ErrNoMoreQuestions = errors.New("no more questions")
	// ErrAnswerNotFound is returned when there is no answer item for the active question.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrInvalidDisplayType is returned for unknown ad-hoc display kinds.
	ErrInvalidDisplayType = errors.New("invalid display type")
	// ErrQuestionClosed rejects responses submitted while no question is open.
	ErrQuestionClosed = errors.New("question is not open")
	// ErrNoActiveQuestion is returned when a refresh is requested outside a question item.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrInvalidResponse rejects responses without a viewer or answer text.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrUnknownCommand is returned by the command dispatcher.
	ErrUnknownCommand = errors.New("unknown command")
)
