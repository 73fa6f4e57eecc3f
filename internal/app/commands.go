package app

import (
	"context"
	"errors"

	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/observability"
)

// Command names accepted by Execute.
const (
	CmdStartGame        = "start_game"
	CmdStopGame         = "stop_game"
	CmdToggleMode       = "toggle_mode"
	CmdAdvanceQuestion  = "advance_question"
	CmdShowAnswer       = "show_answer"
	CmdDisplay          = "display"
	CmdRefreshResponses = "refresh_responses"
)

// Command is an admin action as it arrives over HTTP or a control socket.
type Command struct {
	Name        string `json:"command"`
	GameID      string `json:"gameId"`
	DisplayType string `json:"displayType,omitempty"`
}

// Result is the structured outcome reported to the command caller.
type Result struct {
	Success             bool            `json:"success"`
	Message             string          `json:"message"`
	Mode                domain.GameMode `json:"gameMode,omitempty"`
	ActiveQuestionIndex *int            `json:"activeQuestionIndex,omitempty"`
}

// Execute runs cmd and never panics the driver on failure: errors come back
// both as a failed Result and as the returned error for status mapping.
func (s *ShowService) Execute(ctx context.Context, cmd Command) (Result, error) {
	res, err := s.execute(ctx, cmd)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		res = Result{Success: false, Message: err.Error()}
		s.log.Info("command rejected", "command", cmd.Name, "game", cmd.GameID, "err", err)
	}
	observability.CommandsTotal.WithLabelValues(commandLabel(cmd.Name), outcome).Inc()
	return res, err
}

func (s *ShowService) execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Name {
	case CmdStartGame:
		rec, err := s.StartGame(ctx, cmd.GameID)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Game started", Mode: rec.Mode}, nil

	case CmdStopGame:
		if err := s.StopGame(ctx, cmd.GameID); err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Game stopped"}, nil

	case CmdToggleMode:
		mode, err := s.ToggleMode(ctx, cmd.GameID)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Game mode set to " + string(mode), Mode: mode}, nil

	case CmdAdvanceQuestion:
		state, err := s.AdvanceQuestion(ctx, cmd.GameID)
		if err != nil {
			return Result{}, err
		}
		idx := state.ActiveQuestionIndex
		return Result{Success: true, Message: "Moved to next question", Mode: state.Mode, ActiveQuestionIndex: &idx}, nil

	case CmdShowAnswer:
		state, err := s.ShowAnswer(ctx, cmd.GameID)
		if err != nil {
			return Result{}, err
		}
		idx := state.ActiveQuestionIndex
		return Result{Success: true, Message: "Answer displayed", Mode: state.Mode, ActiveQuestionIndex: &idx}, nil

	case CmdDisplay:
		if err := s.Display(ctx, cmd.GameID, domain.PayloadKind(cmd.DisplayType)); err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Displaying " + cmd.DisplayType}, nil

	case CmdRefreshResponses:
		if err := s.RefreshResponses(ctx, cmd.GameID); err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Responses refreshed"}, nil
	}
	return Result{}, domain.ErrUnknownCommand
}

// commandLabel bounds the metric label set to known command names.
func commandLabel(name string) string {
	switch name {
	case CmdStartGame, CmdStopGame, CmdToggleMode, CmdAdvanceQuestion, CmdShowAnswer, CmdDisplay, CmdRefreshResponses:
		return name
	}
	return "unknown"
}

// IsClientError reports whether err is caused by the command itself rather
// than by the stores behind the driver.
func IsClientError(err error) bool {
	for _, target := range []error{
		domain.ErrGameNotFound, domain.ErrWrongMode, domain.ErrGameNotOpen, domain.ErrInvalidGame,
		domain.ErrNoMoreQuestions, domain.ErrAnswerNotFound, domain.ErrInvalidDisplayType,
		domain.ErrQuestionClosed, domain.ErrNoActiveQuestion, domain.ErrUnknownCommand,
		domain.ErrInvalidResponse,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
