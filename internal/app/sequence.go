package app

import (
	"fmt"
	"time"

	"live-quiz-show/internal/domain"
)

// Timing is how long each kind of screen stays up.
type Timing struct {
	IntroImage time.Duration
	Disclaimer time.Duration
	IntroVideo time.Duration
	Question   time.Duration
	Answer     time.Duration
	Credits    time.Duration

	// Leaderboard is used for leaderboards shown on request.
	Leaderboard time.Duration
}

// DefaultTiming mirrors the production show format.
func DefaultTiming() Timing {
	return Timing{
		IntroImage: 2 * time.Second,
		Disclaimer: 2 * time.Second,
		IntroVideo: 2 * time.Second,
		Question:   30 * time.Second,
		Answer:     10 * time.Second,
		Credits:    20 * time.Second,

		Leaderboard: 15 * time.Second,
	}
}

// normalized replaces non-positive durations with defaults; every item must
// stay on screen for a positive time.
func (t Timing) normalized() Timing {
	def := DefaultTiming()
	fix := func(d *time.Duration, fallback time.Duration) {
		if *d <= 0 {
			*d = fallback
		}
	}
	fix(&t.IntroImage, def.IntroImage)
	fix(&t.Disclaimer, def.Disclaimer)
	fix(&t.IntroVideo, def.IntroVideo)
	fix(&t.Question, def.Question)
	fix(&t.Answer, def.Answer)
	fix(&t.Credits, def.Credits)
	fix(&t.Leaderboard, def.Leaderboard)
	return t
}

// BuildSequence turns a game record into its display list:
// intro image, disclaimer, intro video, then question/answer per question,
// then credits.
func BuildSequence(rec domain.GameRecord, content ContentPool, timing Timing) (domain.GameSequence, error) {
	if len(rec.Questions) == 0 {
		return domain.GameSequence{}, fmt.Errorf("game %s has no questions: %w", rec.ID, domain.ErrInvalidGame)
	}
	timing = timing.normalized()
	total := len(rec.Questions)

	items := make([]domain.DisplayItem, 0, 4+2*total)
	items = append(items,
		domain.DisplayItem{Primary: content.RandomImage(), Duration: timing.IntroImage},
		domain.DisplayItem{Primary: content.Disclaimer(), Duration: timing.Disclaimer},
		domain.DisplayItem{Primary: content.RandomVideo(), Duration: timing.IntroVideo},
	)

	for i, q := range rec.Questions {
		idx := i
		items = append(items, domain.DisplayItem{
			Primary: domain.QuestionPayload{
				Text:    q.Text,
				Image:   q.ImageURL,
				Video:   q.VideoURL,
				Choices: q.ChoiceTexts(),
			},
			Duration:       timing.Question,
			QuestionIndex:  &idx,
			TotalQuestions: total,
		})
		items = append(items, domain.DisplayItem{
			Primary: domain.AnswerPayload{
				Text:          q.ResolvedAnswer(),
				Description:   q.Explanation,
				QuestionText:  q.Text,
				QuestionImage: q.ImageURL,
			},
			Duration:      timing.Answer,
			QuestionIndex: &idx,
		})
	}

	items = append(items, domain.DisplayItem{
		Primary:   content.Credits(),
		Secondary: content.UpcomingSchedule(),
		Duration:  timing.Credits,
	})
	return domain.GameSequence{Items: items}, nil
}

// adHocItem builds a one-off screen for the manual display command.
func adHocItem(kind domain.PayloadKind, content ContentPool, timing Timing) (domain.DisplayItem, error) {
	timing = timing.normalized()
	switch kind {
	case domain.KindImage:
		return domain.DisplayItem{Primary: content.RandomImage(), Duration: timing.IntroImage}, nil
	case domain.KindDisclaimer:
		return domain.DisplayItem{Primary: content.Disclaimer(), Duration: timing.Disclaimer}, nil
	case domain.KindVideo:
		return domain.DisplayItem{Primary: content.RandomVideo(), Duration: timing.IntroVideo}, nil
	case domain.KindCredits:
		return domain.DisplayItem{
			Primary:   content.Credits(),
			Secondary: content.UpcomingSchedule(),
			Duration:  timing.Credits,
		}, nil
	default:
		return domain.DisplayItem{}, fmt.Errorf("%q: %w", kind, domain.ErrInvalidDisplayType)
	}
}
