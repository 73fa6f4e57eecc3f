package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"live-quiz-show/internal/domain"
)

// ContentPool supplies the non-question screens of a show. Random choices are
// isolated here so sequence building stays deterministic under a fixed pool.
type ContentPool interface {
	RandomImage() domain.ImagePayload
	RandomVideo() domain.VideoPayload
	Disclaimer() domain.DisclaimerPayload
	Credits() domain.CreditsPayload
	UpcomingSchedule() domain.UpcomingSchedulePayload
}

// ContentLibrary is the static material a pool draws from.
type ContentLibrary struct {
	Images     []domain.Media            `yaml:"images"`
	Videos     []domain.Media            `yaml:"videos"`
	Disclaimer domain.DisclaimerPayload  `yaml:"disclaimer"`
	Credits    domain.CreditsPayload     `yaml:"credits"`
	Upcoming   []domain.ScheduledProgram `yaml:"upcoming"`
}

// StaticContentPool picks uniformly from a ContentLibrary.
type StaticContentPool struct {
	lib ContentLibrary
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewStaticContentPool builds a pool; empty sections fall back to the defaults.
func NewStaticContentPool(lib ContentLibrary, seed int64) *StaticContentPool {
	def := DefaultContentLibrary()
	if len(lib.Images) == 0 {
		lib.Images = def.Images
	}
	if len(lib.Videos) == 0 {
		lib.Videos = def.Videos
	}
	if lib.Disclaimer.Text == "" {
		lib.Disclaimer = def.Disclaimer
	}
	if len(lib.Credits.Lines) == 0 {
		lib.Credits = def.Credits
	}
	if len(lib.Upcoming) == 0 {
		lib.Upcoming = def.Upcoming
	}
	return &StaticContentPool{
		lib: lib,
		now: time.Now,
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (p *StaticContentPool) pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}

func (p *StaticContentPool) RandomImage() domain.ImagePayload {
	return domain.ImagePayload{Media: p.lib.Images[p.pick(len(p.lib.Images))]}
}

func (p *StaticContentPool) RandomVideo() domain.VideoPayload {
	return domain.VideoPayload{Media: p.lib.Videos[p.pick(len(p.lib.Videos))]}
}

func (p *StaticContentPool) Disclaimer() domain.DisclaimerPayload {
	return p.lib.Disclaimer
}

func (p *StaticContentPool) Credits() domain.CreditsPayload {
	lines := make([]domain.CreditLine, len(p.lib.Credits.Lines))
	copy(lines, p.lib.Credits.Lines)
	return domain.CreditsPayload{Title: p.lib.Credits.Title, Lines: lines}
}

// UpcomingSchedule lists programs that have not started yet, with a rough
// "starts in" label.
func (p *StaticContentPool) UpcomingSchedule() domain.UpcomingSchedulePayload {
	now := p.now()
	out := make([]domain.ScheduledProgram, 0, len(p.lib.Upcoming))
	for _, prog := range p.lib.Upcoming {
		if !prog.StartDateTime.IsZero() && prog.StartDateTime.Before(now) {
			continue
		}
		if prog.StartsIn == "" && !prog.StartDateTime.IsZero() {
			prog.StartsIn = startsIn(prog.StartDateTime.Sub(now))
		}
		out = append(out, prog)
	}
	return domain.UpcomingSchedulePayload{Schedule: out}
}

func startsIn(d time.Duration) string {
	if days := int(d / (24 * time.Hour)); days > 1 {
		return fmt.Sprintf("%d days", days)
	} else if days == 1 {
		return "1 day"
	}
	if hours := int(d / time.Hour); hours > 1 {
		return fmt.Sprintf("%d hours", hours)
	} else if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}

// DefaultContentLibrary is the built-in material used when no content file is configured.
func DefaultContentLibrary() ContentLibrary {
	return ContentLibrary{
		Images: []domain.Media{
			{URL: "https://images.unsplash.com/photo-1682687982141-0143020ed57a?w=500", Name: "Space Exploration", Description: "A beautiful image of the cosmos showing distant galaxies"},
			{URL: "https://images.unsplash.com/photo-1501854140801-50d01698950b?w=500", Name: "Nature", Description: "Serene landscape of mountains and lakes"},
		},
		Videos: []domain.Media{
			{URL: "https://www.example.com/video1.mp4", Name: "Quiz Highlights", Description: "Highlights from our previous quiz championship"},
			{URL: "https://www.example.com/video2.mp4", Name: "How to Play", Description: "A quick tutorial on how to participate in our quiz"},
		},
		Disclaimer: domain.DisclaimerPayload{
			Title: "Before we begin",
			Text:  "Answer in the live chat with the letter of your choice. Only your first answer to each question counts.",
		},
		Credits: domain.CreditsPayload{
			Title: "Thanks for playing",
			Lines: []domain.CreditLine{
				{Role: "Host", Name: "Live Quiz Show"},
				{Role: "Questions", Name: "Quiz editorial team"},
			},
		},
	}
}
