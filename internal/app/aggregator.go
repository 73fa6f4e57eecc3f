package app

import (
	"sort"
	"strings"

	"live-quiz-show/internal/domain"
)

// IdentityFunc names the viewer behind a response. Responses that map to the
// same identity are deduplicated.
type IdentityFunc func(domain.ResponseRecord) string

// ViewerIdentity keys responses on the viewer id.
func ViewerIdentity(r domain.ResponseRecord) string { return r.Viewer.ID }

// Aggregator builds the bounded response views grafted onto question and
// answer screens.
type Aggregator struct {
	pageSize int
	paginate bool
	identity IdentityFunc
}

// NewAggregator returns an aggregator emitting at most pageSize entries per view.
// With paginate set, ResponsesPage walks the pool in a rotating window instead
// of always showing the first page.
func NewAggregator(pageSize int, paginate bool, identity IdentityFunc) *Aggregator {
	if pageSize <= 0 {
		pageSize = 6
	}
	if identity == nil {
		identity = ViewerIdentity
	}
	return &Aggregator{pageSize: pageSize, paginate: paginate, identity: identity}
}

// ParseChoiceLetter maps the first character of a chat answer onto a choice
// position: a/A is 0 through d/D is 3.
func ParseChoiceLetter(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	switch text[0] {
	case 'a', 'A':
		return 0, true
	case 'b', 'B':
		return 1, true
	case 'c', 'C':
		return 2, true
	case 'd', 'D':
		return 3, true
	}
	return 0, false
}

// Pool returns the valid, deduplicated responses for q ordered by response
// time. Each viewer keeps only their earliest valid answer.
func (a *Aggregator) Pool(q domain.Question, responses []domain.ResponseRecord) []domain.ResponseEntry {
	keyed := a.keyedPool(q, responses)
	out := make([]domain.ResponseEntry, len(keyed))
	for i, k := range keyed {
		out[i] = k.entry
	}
	return out
}

type keyedEntry struct {
	identity string
	entry    domain.ResponseEntry
}

func (a *Aggregator) keyedPool(q domain.Question, responses []domain.ResponseRecord) []keyedEntry {
	sorted := make([]domain.ResponseRecord, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ResponseTime != sorted[j].ResponseTime {
			return sorted[i].ResponseTime < sorted[j].ResponseTime
		}
		return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt)
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]keyedEntry, 0, len(sorted))
	for _, r := range sorted {
		pos, ok := ParseChoiceLetter(r.Text)
		if !ok || pos >= len(q.Choices) {
			continue
		}
		key := a.identity(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, keyedEntry{identity: key, entry: domain.ResponseEntry{
			ViewerID:     r.Viewer.ID,
			Name:         r.Viewer.Name,
			Picture:      r.Viewer.AvatarURL,
			Choice:       q.Choices[pos].Index,
			ResponseTime: r.ResponseTime,
		}})
	}
	return out
}

// ResponsesPage returns the window starting at offset and the offset for the
// next tick. Without pagination it always returns the first page.
func (a *Aggregator) ResponsesPage(q domain.Question, responses []domain.ResponseRecord, offset int) (domain.ResponsesPayload, int) {
	pool := a.Pool(q, responses)
	total := len(pool)
	if total == 0 {
		return domain.ResponsesPayload{Responses: []domain.ResponseEntry{}}, 0
	}
	if !a.paginate {
		return domain.ResponsesPayload{Responses: pool[:min(a.pageSize, total)], Total: total}, 0
	}

	start := offset % total
	if start < 0 {
		start += total
	}
	size := min(a.pageSize, total)
	window := make([]domain.ResponseEntry, 0, size)
	for i := 0; i < size; i++ {
		window = append(window, pool[(start+i)%total])
	}
	return domain.ResponsesPayload{
		Responses: window,
		Page:      start / a.pageSize,
		Total:     total,
	}, (start + size) % total
}

// Fastest ranks the earliest correct answers.
func (a *Aggregator) Fastest(q domain.Question, responses []domain.ResponseRecord) domain.FastestAnswersPayload {
	correct := q.CorrectChoiceIndex()
	out := make([]domain.ResponseEntry, 0, a.pageSize)
	if correct < 0 {
		return domain.FastestAnswersPayload{Responses: out}
	}
	for _, e := range a.Pool(q, responses) {
		if e.Choice != correct {
			continue
		}
		out = append(out, e)
		if len(out) == a.pageSize {
			break
		}
	}
	return domain.FastestAnswersPayload{Responses: out}
}

// pointsPerCorrect is the leaderboard score of one correct answer.
const pointsPerCorrect = 100

// Leaderboard scores viewers over the answered questions. byQuestion[i] holds
// the responses to questions[i]; questions without a marked correct choice
// score nothing. At most limit rows are returned, highest score first.
func (a *Aggregator) Leaderboard(questions []domain.Question, byQuestion [][]domain.ResponseRecord, limit int) domain.LeaderboardPayload {
	type row struct {
		entry   domain.LeaderboardEntry
		elapsed float64
	}
	rows := make(map[string]*row)
	for i, q := range questions {
		if i >= len(byQuestion) {
			break
		}
		correct := q.CorrectChoiceIndex()
		if correct < 0 {
			continue
		}
		for _, k := range a.keyedPool(q, byQuestion[i]) {
			e := k.entry
			r, ok := rows[k.identity]
			if !ok {
				r = &row{entry: domain.LeaderboardEntry{Name: e.Name, Picture: e.Picture}}
				rows[k.identity] = r
			}
			if e.Choice == correct {
				r.entry.Score += pointsPerCorrect
				r.elapsed += e.ResponseTime
			}
		}
	}

	ranked := make([]*row, 0, len(rows))
	for _, r := range rows {
		if r.entry.Score > 0 {
			ranked = append(ranked, r)
		}
	}
	// Ties go to the viewer who was faster in total.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].entry.Score != ranked[j].entry.Score {
			return ranked[i].entry.Score > ranked[j].entry.Score
		}
		if ranked[i].elapsed != ranked[j].elapsed {
			return ranked[i].elapsed < ranked[j].elapsed
		}
		return ranked[i].entry.Name < ranked[j].entry.Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := domain.LeaderboardPayload{Users: make([]domain.LeaderboardEntry, 0, len(ranked))}
	for _, r := range ranked {
		out.Users = append(out.Users, r.entry)
	}
	return out
}
