package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/observability"

	"github.com/google/uuid"
)

// GameStore loads game records and persists the session fields the driver owns.
type GameStore interface {
	GetGame(ctx context.Context, gameID string) (domain.GameRecord, error)
	SaveSessionState(ctx context.Context, gameID string, state domain.SessionState) error
}

// ResponseFeed stores viewer answers and serves them back per question.
type ResponseFeed interface {
	AppendResponse(ctx context.Context, r domain.ResponseRecord) error
	// ResponsesSince returns the responses to questionIndex submitted at or after since.
	ResponsesSince(ctx context.Context, gameID string, questionIndex int, since time.Time) ([]domain.ResponseRecord, error)
}

// SessionRepository abstracts where live sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(gameID string) *Session
	Get(gameID string) (*Session, bool)
	List() []*Session
	// MarkLive records whether this instance is driving gameID. It is called on
	// every persisted transition and must not block for long.
	MarkLive(gameID string, live bool)
}

// leaderboardSize bounds the rows of an on-request leaderboard.
const leaderboardSize = 10

// AggregationConfig controls the live response views.
type AggregationConfig struct {
	Enabled  bool
	Interval time.Duration
	PageSize int
	Paginate bool
	Identity IdentityFunc
}

// DefaultAggregation refreshes every five seconds with a rotating page of six.
func DefaultAggregation() AggregationConfig {
	return AggregationConfig{Enabled: true, Interval: 5 * time.Second, PageSize: 6, Paginate: true}
}

// ShowService is the sequence driver. It owns every open session, advances
// it on timers or admin commands and broadcasts each transition.
type ShowService struct {
	games     GameStore
	responses ResponseFeed
	sessions  SessionRepository
	hub       *Hub
	bcast     Broadcaster
	sched     Scheduler
	content   ContentPool
	timing    Timing
	agg       AggregationConfig
	ranker    *Aggregator
	log       *slog.Logger
	queueSize int
	writer    *stateWriter

	publishTimeout time.Duration
}

// Option customises a ShowService.
type Option func(*ShowService)

// WithBroadcaster routes published events somewhere other than the local hub,
// e.g. a cross-instance notifier that feeds the hub back.
func WithBroadcaster(b Broadcaster) Option { return func(s *ShowService) { s.bcast = b } }

func WithScheduler(sched Scheduler) Option { return func(s *ShowService) { s.sched = sched } }

func WithContentPool(p ContentPool) Option { return func(s *ShowService) { s.content = p } }

func WithTiming(t Timing) Option { return func(s *ShowService) { s.timing = t.normalized() } }

func WithAggregation(cfg AggregationConfig) Option {
	return func(s *ShowService) { s.agg = cfg }
}

func WithLogger(l *slog.Logger) Option { return func(s *ShowService) { s.log = l } }

// WithWriteQueue sets how many pending state writes are buffered before drops.
func WithWriteQueue(size int) Option { return func(s *ShowService) { s.queueSize = size } }

func NewShowService(games GameStore, responses ResponseFeed, sessions SessionRepository, hub *Hub, opts ...Option) *ShowService {
	s := &ShowService{
		games:          games,
		responses:      responses,
		sessions:       sessions,
		hub:            hub,
		bcast:          hub,
		sched:          NewRealScheduler(),
		content:        NewStaticContentPool(DefaultContentLibrary(), time.Now().UnixNano()),
		timing:         DefaultTiming(),
		agg:            DefaultAggregation(),
		log:            slog.Default(),
		publishTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.agg.Interval <= 0 {
		s.agg.Interval = DefaultAggregation().Interval
	}
	s.ranker = NewAggregator(s.agg.PageSize, s.agg.Paginate, s.agg.Identity)
	s.writer = newStateWriter(games, s.log, s.queueSize)
	return s
}

// StartGame opens a session for gameID, rebuilding its sequence from scratch.
// Starting an already open game restarts it.
func (s *ShowService) StartGame(ctx context.Context, gameID string) (domain.GameRecord, error) {
	rec, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return domain.GameRecord{}, err
	}
	seq, err := BuildSequence(rec, s.content, s.timing)
	if err != nil {
		return domain.GameRecord{}, err
	}

	sess := s.sessions.GetOrCreate(gameID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != StatusOpen {
		observability.OpenSessions.Inc()
	}
	sess.stopTimersLocked()
	sess.epoch++

	now := s.sched.Now()
	if sess.record.ID != "" {
		// The stored mode may lag behind queued writes.
		rec.Mode = sess.record.Mode
	}
	if rec.Mode != domain.ModeManual {
		rec.Mode = domain.ModeAutomatic
	}
	rec.IsGameOpen = true
	rec.IsQuestionOpen = false
	rec.ActiveQuestionIndex = -1
	rec.CorrectChoiceIndex = -1
	rec.QuestionStartedAt = nil
	rec.StartedAt = &now
	rec.EndedAt = nil

	sess.record = rec
	sess.seq = seq
	sess.status = StatusOpen
	sess.last = nil
	sess.pageOffset = 0

	observability.SessionTransitions.WithLabelValues("started").Inc()
	s.log.Info("game started", "game", gameID, "mode", rec.Mode, "items", len(seq.Items))
	s.publish(gameID, domain.GameStarted(rec))

	s.enterLocked(sess, 0)
	if sess.status == StatusOpen && sess.record.Mode == domain.ModeAutomatic {
		s.armAdvanceLocked(sess)
	}
	return sess.record, nil
}

// StopGame closes the session. Stopping a closed game is a no-op; a record
// left open without a live session (e.g. after a restart) is closed too.
func (s *ShowService) StopGame(ctx context.Context, gameID string) error {
	if sess, ok := s.sessions.Get(gameID); ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.status != StatusOpen {
			return nil
		}
		sess.stopTimersLocked()
		sess.epoch++
		now := s.sched.Now()
		sess.status = StatusClosed
		sess.record.IsGameOpen = false
		sess.record.IsQuestionOpen = false
		sess.record.EndedAt = &now
		sess.last = nil
		observability.OpenSessions.Dec()
		observability.SessionTransitions.WithLabelValues("stopped").Inc()
		s.log.Info("game stopped", "game", gameID, "cursor", sess.seq.Cursor)
		s.persistLocked(sess)
		s.publish(gameID, domain.GameStopped(sess.record))
		return nil
	}

	rec, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !rec.IsGameOpen {
		return nil
	}
	now := s.sched.Now()
	rec.IsGameOpen = false
	rec.IsQuestionOpen = false
	rec.EndedAt = &now
	if err := s.games.SaveSessionState(ctx, gameID, rec.SessionState); err != nil {
		return fmt.Errorf("close stale game: %w", err)
	}
	observability.SessionTransitions.WithLabelValues("stopped").Inc()
	s.log.Info("stale game closed", "game", gameID)
	s.publish(gameID, domain.GameStopped(rec))
	return nil
}

// ToggleMode flips automatic/manual. On an open session switching to manual
// cancels all timers; switching to automatic re-arms the current item with a
// full wait. A closed game only has its stored mode changed.
func (s *ShowService) ToggleMode(ctx context.Context, gameID string) (domain.GameMode, error) {
	if sess, ok := s.sessions.Get(gameID); ok {
		sess.mu.Lock()
		if sess.status == StatusOpen {
			defer sess.mu.Unlock()
			sess.stopTimersLocked()
			sess.epoch++
			mode := sess.record.Mode.Toggle()
			sess.record.Mode = mode
			if mode == domain.ModeAutomatic {
				s.armAdvanceLocked(sess)
				if cur, ok := sess.seq.Current(); ok && cur.Is(domain.KindQuestion) && s.agg.Enabled && !sess.adHoc {
					s.armRefreshLocked(sess)
				}
			}
			observability.SessionTransitions.WithLabelValues("mode_" + string(mode)).Inc()
			s.log.Info("game mode changed", "game", gameID, "mode", mode, "cursor", sess.seq.Cursor)
			s.persistLocked(sess)
			return mode, nil
		}
		if sess.record.ID != "" {
			// Queued behind the session's earlier writes so they cannot overwrite it.
			defer sess.mu.Unlock()
			sess.record.Mode = sess.record.Mode.Toggle()
			s.persistLocked(sess)
			return sess.record.Mode, nil
		}
		sess.mu.Unlock()
	}

	rec, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	rec.Mode = rec.Mode.Toggle()
	if err := s.games.SaveSessionState(ctx, gameID, rec.SessionState); err != nil {
		return "", fmt.Errorf("save game mode: %w", err)
	}
	return rec.Mode, nil
}

// AdvanceQuestion shows the next question of a manual session.
func (s *ShowService) AdvanceQuestion(ctx context.Context, gameID string) (domain.SessionState, error) {
	sess, err := s.manualSession(ctx, gameID)
	if err != nil {
		return domain.SessionState{}, err
	}
	defer sess.mu.Unlock()

	next := sess.record.ActiveQuestionIndex + 1
	pos := sess.seq.Find(domain.KindQuestion, next)
	if pos < 0 {
		return sess.record.SessionState, domain.ErrNoMoreQuestions
	}
	s.enterLocked(sess, pos)
	return sess.record.SessionState, nil
}

// ShowAnswer reveals the answer of the active question of a manual session.
func (s *ShowService) ShowAnswer(ctx context.Context, gameID string) (domain.SessionState, error) {
	sess, err := s.manualSession(ctx, gameID)
	if err != nil {
		return domain.SessionState{}, err
	}
	defer sess.mu.Unlock()

	pos := sess.seq.Find(domain.KindAnswer, sess.record.ActiveQuestionIndex)
	if pos < 0 {
		return sess.record.SessionState, domain.ErrAnswerNotFound
	}
	s.enterLocked(sess, pos)
	return sess.record.SessionState, nil
}

// Display broadcasts a one-off screen of a manual session without moving the
// cursor. Response views are not grafted while it is on screen.
func (s *ShowService) Display(ctx context.Context, gameID string, kind domain.PayloadKind) error {
	sess, err := s.manualSession(ctx, gameID)
	if err != nil {
		return err
	}
	if kind == domain.KindLeaderboard {
		return s.displayLeaderboard(ctx, sess)
	}
	defer sess.mu.Unlock()
	item, err := adHocItem(kind, s.content, s.timing)
	if err != nil {
		return err
	}
	sess.stopRefreshLocked()
	sess.epoch++
	sess.adHoc = true
	s.emitLocked(sess, item)
	return nil
}

// displayLeaderboard scores every question asked so far. It is called with
// sess locked and unlocks it; responses are fetched without the lock and a
// transition made meanwhile wins.
func (s *ShowService) displayLeaderboard(ctx context.Context, sess *Session) error {
	epoch := sess.epoch
	asked := sess.record.Questions[:sess.record.ActiveQuestionIndex+1]
	var since time.Time
	if sess.record.StartedAt != nil {
		since = *sess.record.StartedAt
	}
	sess.mu.Unlock()

	byQuestion := make([][]domain.ResponseRecord, len(asked))
	for i := range asked {
		responses, err := s.responses.ResponsesSince(ctx, sess.id, i, since)
		if err != nil {
			observability.AggregationFailures.Inc()
			s.log.Warn("fetch leaderboard responses", "game", sess.id, "question", i, "err", err)
			return fmt.Errorf("%w: %w", domain.ErrAggregationFetch, err)
		}
		byQuestion[i] = responses
	}
	board := s.ranker.Leaderboard(asked, byQuestion, leaderboardSize)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch || sess.status != StatusOpen {
		return nil
	}
	sess.stopRefreshLocked()
	sess.epoch++
	sess.adHoc = true
	s.emitLocked(sess, domain.DisplayItem{Primary: board, Duration: s.timing.Leaderboard})
	return nil
}

// RefreshResponses runs one aggregation tick for the question on screen.
// On a fetch failure the previous view stays visible.
func (s *ShowService) RefreshResponses(ctx context.Context, gameID string) error {
	sess, ok := s.sessions.Get(gameID)
	if !ok {
		return s.notOpen(ctx, gameID)
	}
	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return domain.ErrGameNotOpen
	}
	epoch := sess.epoch
	sess.mu.Unlock()
	return s.refreshTick(ctx, sess, epoch)
}

// SubmitResponse records a viewer answer to the open question.
func (s *ShowService) SubmitResponse(ctx context.Context, gameID string, viewer domain.Viewer, text string) (domain.ResponseRecord, error) {
	text = strings.TrimSpace(text)
	if viewer.ID == "" || text == "" {
		return domain.ResponseRecord{}, fmt.Errorf("viewer id and text are required: %w", domain.ErrInvalidResponse)
	}
	sess, ok := s.sessions.Get(gameID)
	if !ok {
		return domain.ResponseRecord{}, s.notOpen(ctx, gameID)
	}

	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return domain.ResponseRecord{}, domain.ErrGameNotOpen
	}
	if !sess.record.IsQuestionOpen || sess.record.QuestionStartedAt == nil {
		sess.mu.Unlock()
		return domain.ResponseRecord{}, domain.ErrQuestionClosed
	}
	now := s.sched.Now()
	r := domain.ResponseRecord{
		ID:            uuid.NewString(),
		GameID:        gameID,
		QuestionIndex: sess.record.ActiveQuestionIndex,
		Viewer:        viewer,
		Text:          text,
		SubmittedAt:   now,
		ResponseTime:  now.Sub(*sess.record.QuestionStartedAt).Seconds(),
	}
	sess.mu.Unlock()

	if err := s.responses.AppendResponse(ctx, r); err != nil {
		return domain.ResponseRecord{}, fmt.Errorf("append response: %w", err)
	}
	return r, nil
}

// Subscribe returns a stream of encoded events for gameID. The stream opens
// with connection_established followed by the item currently on screen.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *ShowService) Subscribe(ctx context.Context, gameID string) (<-chan []byte, func(), error) {
	welcome, err := json.Marshal(domain.Welcome())
	if err != nil {
		return nil, nil, err
	}
	frames := [][]byte{welcome}

	sess, ok := s.sessions.Get(gameID)
	if !ok {
		if _, err := s.games.GetGame(ctx, gameID); err != nil {
			return nil, nil, err
		}
		_, ch, cancel := s.hub.Subscribe(gameID, frames...)
		return ch, cancel, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.last != nil {
		frame, err := json.Marshal(domain.DisplayUpdate(*sess.last))
		if err != nil {
			return nil, nil, err
		}
		frames = append(frames, frame)
	}
	_, ch, cancel := s.hub.Subscribe(gameID, frames...)
	return ch, cancel, nil
}

// Snapshot describes the session of gameID, or the stored record when no
// session is live.
func (s *ShowService) Snapshot(ctx context.Context, gameID string) (Snapshot, error) {
	if sess, ok := s.sessions.Get(gameID); ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.snapshotLocked(), nil
	}
	rec, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		GameID:    rec.ID,
		GameTitle: rec.Title,
		Status:    StatusClosed,
		State:     rec.SessionState,
	}, nil
}

// Sessions lists snapshots of every session known to this instance.
func (s *ShowService) Sessions() []Snapshot {
	all := s.sessions.List()
	out := make([]Snapshot, 0, len(all))
	for _, sess := range all {
		sess.mu.Lock()
		out = append(out, sess.snapshotLocked())
		sess.mu.Unlock()
	}
	return out
}

// Close cancels every timer and flushes pending state writes. Open records
// stay open in the store so a later stop can close them.
func (s *ShowService) Close() {
	for _, sess := range s.sessions.List() {
		sess.mu.Lock()
		sess.stopTimersLocked()
		sess.epoch++
		sess.mu.Unlock()
	}
	s.writer.close()
}

// manualSession returns the locked open session of gameID, checking it is in
// manual mode. On success the caller must unlock it.
func (s *ShowService) manualSession(ctx context.Context, gameID string) (*Session, error) {
	sess, ok := s.sessions.Get(gameID)
	if !ok {
		return nil, s.notOpen(ctx, gameID)
	}
	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return nil, domain.ErrGameNotOpen
	}
	if sess.record.Mode != domain.ModeManual {
		sess.mu.Unlock()
		return nil, domain.ErrWrongMode
	}
	return sess, nil
}

// notOpen distinguishes unknown games from games without a live session.
func (s *ShowService) notOpen(ctx context.Context, gameID string) error {
	if _, err := s.games.GetGame(ctx, gameID); err != nil {
		return err
	}
	return domain.ErrGameNotOpen
}

// enterLocked moves the cursor to k, applies the item's side effects to the
// record and broadcasts it.
func (s *ShowService) enterLocked(sess *Session, k int) {
	sess.epoch++
	sess.stopRefreshLocked()
	sess.adHoc = false
	sess.seq.Cursor = k
	item := sess.seq.Items[k]
	now := s.sched.Now()

	switch {
	case item.Is(domain.KindQuestion) && item.HasQuestion():
		qi := *item.QuestionIndex
		sess.record.ActiveQuestionIndex = qi
		sess.record.QuestionStartedAt = &now
		sess.record.IsQuestionOpen = true
		sess.record.CorrectChoiceIndex = sess.record.Questions[qi].CorrectChoiceIndex()
		sess.pageOffset = 0
	case item.Is(domain.KindAnswer):
		sess.record.IsQuestionOpen = false
	}

	s.log.Debug("display advanced", "game", sess.id, "cursor", k, "kind", item.Primary.Kind())
	s.emitLocked(sess, item)

	if sess.seq.IsLast() {
		s.completeLocked(sess, now)
		return
	}
	s.persistLocked(sess)

	if !s.agg.Enabled {
		return
	}
	switch {
	case item.Is(domain.KindQuestion) && sess.record.Mode == domain.ModeAutomatic:
		s.armRefreshLocked(sess)
	case item.Is(domain.KindAnswer) && item.HasQuestion():
		s.armFastestLocked(sess)
	}
}

func (s *ShowService) completeLocked(sess *Session, now time.Time) {
	sess.stopTimersLocked()
	sess.status = StatusCompleted
	sess.record.IsGameOpen = false
	sess.record.IsQuestionOpen = false
	sess.record.EndedAt = &now
	observability.OpenSessions.Dec()
	observability.SessionTransitions.WithLabelValues("completed").Inc()
	s.log.Info("game completed", "game", sess.id)
	s.persistLocked(sess)
}

func (s *ShowService) armAdvanceLocked(sess *Session) {
	sess.stopAdvanceLocked()
	item, ok := sess.seq.Current()
	if !ok {
		return
	}
	epoch := sess.epoch
	sess.advance = s.sched.Schedule(item.Duration, func() { s.onAdvance(sess, epoch) })
}

func (s *ShowService) onAdvance(sess *Session, epoch uint64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch || sess.status != StatusOpen || sess.record.Mode != domain.ModeAutomatic {
		return
	}
	sess.advance = nil
	next := sess.seq.Cursor + 1
	if next >= len(sess.seq.Items) {
		return
	}
	s.enterLocked(sess, next)
	if sess.status == StatusOpen {
		s.armAdvanceLocked(sess)
	}
}

func (s *ShowService) armRefreshLocked(sess *Session) {
	sess.stopRefreshLocked()
	epoch := sess.epoch
	sess.refresh = s.sched.Schedule(s.agg.Interval, func() {
		_ = s.refreshTick(context.Background(), sess, epoch)

		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.epoch == epoch && sess.status == StatusOpen &&
			sess.record.Mode == domain.ModeAutomatic && sess.record.IsQuestionOpen {
			s.armRefreshLocked(sess)
		}
	})
}

func (s *ShowService) armFastestLocked(sess *Session) {
	sess.stopRefreshLocked()
	epoch := sess.epoch
	sess.refresh = s.sched.Schedule(0, func() {
		_ = s.fastestTick(context.Background(), sess, epoch)
	})
}

// refreshTick grafts the next responses page onto the question on screen.
// The feed is queried without holding the session lock; the result is
// dropped if the session moved on meanwhile.
func (s *ShowService) refreshTick(ctx context.Context, sess *Session, epoch uint64) error {
	sess.mu.Lock()
	if sess.epoch != epoch || sess.status != StatusOpen {
		sess.mu.Unlock()
		return nil
	}
	item, ok := sess.seq.Current()
	if !ok || sess.adHoc || !item.Is(domain.KindQuestion) || !item.HasQuestion() {
		sess.mu.Unlock()
		return domain.ErrNoActiveQuestion
	}
	qi := *item.QuestionIndex
	question := sess.record.Questions[qi]
	since := startedAt(sess.record)
	offset := sess.pageOffset
	sess.mu.Unlock()

	responses, err := s.responses.ResponsesSince(ctx, sess.id, qi, since)
	if err != nil {
		observability.AggregationFailures.Inc()
		s.log.Warn("fetch responses", "game", sess.id, "question", qi, "err", err)
		return fmt.Errorf("%w: %w", domain.ErrAggregationFetch, err)
	}
	view, next := s.ranker.ResponsesPage(question, responses, offset)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch || sess.status != StatusOpen {
		return nil
	}
	sess.pageOffset = next
	s.graftLocked(sess, view)
	return nil
}

// fastestTick grafts the fastest correct answers onto the answer on screen.
func (s *ShowService) fastestTick(ctx context.Context, sess *Session, epoch uint64) error {
	sess.mu.Lock()
	if sess.epoch != epoch || sess.status != StatusOpen {
		sess.mu.Unlock()
		return nil
	}
	item, ok := sess.seq.Current()
	if !ok || sess.adHoc || !item.Is(domain.KindAnswer) || !item.HasQuestion() {
		sess.mu.Unlock()
		return nil
	}
	qi := *item.QuestionIndex
	question := sess.record.Questions[qi]
	since := startedAt(sess.record)
	sess.mu.Unlock()

	responses, err := s.responses.ResponsesSince(ctx, sess.id, qi, since)
	if err != nil {
		observability.AggregationFailures.Inc()
		s.log.Warn("fetch fastest answers", "game", sess.id, "question", qi, "err", err)
		return fmt.Errorf("%w: %w", domain.ErrAggregationFetch, err)
	}
	view := s.ranker.Fastest(question, responses)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch || sess.status != StatusOpen {
		return nil
	}
	s.graftLocked(sess, view)
	return nil
}

func (s *ShowService) graftLocked(sess *Session, secondary domain.Payload) {
	cur := sess.seq.Cursor
	item := sess.seq.Items[cur]
	item.Secondary = secondary
	sess.seq.Items[cur] = item
	s.emitLocked(sess, item)
}

func (s *ShowService) emitLocked(sess *Session, item domain.DisplayItem) {
	sess.last = &item
	observability.DisplayUpdates.WithLabelValues(string(item.Primary.Kind())).Inc()
	s.publish(sess.id, domain.DisplayUpdate(item))
}

func (s *ShowService) persistLocked(sess *Session) {
	s.writer.enqueue(sess.id, sess.record.SessionState)
	s.sessions.MarkLive(sess.id, sess.status == StatusOpen)
}

func (s *ShowService) publish(gameID string, ev domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
	defer cancel()
	if err := s.bcast.Publish(ctx, gameID, ev); err != nil {
		s.log.Warn("broadcast event", "game", gameID, "event", ev.Type, "err", err)
	}
}

func startedAt(rec domain.GameRecord) time.Time {
	if rec.QuestionStartedAt == nil {
		return time.Time{}
	}
	return *rec.QuestionStartedAt
}
