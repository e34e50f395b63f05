package assessment

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kalambet/tizhi/internal/advice"
	"github.com/kalambet/tizhi/internal/metrics"
	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

var (
	ErrNotFound          = errors.New("assessment not found")
	ErrNotCompleted      = errors.New("assessment not completed")
	ErrInvalidRespondent = errors.New("invalid respondent")
)

const (
	defaultMaxActive = 1024
	defaultTTL       = 30 * time.Minute
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Options configures a Registry. Zero values fall back to defaults.
type Options struct {
	MaxActive int
	TTL       time.Duration
	Clock     Clock
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Location is the respondents' time zone, used to pick the season for
	// advice. Defaults to time.Local.
	Location *time.Location
}

// Registry keeps the in-progress and recently completed assessments of
// many respondents in memory. Each assessment is guarded by its own lock;
// respondents never share mutable state. Nothing survives a restart.
type Registry struct {
	bank    *questionnaire.Bank
	cache   *lru.Cache[string, *entry]
	ttl     time.Duration
	clock   Clock
	loc     *time.Location
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type entry struct {
	id      string
	removed atomic.Bool

	mu          sync.Mutex
	session     *questionnaire.Session
	respondent  *profile.Respondent
	createdAt   time.Time
	updatedAt   time.Time
	completedAt time.Time
}

// NewRegistry creates a registry serving questions from bank. When more
// than MaxActive assessments are held the least recently used one is
// evicted.
func NewRegistry(bank *questionnaire.Bank, opts Options) (*Registry, error) {
	if bank == nil {
		return nil, fmt.Errorf("%w: nil bank", questionnaire.ErrEmptyQuestionBank)
	}
	if opts.MaxActive <= 0 {
		opts.MaxActive = defaultMaxActive
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	r := &Registry{
		bank:    bank,
		ttl:     opts.TTL,
		clock:   opts.Clock,
		loc:     opts.Location,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	cache, err := lru.NewWithEvict[string, *entry](opts.MaxActive, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// onEvict runs under the cache lock. Entries removed on purpose are
// flagged beforehand; anything else was pushed out by capacity. Only
// unfinished assessments count as evicted.
func (r *Registry) onEvict(id string, e *entry) {
	if !e.removed.CompareAndSwap(false, true) {
		return
	}
	e.mu.Lock()
	completed := e.session.Completed()
	e.mu.Unlock()
	if completed {
		r.logger.Debug("completed assessment evicted at capacity", "id", id)
		return
	}
	r.metrics.IncEnded(metrics.EndEvicted)
	r.logger.Warn("assessment evicted at capacity", "id", id)
}

// Bank returns the question bank the registry serves.
func (r *Registry) Bank() *questionnaire.Bank { return r.bank }

// Len returns the number of assessments held.
func (r *Registry) Len() int { return r.cache.Len() }

// Start opens a new assessment. respondent is optional; when present it
// is validated and used to compose advice for the result.
func (r *Registry) Start(respondent *profile.Respondent) (Snapshot, error) {
	if respondent != nil {
		rp := *respondent
		if err := rp.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidRespondent, err)
		}
		respondent = &rp
	}

	now := r.clock.Now().UTC()
	e := &entry{
		id:         uuid.New().String(),
		session:    questionnaire.NewSession(r.bank),
		respondent: respondent,
		createdAt:  now,
		updatedAt:  now,
	}
	r.cache.Add(e.id, e)
	r.metrics.IncStarted()
	r.metrics.SetActive(r.cache.Len())
	r.logger.Debug("assessment started", "id", e.id)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// Get returns the current state of an assessment.
func (r *Registry) Get(id string) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// Answer submits value for the current question of an assessment.
func (r *Registry) Answer(id string, value int) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	u, err := e.session.Submit(value)
	switch {
	case errors.Is(err, questionnaire.ErrInvalidAnswerValue):
		r.metrics.IncAnswer(metrics.AnswerInvalid)
		return Snapshot{}, err
	case errors.Is(err, questionnaire.ErrSessionCompleted):
		r.metrics.IncAnswer(metrics.AnswerCompleted)
		return Snapshot{}, err
	case err != nil:
		return Snapshot{}, err
	}

	r.metrics.IncAnswer(metrics.AnswerAccepted)
	e.updatedAt = r.clock.Now().UTC()
	if u.Completed {
		e.completedAt = e.updatedAt
		answered := e.session.Len()
		primary := questionnaire.ResolvePrimary(u.Scores)
		r.metrics.ObserveCompleted(primary.String(), answered)
		r.logger.Info("assessment completed", "id", id, "primary", primary.String(), "answered", answered)
	}
	return e.snapshot(), nil
}

// Back returns an assessment to its previous question.
func (r *Registry) Back(id string) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.session.Back(); err != nil {
		return Snapshot{}, err
	}
	e.updatedAt = r.clock.Now().UTC()
	return e.snapshot(), nil
}

// Result returns the scored report of a completed assessment.
func (r *Registry) Result(id string) (Report, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Report{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	scores, ok := e.session.Result()
	if !ok {
		return Report{}, fmt.Errorf("%w: %d of %d answered", ErrNotCompleted, len(e.session.Answers()), e.session.Len())
	}
	return buildReport(e.id, scores, len(e.session.Answers()), e.respondent, e.completedAt.In(r.loc))
}

// Abandon discards an assessment.
func (r *Registry) Abandon(id string) error {
	e, ok := r.cache.Peek(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.remove(e, metrics.EndAbandoned)
	return nil
}

// Sweep drops every assessment idle for longer than the TTL and returns
// how many were dropped.
func (r *Registry) Sweep() int {
	now := r.clock.Now()
	n := 0
	for _, id := range r.cache.Keys() {
		e, ok := r.cache.Peek(id)
		if !ok {
			continue
		}
		if r.expired(e, now) {
			r.remove(e, metrics.EndExpired)
			n++
		}
	}
	r.metrics.SetActive(r.cache.Len())
	return n
}

func (r *Registry) lookup(id string) (*entry, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if r.expired(e, r.clock.Now()) {
		r.remove(e, metrics.EndExpired)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.updatedAt) > r.ttl
}

func (r *Registry) remove(e *entry, reason string) {
	if !e.removed.CompareAndSwap(false, true) {
		return
	}
	r.cache.Remove(e.id)
	r.metrics.SetActive(r.cache.Len())

	e.mu.Lock()
	completed := e.session.Completed()
	e.mu.Unlock()
	// Completed assessments leaving the registry are not abandoned.
	if !completed {
		r.metrics.IncEnded(reason)
	}
	r.logger.Debug("assessment removed", "id", e.id, "reason", reason, "completed", completed)
}

// Report is the result of a completed assessment.
type Report struct {
	ID           string                        `json:"id"`
	Scores       questionnaire.ScoreMap        `json:"scores"`
	Primary      questionnaire.Category        `json:"primary"`
	PrimaryLabel string                        `json:"primary_label"`
	Ranking      []questionnaire.CategoryScore `json:"ranking"`
	Answered     int                           `json:"answered"`
	Respondent   *profile.Respondent           `json:"respondent,omitempty"`
	Advice       *advice.Report                `json:"advice,omitempty"`
	CompletedAt  time.Time                     `json:"completed_at"`
}

func buildReport(id string, scores questionnaire.ScoreMap, answered int, respondent *profile.Respondent, completedAt time.Time) (Report, error) {
	primary := questionnaire.ResolvePrimary(scores)
	rep := Report{
		ID:           id,
		Scores:       scores,
		Primary:      primary,
		PrimaryLabel: primary.Label(),
		Ranking:      questionnaire.Rank(scores),
		Answered:     answered,
		CompletedAt:  completedAt,
	}
	if respondent != nil {
		rp := *respondent
		a, err := advice.Compose(rp, primary, completedAt)
		if err != nil {
			return Report{}, fmt.Errorf("composing advice: %w", err)
		}
		rep.Respondent = &rp
		rep.Advice = &a
	}
	return rep, nil
}
