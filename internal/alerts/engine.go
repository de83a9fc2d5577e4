package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seren-app/seren/internal/emotions"
)

// evaluationLookback bounds the history window the rules inspect. Eight
// days of records always contain the seven distinct calendar days the
// longest streak threshold needs, regardless of when in the day the
// evaluation runs.
const evaluationLookback = 8 * 24 * time.Hour

var singleScoreThresholds = []struct {
	level AlertLevel
	score int
}{
	{LevelSevere, 90},
	{LevelModerate, 80},
	{LevelMild, 70},
}

var streakThresholds = []struct {
	level AlertLevel
	days  int
}{
	{LevelSevere, 7},
	{LevelModerate, 5},
	{LevelMild, 3},
}

// candidate is a rule hit before deduplication.
type candidate struct {
	level  AlertLevel
	reason string
}

// evaluateRules runs both rule families over a newest-first window and
// resolves to at most one candidate. Rule B only applies when Rule A
// produced nothing. An empty window yields no candidate.
func evaluateRules(window []emotions.Record) (candidate, bool) {
	if len(window) == 0 {
		return candidate{}, false
	}

	if c, ok := ruleSingleEvent(window[0]); ok {
		return c, true
	}

	return ruleNegativeStreak(window)
}

// ruleSingleEvent inspects only the most recent record: a negative label
// whose score meets a threshold selects the highest qualifying severity.
func ruleSingleEvent(latest emotions.Record) (candidate, bool) {
	if !latest.Label.Negative() {
		return candidate{}, false
	}

	for _, t := range singleScoreThresholds {
		if latest.Score >= t.score {
			return candidate{
				level:  t.level,
				reason: fmt.Sprintf("single %s score too high (%d)", latest.Label, latest.Score),
			}, true
		}
	}

	return candidate{}, false
}

// ruleNegativeStreak counts contiguous calendar days, newest first, that
// each have a negative-label record, and maps the count to a severity.
func ruleNegativeStreak(window []emotions.Record) (candidate, bool) {
	days := consecutiveNegativeDays(window)

	for _, t := range streakThresholds {
		if days >= t.days {
			return candidate{
				level:  t.level,
				reason: fmt.Sprintf("%d consecutive days of negative emotion", days),
			}, true
		}
	}

	return candidate{}, false
}

// consecutiveNegativeDays walks a newest-first window and counts distinct,
// contiguous calendar days (UTC) carrying a negative record. The newest
// record of each day decides that day; later records from an already
// counted day are skipped without breaking the streak. The count stops at
// the first non-negative day and at the first gap in the day sequence.
func consecutiveNegativeDays(window []emotions.Record) int {
	var (
		streak   int
		expected time.Time
		seen     = make(map[time.Time]bool)
	)

	for _, rec := range window {
		day := calendarDay(rec.CreatedAt)

		if seen[day] {
			continue
		}
		seen[day] = true

		if streak > 0 && !day.Equal(expected) {
			break
		}

		if !rec.Label.Negative() {
			break
		}

		streak++
		expected = day.AddDate(0, 0, -1)
	}

	return streak
}

func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func describe(latest emotions.Record) string {
	return fmt.Sprintf(
		"recent emotional state needs attention; most recent emotion: %s (score: %d)",
		latest.Label, latest.Score,
	)
}

// subjectLocks serializes the dedup check-then-insert per subject so that
// two concurrent evaluations cannot both pass the check and both insert.
type subjectLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newSubjectLocks() *subjectLocks {
	return &subjectLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (s *subjectLocks) get(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
