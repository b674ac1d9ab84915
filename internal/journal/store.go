// Package journal keeps the process-wide, append-only log of user
// interactions. It backs admin statistics, the recent-activity listing,
// and the running message counters attached to forwarded texts.
package journal

import (
	"sort"
	"sync"
	"time"
)

// Kind classifies a single recorded interaction.
type Kind string

const (
	// KindStarted marks the start command.
	KindStarted Kind = "started"
	// KindButton marks an inline button press; Token carries the transition token.
	KindButton Kind = "button"
	// KindText marks a free-text message; Body carries the text.
	KindText Kind = "text"
)

// Record is one logged inbound event. Immutable once appended.
type Record struct {
	Kind  Kind
	Token string
	Body  string
	At    time.Time
}

// Stats is the aggregate view served by the admin console.
type Stats struct {
	Users       int
	Records     int
	ActiveToday int
}

// UserActivity is one row of the recent-activity listing.
type UserActivity struct {
	UserID   int64
	Total    int
	LastSeen time.Time
	// Recent holds up to the requested number of trailing records,
	// oldest first.
	Recent []Record
}

// Store is the mutex-guarded interaction log. Appends and the destructive
// clear never interleave; aggregate queries see a consistent snapshot.
// Notifications triggered by an append must be sent after the call
// returns, never under the store's lock.
type Store struct {
	mu      sync.Mutex
	records map[int64][]Record
	now     func() time.Time
}

// NewStore creates an empty journal.
func NewStore() *Store {
	return &Store{
		records: make(map[int64][]Record),
		now:     time.Now,
	}
}

// Append records one interaction for the user, creating the entry if
// absent. It reports whether this was the user's first-ever record and
// the user's total record count after the append.
func (s *Store) Append(userID int64, rec Record) (first bool, count int) {
	if rec.At.IsZero() {
		rec.At = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.records[userID]
	first = len(existing) == 0
	s.records[userID] = append(existing, rec)
	return first, len(existing) + 1
}

// Count returns the number of records for a single user.
func (s *Store) Count(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[userID])
}

// Stats computes totals and the number of users active on the current
// calendar day (process-local clock).
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	y, m, d := today.Date()

	var st Stats
	st.Users = len(s.records)
	for _, recs := range s.records {
		st.Records += len(recs)
		for _, r := range recs {
			ry, rm, rd := r.At.Date()
			if ry == y && rm == m && rd == d {
				st.ActiveToday++
				break
			}
		}
	}
	return st
}

// RecentUsers returns up to maxUsers users ordered by last activity,
// most recent first, each carrying up to maxRecords trailing records.
func (s *Store) RecentUsers(maxUsers, maxRecords int) []UserActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]UserActivity, 0, len(s.records))
	for userID, recs := range s.records {
		if len(recs) == 0 {
			continue
		}
		tail := recs
		if maxRecords > 0 && len(tail) > maxRecords {
			tail = tail[len(tail)-maxRecords:]
		}
		recent := make([]Record, len(tail))
		copy(recent, tail)
		out = append(out, UserActivity{
			UserID:   userID,
			Total:    len(recs),
			LastSeen: recs[len(recs)-1].At,
			Recent:   recent,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastSeen.Equal(out[j].LastSeen) {
			return out[i].LastSeen.After(out[j].LastSeen)
		}
		return out[i].UserID < out[j].UserID
	})

	if maxUsers > 0 && len(out) > maxUsers {
		out = out[:maxUsers]
	}
	return out
}

// ClearAll empties the entire journal atomically.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[int64][]Record)
}
