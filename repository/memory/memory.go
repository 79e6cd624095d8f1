// Package memory provides an in-process implementation of
// repository.Repository. It mirrors the constraints of the postgres schema
// and supports injecting faults per operation, which makes it the store of
// choice for service and handler tests.
package memory

import (
	"sync"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

var _ repository.Repository = (*Store)(nil)

// Operation names accepted by FailOn and Calls.
const (
	OpCreateBook             = "CreateBook"
	OpGetBook                = "GetBook"
	OpPublishBook            = "PublishBook"
	OpUpdateBookRatings      = "UpdateBookRatings"
	OpGetTrendingCandidates  = "GetTrendingCandidates"
	OpUpsertReview           = "UpsertReview"
	OpGetReview              = "GetReview"
	OpDeleteReview           = "DeleteReview"
	OpGetRatingsForBook      = "GetRatingsForBook"
	OpGetAllReviewsForBook   = "GetAllReviewsForBook"
	OpCreateFollow           = "CreateFollow"
	OpDeleteFollow           = "DeleteFollow"
	OpFollowExists           = "FollowExists"
	OpCountFollowers         = "CountFollowers"
	OpGetFollowingIDs        = "GetFollowingIDs"
	OpGetAllFollowersForUser = "GetAllFollowersForUser"
	OpInsertActivity         = "InsertActivity"
	OpGetActivitiesForActors = "GetActivitiesForActors"
	OpGetAllActivities       = "GetAllActivities"
	OpCreateUser             = "CreateUser"
	OpGetUser                = "GetUser"
	OpGetUserForToken        = "GetUserForToken"
	OpGetWriterSummaries     = "GetWriterSummaries"
	OpGetCategoryCounts      = "GetCategoryCounts"
)

type token struct {
	userID int64
	scope  string
	expiry time.Time
}

type followKey struct {
	followerID  int64
	followingID int64
}

// Store is a mutex guarded in-memory Repository.
type Store struct {
	mu         sync.Mutex
	now        func() time.Time
	nextID     int64
	users      map[int64]*data.User
	tokens     map[string]token
	books      map[int64]*data.Book
	reviews    map[int64]*data.Review
	follows    map[followKey]*data.Follow
	activities []*data.Activity
	faults     map[string]error
	calls      map[string]int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		now:     time.Now,
		users:   make(map[int64]*data.User),
		tokens:  make(map[string]token),
		books:   make(map[int64]*data.Book),
		reviews: make(map[int64]*data.Review),
		follows: make(map[followKey]*data.Follow),
		faults:  make(map[string]error),
		calls:   make(map[string]int),
	}
}

// SetClock replaces the clock used to stamp created records.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes every subsequent call of op return err. A nil err clears the fault.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Calls returns how many times op has been invoked.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// AddToken registers a plaintext token for userID.
func (s *Store) AddToken(userID int64, scope, plaintext string, expiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[string(data.TokenHash(plaintext))] = token{userID: userID, scope: scope, expiry: expiry}
}

// Activities returns a copy of every stored activity in insertion order.
func (s *Store) Activities() []data.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]data.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, *a)
	}
	return out
}

// Follows returns the number of stored follow edges.
func (s *Store) Follows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

// enter records a call of op and returns its injected fault. Callers must hold mu.
func (s *Store) enter(op string) error {
	s.calls[op]++
	return s.faults[op]
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}
