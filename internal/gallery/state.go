package gallery

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/openview/internal/domain"
)

// State is the pagination state machine of a directory session.
//
//	READY   --request-->            LOADING
//	FAILED  --request(explicit)-->  LOADING
//	LOADING --success(token)-->     READY
//	LOADING --success(no token)-->  END
//	LOADING --failure-->            FAILED
//
// Every other request is rejected without a transition. Because admission
// and the move to LOADING happen under one lock, at most one load is ever
// in flight.
type State struct {
	mu        sync.Mutex
	value     domain.PageState
	nextToken domain.PageToken

	subscribers []func(domain.PageState)
	logger      *slog.Logger
}

// NewState creates a state machine in READY with no token.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{value: domain.StateReady, logger: logger}
}

// Subscribe registers fn to be called after every reported outcome.
func (s *State) Subscribe(fn func(domain.PageState)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// RequestLoad moves to LOADING and returns true if a load may start now.
func (s *State) RequestLoad(explicit bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canLoadMore(explicit) {
		s.logger.Debug("load rejected", "state", s.value, "explicit", explicit)
		return false
	}
	s.value = domain.StateLoading
	return true
}

// ReportSuccess records the token of the page just received. An absent
// token ends pagination.
func (s *State) ReportSuccess(token domain.PageToken) {
	s.mu.Lock()
	if s.value != domain.StateLoading {
		s.mu.Unlock()
		s.logger.Warn("success reported outside of loading", "state", s.value)
		return
	}
	s.nextToken = token
	if token.IsZero() {
		s.value = domain.StateEnd
	} else {
		s.value = domain.StateReady
	}
	next, subs := s.value, s.subscribers
	s.mu.Unlock()

	s.notify(subs, next)
}

// ReportFailure marks the in-flight load as failed.
func (s *State) ReportFailure() {
	s.mu.Lock()
	if s.value != domain.StateLoading {
		s.mu.Unlock()
		s.logger.Warn("failure reported outside of loading", "state", s.value)
		return
	}
	s.value = domain.StateFailed
	subs := s.subscribers
	s.mu.Unlock()

	s.notify(subs, domain.StateFailed)
}

// CanLoadMore evaluates the admission guard without changing state.
func (s *State) CanLoadMore(explicit bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canLoadMore(explicit)
}

func (s *State) canLoadMore(explicit bool) bool {
	switch s.value {
	case domain.StateReady:
		return true
	case domain.StateFailed:
		return explicit
	default:
		return false
	}
}

// Current returns the current state.
func (s *State) Current() domain.PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// IsEnd reports whether pagination has finished.
func (s *State) IsEnd() bool {
	return s.Current() == domain.StateEnd
}

// NextToken returns the token the next request resumes from.
func (s *State) NextToken() domain.PageToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextToken
}

func (s *State) notify(subs []func(domain.PageState), state domain.PageState) {
	for _, fn := range subs {
		fn(state)
	}
}
