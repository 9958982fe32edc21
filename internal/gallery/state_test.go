package gallery

import (
	"sync"
	"testing"

	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/log"
)

// stateIn drives a fresh state machine into the wanted state.
func stateIn(t *testing.T, want domain.PageState) *State {
	t.Helper()
	s := NewState(log.NullLogger())
	switch want {
	case domain.StateReady:
	case domain.StateLoading:
		s.RequestLoad(false)
	case domain.StateFailed:
		s.RequestLoad(false)
		s.ReportFailure()
	case domain.StateEnd:
		s.RequestLoad(false)
		s.ReportSuccess("")
	}
	if got := s.Current(); got != want {
		t.Fatalf("setup: state = %v, want %v", got, want)
	}
	return s
}

func TestState_RequestLoad(t *testing.T) {
	tests := []struct {
		from     domain.PageState
		explicit bool
		accepted bool
		to       domain.PageState
	}{
		{domain.StateReady, false, true, domain.StateLoading},
		{domain.StateReady, true, true, domain.StateLoading},
		{domain.StateFailed, true, true, domain.StateLoading},
		{domain.StateFailed, false, false, domain.StateFailed},
		{domain.StateLoading, false, false, domain.StateLoading},
		{domain.StateLoading, true, false, domain.StateLoading},
		{domain.StateEnd, false, false, domain.StateEnd},
		{domain.StateEnd, true, false, domain.StateEnd},
	}

	for _, tt := range tests {
		s := stateIn(t, tt.from)

		if got := s.CanLoadMore(tt.explicit); got != tt.accepted {
			t.Errorf("%v: CanLoadMore(%v) = %v, want %v", tt.from, tt.explicit, got, tt.accepted)
		}
		if s.Current() != tt.from {
			t.Errorf("%v: CanLoadMore changed state to %v", tt.from, s.Current())
		}

		if got := s.RequestLoad(tt.explicit); got != tt.accepted {
			t.Errorf("%v: RequestLoad(%v) = %v, want %v", tt.from, tt.explicit, got, tt.accepted)
		}
		if got := s.Current(); got != tt.to {
			t.Errorf("%v: after RequestLoad(%v) state = %v, want %v", tt.from, tt.explicit, got, tt.to)
		}
	}
}

func TestState_ReportSuccess(t *testing.T) {
	s := stateIn(t, domain.StateLoading)

	var seen []domain.PageState
	s.Subscribe(func(st domain.PageState) { seen = append(seen, st) })

	s.ReportSuccess("tok2")
	if s.Current() != domain.StateReady {
		t.Fatalf("state = %v, want ready", s.Current())
	}
	if s.NextToken() != "tok2" {
		t.Errorf("NextToken() = %q, want tok2", s.NextToken())
	}

	s.RequestLoad(false)
	s.ReportSuccess("")
	if !s.IsEnd() {
		t.Fatalf("state = %v, want end", s.Current())
	}

	want := []domain.PageState{domain.StateReady, domain.StateEnd}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification[%d] = %v, want %v", i, seen[i], want[i])
		}
	}

	// END is terminal.
	if s.RequestLoad(true) || s.RequestLoad(false) {
		t.Error("load accepted after end")
	}
}

func TestState_ReportFailure(t *testing.T) {
	s := stateIn(t, domain.StateLoading)

	var seen []domain.PageState
	s.Subscribe(func(st domain.PageState) { seen = append(seen, st) })

	s.ReportFailure()
	if s.Current() != domain.StateFailed {
		t.Fatalf("state = %v, want failed", s.Current())
	}
	if len(seen) != 1 || seen[0] != domain.StateFailed {
		t.Errorf("notifications = %v, want [failed]", seen)
	}
}

func TestState_ReportOutsideLoadingIgnored(t *testing.T) {
	s := stateIn(t, domain.StateReady)

	calls := 0
	s.Subscribe(func(domain.PageState) { calls++ })

	s.ReportSuccess("tok")
	s.ReportFailure()

	if s.Current() != domain.StateReady {
		t.Errorf("state = %v, want ready", s.Current())
	}
	if s.NextToken() != "" {
		t.Errorf("token stored outside loading: %q", s.NextToken())
	}
	if calls != 0 {
		t.Errorf("subscribers called %d times, want 0", calls)
	}
}

func TestState_SingleInFlight(t *testing.T) {
	s := NewState(log.NullLogger())

	const callers = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(explicit bool) {
			defer wg.Done()
			if s.RequestLoad(explicit) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i%2 == 0)
	}
	wg.Wait()

	if accepted != 1 {
		t.Fatalf("accepted = %d, want exactly 1", accepted)
	}
	if s.Current() != domain.StateLoading {
		t.Errorf("state = %v, want loading", s.Current())
	}
}

func TestPageState_String(t *testing.T) {
	tests := map[domain.PageState]string{
		domain.StateReady:   "ready",
		domain.StateLoading: "loading",
		domain.StateFailed:  "failed",
		domain.StateEnd:     "end",
		domain.PageState(9): "unknown",
	}
	for st, want := range tests {
		if got := st.String(); got != want {
			t.Errorf("PageState(%d).String() = %q, want %q", int(st), got, want)
		}
	}
}
