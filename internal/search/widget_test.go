package search

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"blog_server/internal/domain"
	"blog_server/internal/service/mocks"
)

const (
	testDebounce = 20 * time.Millisecond
	waitFor      = 2 * time.Second
	tick         = 2 * time.Millisecond
)

type WidgetTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	source *mocks.MockContentSource
	logger *slog.Logger
}

func (s *WidgetTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockContentSource(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func (s *WidgetTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestWidgetTestSuite(t *testing.T) {
	suite.Run(t, new(WidgetTestSuite))
}

func (s *WidgetTestSuite) newWidget() *Widget {
	return NewWidget(s.source, Config{
		Debounce:       testDebounce,
		MinQueryLength: 2,
	}, s.logger)
}

func (s *WidgetTestSuite) waitForState(w *Widget, state State) {
	s.Require().Eventually(func() bool {
		return w.Snapshot().State == state
	}, waitFor, tick, "expected state %s, got %s", state, w.Snapshot().State)
}

func (s *WidgetTestSuite) TestDebounce_CollapsesRapidKeystrokes() {
	posts := []domain.Post{{ID: "p1", Title: "Cybersecurity 101", Slug: "cybersecurity-101"}}

	// Only the final keystroke's query may ever reach the searcher.
	s.source.EXPECT().InstantSearch(gomock.Any(), "cyb").Return(posts, nil)

	w := s.newWidget()
	w.Type("c")
	w.Type("cy")
	w.Type("cyb")

	s.waitForState(w, StateOpenResults)

	snap := w.Snapshot()
	s.Equal("cyb", snap.Query)
	s.Len(snap.Results, 1)
	s.False(snap.Loading)
}

func (s *WidgetTestSuite) TestMinLength_SingleRuneIssuesNoRequest() {
	w := s.newWidget()
	w.Type("c")

	// Well past the debounce window; no lookup may have been issued.
	time.Sleep(5 * testDebounce)

	snap := w.Snapshot()
	s.Equal(StateIdle, snap.State)
	s.Empty(snap.Results)
}

func (s *WidgetTestSuite) TestMinLength_TwoRunesIssuesRequest() {
	s.source.EXPECT().InstantSearch(gomock.Any(), "cy").Return(nil, nil)

	w := s.newWidget()
	w.Type("cy")

	s.waitForState(w, StateOpenEmpty)
}

func (s *WidgetTestSuite) TestRaceSafety_StaleResultNeverOverwritesNewer() {
	cybPosts := []domain.Post{{ID: "old", Title: "Stale", Slug: "stale"}}
	cyberPosts := []domain.Post{{ID: "new", Title: "Fresh", Slug: "fresh"}}

	cybIssued := make(chan struct{})
	cybRelease := make(chan struct{})

	s.source.EXPECT().InstantSearch(gomock.Any(), "cyb").DoAndReturn(
		func(ctx context.Context, _ string) ([]domain.Post, error) {
			close(cybIssued)
			<-cybRelease
			return cybPosts, nil
		},
	)
	s.source.EXPECT().InstantSearch(gomock.Any(), "cyber").Return(cyberPosts, nil)

	w := s.newWidget()
	w.Type("cyb")

	// The first request must be in flight before the user keeps typing.
	select {
	case <-cybIssued:
	case <-time.After(waitFor):
		s.FailNow("first request never issued")
	}

	w.Type("cyber")
	s.Require().Eventually(func() bool {
		snap := w.Snapshot()
		return snap.State == StateOpenResults && len(snap.Results) == 1 && snap.Results[0].ID == "new"
	}, waitFor, tick)

	// Now let the stale request resolve; it must be discarded.
	close(cybRelease)
	time.Sleep(5 * testDebounce)

	snap := w.Snapshot()
	s.Equal(StateOpenResults, snap.State)
	s.Require().Len(snap.Results, 1)
	s.Equal("new", snap.Results[0].ID)
}

func (s *WidgetTestSuite) TestEmptyResults_OpensEmptyState() {
	s.source.EXPECT().InstantSearch(gomock.Any(), "nothing here").Return(nil, nil)

	w := s.newWidget()
	w.Type("nothing here")

	s.waitForState(w, StateOpenEmpty)
}

func (s *WidgetTestSuite) TestClose_PreservesTypedText() {
	posts := []domain.Post{{ID: "p1", Title: "Cybersecurity 101", Slug: "cybersecurity-101"}}
	s.source.EXPECT().InstantSearch(gomock.Any(), "cyber").Return(posts, nil)

	w := s.newWidget()
	w.Type("cyber")
	s.waitForState(w, StateOpenResults)

	w.Close()

	snap := w.Snapshot()
	s.Equal(StateClosed, snap.State)
	s.Equal("cyber", snap.Query)
}

func (s *WidgetTestSuite) TestClear_ResetsToIdle() {
	posts := []domain.Post{{ID: "p1", Title: "Cybersecurity 101", Slug: "cybersecurity-101"}}
	s.source.EXPECT().InstantSearch(gomock.Any(), "cyber").Return(posts, nil)

	w := s.newWidget()
	w.Type("cyber")
	s.waitForState(w, StateOpenResults)

	w.Clear()

	snap := w.Snapshot()
	s.Equal(StateIdle, snap.State)
	s.Empty(snap.Query)
	s.Empty(snap.Results)
}

func (s *WidgetTestSuite) TestSubmit_ReturnsQueryAndCloses() {
	w := s.newWidget()
	w.Type("kubernetes")

	query, ok := w.Submit()

	s.True(ok)
	s.Equal("kubernetes", query)
	s.Equal(StateClosed, w.Snapshot().State)

	// The cancelled debounce timer must not fire a lookup afterwards.
	time.Sleep(5 * testDebounce)
}

func (s *WidgetTestSuite) TestSubmit_BlankQueryDoesNotNavigate() {
	w := s.newWidget()
	w.Type("   ")

	_, ok := w.Submit()

	s.False(ok)
}

func (s *WidgetTestSuite) TestOnChange_ObservesTransitions() {
	s.source.EXPECT().InstantSearch(gomock.Any(), "cy").Return(nil, nil)

	states := make(chan State, 16)
	w := NewWidget(s.source, Config{
		Debounce:       testDebounce,
		MinQueryLength: 2,
		OnChange: func(snap Snapshot) {
			states <- snap.State
		},
	}, s.logger)

	w.Type("cy")

	seen := make([]State, 0, 3)
	deadline := time.After(waitFor)
	for len(seen) < 3 {
		select {
		case st := <-states:
			seen = append(seen, st)
		case <-deadline:
			s.FailNow("missing transitions", "saw %v", seen)
		}
	}

	s.Equal([]State{StateIdle, StatePending, StateOpenEmpty}, seen[:3])
}
