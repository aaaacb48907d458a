package indeed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-indeed-automation/internal/checkpoint"
)

func TestParseTotalJobs(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"1,234 jobs Page 1 of", 1234},
		{"Page 1 of 88 jobs", 88},
		{"9 jobs", 9},
	}
	for _, tc := range cases {
		got, err := parseTotalJobs(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}

	_, err := parseTotalJobs("no numbers here")
	assert.Error(t, err)
}

func TestDiscoverPageCountPrimary(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := &fakeDriver{
		page: map[string][]*fakeElement{
			jobCountSelector: {{text: "1,234 jobs Page 1 of"}},
		},
	}

	var state checkpoint.State
	s.discoverPageCount(drv, &state)

	assert.Equal(t, 1234, state.TotalJobs)
	assert.Equal(t, 123, state.PagesTotal)
}

func TestDiscoverPageCountLegacyFallback(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := &fakeDriver{
		page: map[string][]*fakeElement{
			legacyJobCountSelector: {{text: "Page 1 of 88 jobs"}},
		},
	}

	var state checkpoint.State
	s.discoverPageCount(drv, &state)

	assert.Equal(t, 88, state.TotalJobs)
	assert.Equal(t, 9, state.PagesTotal)
}

func TestDiscoverPageCountDefaultsWhenBothIndicatorsMiss(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := &fakeDriver{page: map[string][]*fakeElement{}}

	var state checkpoint.State
	s.discoverPageCount(drv, &state)

	assert.Equal(t, 0, state.TotalJobs)
	assert.Equal(t, 25, state.PagesTotal)
}

// resultsPage builds a driver showing count text and the given cards on
// every page.
func resultsPage(countText string, cards ...*fakeElement) *fakeDriver {
	list := &fakeElement{children: map[string][]*fakeElement{jobCardSelector: cards}}
	page := map[string][]*fakeElement{
		resultsListSelector: {list},
	}
	if countText != "" {
		page[jobCountSelector] = []*fakeElement{{text: countText}}
	}
	return &fakeDriver{page: page}
}

func TestScrapeAdvancesStateInLockstep(t *testing.T) {
	sink := &recordingSink{}
	store, err := checkpoint.NewStore(t.TempDir())
	require.NoError(t, err)
	s := New("https://ca.indeed.com/jobs", sink, store, zerolog.Nop()).WithTiming(Timing{})

	// 19 jobs rounds to 2 pages of 2 cards each
	drv := resultsPage("19 jobs", &fakeElement{}, &fakeElement{})
	require.NoError(t, s.Scrape(context.Background(), drv, "Toronto"))

	state, err := store.Load("Toronto")
	require.NoError(t, err)
	assert.Equal(t, 2, state.PagesTotal)
	assert.Equal(t, 2, state.PagesScraped)
	assert.Equal(t, 20, state.JobOffset, "offset advances by exactly 10 per page")
	assert.Equal(t, 19, state.TotalJobs)

	// discovery navigation plus one per page
	require.Len(t, drv.navigated, 3)
	assert.Equal(t, "https://ca.indeed.com/jobs?q=&l=Toronto&start=0", drv.navigated[0])
	assert.Equal(t, "https://ca.indeed.com/jobs?q=&l=Toronto&start=0", drv.navigated[1])
	assert.Equal(t, "https://ca.indeed.com/jobs?q=&l=Toronto&start=10", drv.navigated[2])

	assert.Len(t, sink.postings, 4, "two cards on each of two pages")
}

func TestScrapeResumesFromCheckpoint(t *testing.T) {
	sink := &recordingSink{}
	store, err := checkpoint.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save("Toronto", checkpoint.State{PagesScraped: 1, JobOffset: 10}))

	s := New("https://ca.indeed.com/jobs", sink, store, zerolog.Nop()).WithTiming(Timing{})
	drv := resultsPage("19 jobs", &fakeElement{})
	require.NoError(t, s.Scrape(context.Background(), drv, "Toronto"))

	// only the second page remained
	require.Len(t, drv.navigated, 2)
	assert.Equal(t, "https://ca.indeed.com/jobs?q=&l=Toronto&start=10", drv.navigated[1])

	state, err := store.Load("Toronto")
	require.NoError(t, err)
	assert.Equal(t, 2, state.PagesScraped)
	assert.Equal(t, 20, state.JobOffset)
}

func TestScrapeFatalWhenResultsNeverVisible(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := &fakeDriver{page: map[string][]*fakeElement{}}

	err := s.Scrape(context.Background(), drv, "Toronto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never became visible")
}

func TestScrapePageCardFailureDoesNotAbortRemainingCards(t *testing.T) {
	sink := &recordingSink{}
	s := newTestScraper(t, sink)

	broken := &fakeElement{
		scrollErr: errors.New("detached"),
		clickErr:  errors.New("not clickable"),
		hoverErr:  errors.New("not hoverable"),
	}
	healthy := &fakeElement{}
	drv := resultsPage("", broken, healthy)

	appended, err := s.scrapePage(drv, "Toronto")
	require.NoError(t, err)
	assert.Equal(t, 2, appended, "broken card still yields a defaulted record")
	require.Len(t, sink.postings, 2)
	assert.Equal(t, "Full-Time", sink.postings[0].JobType)
}

func TestScrapePagePropagatesSinkError(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	s := newTestScraper(t, sink)
	drv := resultsPage("", &fakeElement{})

	_, err := s.scrapePage(drv, "Toronto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDetailContextAlwaysPaired(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := resultsPage("", &fakeElement{}, &fakeElement{}, &fakeElement{})
	drv.page[detailFrameSelector] = []*fakeElement{{}}
	drv.frame = map[string][]*fakeElement{
		ratingsCountSelector: {{text: "12 reviews"}},
	}

	_, err := s.scrapePage(drv, "Toronto")
	require.NoError(t, err)

	assert.Equal(t, 3, drv.frameEnters)
	assert.Equal(t, 3, drv.frameExits)
	assert.False(t, drv.inFrame, "outer context active after the last card")
}

func TestDetailContextExitUnconditionalWhenEntryFails(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := resultsPage("", &fakeElement{}, &fakeElement{})

	_, err := s.scrapePage(drv, "Toronto")
	require.NoError(t, err)

	assert.Equal(t, 0, drv.frameEnters, "no iframe to enter")
	assert.Equal(t, 2, drv.frameExits, "exit still runs once per card")
	assert.False(t, drv.inFrame)
}

// Documents the current limitation: the sink never deduplicates, so
// re-running over an unchanged resume position appends duplicate records.
func TestReRunWithUnchangedCheckpointDuplicatesRecords(t *testing.T) {
	sink := &recordingSink{}
	store, err := checkpoint.NewStore(t.TempDir())
	require.NoError(t, err)
	s := New("https://ca.indeed.com/jobs", sink, store, zerolog.Nop()).WithTiming(Timing{})

	drv := resultsPage("9 jobs", &fakeElement{})
	require.NoError(t, s.Scrape(context.Background(), drv, "Toronto"))

	// reset the checkpoint to the same starting position and run again
	require.NoError(t, store.Save("Toronto", checkpoint.State{}))
	require.NoError(t, s.Scrape(context.Background(), drv, "Toronto"))

	assert.Len(t, sink.postings, 2, "same offset scraped twice appends twice")
}

func TestScrapeHonorsContextCancellation(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	drv := resultsPage("19 jobs", &fakeElement{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Scrape(ctx, drv, "Toronto")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageURLEscapesQuery(t *testing.T) {
	s := newTestScraper(t, &recordingSink{})
	assert.Equal(t,
		"https://ca.indeed.com/jobs?q=&l=Niagara+Falls&start=30",
		s.pageURL("Niagara Falls", 30),
	)
}
