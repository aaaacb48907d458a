// Indeed paginated listing extraction: page navigation with count discovery,
// per-card enumeration, and incremental persistence through the record sink.

package indeed

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"go-indeed-automation/internal/checkpoint"
	"go-indeed-automation/internal/scraper"
)

const (
	// pageStride is how far the start offset moves per results page.
	pageStride = 10

	// defaultPagesTotal applies when neither count indicator can be read.
	defaultPagesTotal = 25
)

// Timing groups every fixed wait of the pipeline. All waits are explicit:
// settle delays are unconditional sleeps, the rest are visibility timeouts.
type Timing struct {
	PageSettle time.Duration
	CardSettle time.Duration

	ResultsWait      time.Duration
	PrimaryCountWait time.Duration
	LegacyCountWait  time.Duration
	CompanyWait      time.Duration
	DateWait         time.Duration
	FrameWait        time.Duration
	RatingsWait      time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		PageSettle:       3 * time.Second,
		CardSettle:       1 * time.Second,
		ResultsWait:      30 * time.Second,
		PrimaryCountWait: 30 * time.Second,
		LegacyCountWait:  5 * time.Second,
		CompanyWait:      10 * time.Second,
		DateWait:         3 * time.Second,
		FrameWait:        5 * time.Second,
		RatingsWait:      3 * time.Second,
	}
}

type Scraper struct {
	baseURL     string
	sink        scraper.RecordSink
	checkpoints *checkpoint.Store
	timing      Timing
	log         zerolog.Logger
}

func New(baseURL string, sink scraper.RecordSink, checkpoints *checkpoint.Store, log zerolog.Logger) *Scraper {
	return &Scraper{
		baseURL:     baseURL,
		sink:        sink,
		checkpoints: checkpoints,
		timing:      DefaultTiming(),
		log:         log,
	}
}

func (s *Scraper) Name() string {
	return "Indeed"
}

// WithTiming replaces the default waits.
func (s *Scraper) WithTiming(t Timing) *Scraper {
	s.timing = t
	return s
}

// Scrape runs one query to completion: discovers the total page count, then
// walks the result pages from the persisted checkpoint, appending every card
// to the sink. A page whose results container never becomes visible aborts
// the query; everything below page level is best-effort.
func (s *Scraper) Scrape(ctx context.Context, drv scraper.Driver, query string) error {
	state, err := s.checkpoints.Load(query)
	if err != nil {
		return err
	}

	firstPage := s.pageURL(query, 0)
	s.log.Info().Str("query", query).Str("url", firstPage).Msg("requesting search results")
	if err := drv.Navigate(firstPage); err != nil {
		return fmt.Errorf("navigate to results for %q: %w", query, err)
	}
	if err := drv.WaitVisible(resultsListSelector, s.timing.ResultsWait); err != nil {
		return fmt.Errorf("results never became visible for %q: %w", query, err)
	}

	s.discoverPageCount(drv, &state)

	jobsScraped := 0
	for state.PagesScraped < state.PagesTotal {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := drv.Navigate(s.pageURL(query, state.JobOffset)); err != nil {
			return fmt.Errorf("navigate to offset %d for %q: %w", state.JobOffset, query, err)
		}
		time.Sleep(s.timing.PageSettle)
		if err := drv.WaitVisible(resultsListSelector, s.timing.ResultsWait); err != nil {
			return fmt.Errorf("results never became visible at offset %d for %q: %w", state.JobOffset, query, err)
		}

		appended, err := s.scrapePage(drv, query)
		if err != nil {
			return err
		}
		jobsScraped += appended

		state.JobOffset += pageStride
		state.PagesScraped++
		if err := s.checkpoints.Save(query, state); err != nil {
			return err
		}

		s.log.Info().
			Str("query", query).
			Int("pages_scraped", state.PagesScraped).
			Int("pages_total", state.PagesTotal).
			Int("jobs_scraped", jobsScraped).
			Int("jobs_total", state.TotalJobs).
			Msg("page complete")
	}
	return nil
}

// discoverPageCount fills TotalJobs and PagesTotal. Two-tier fallback: the
// current count pane, then the legacy count element, then a fixed default.
func (s *Scraper) discoverPageCount(drv scraper.Driver, state *checkpoint.State) {
	probes := []struct {
		selector string
		wait     time.Duration
	}{
		{jobCountSelector, s.timing.PrimaryCountWait},
		{legacyJobCountSelector, s.timing.LegacyCountWait},
	}

	for _, probe := range probes {
		if err := drv.WaitVisible(probe.selector, probe.wait); err != nil {
			continue
		}
		el, err := drv.Find(probe.selector)
		if err != nil {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		total, err := parseTotalJobs(text)
		if err != nil {
			continue
		}

		state.TotalJobs = total
		state.PagesTotal = int(math.Round(float64(total) / float64(pageStride)))
		s.log.Info().
			Int("total_jobs", state.TotalJobs).
			Int("pages_total", state.PagesTotal).
			Msg("job count discovered")
		return
	}

	state.PagesTotal = defaultPagesTotal
	s.log.Warn().
		Int("pages_total", defaultPagesTotal).
		Msg("job count not found, using default page count")
}

// scrapePage walks the cards of the current page in DOM order. A failing
// card never aborts the rest; sink errors do.
func (s *Scraper) scrapePage(drv scraper.Driver, query string) (int, error) {
	list, err := drv.Find(resultsListSelector)
	if err != nil {
		return 0, fmt.Errorf("results list missing for %q: %w", query, err)
	}
	cards, err := list.FindAll(jobCardSelector)
	if err != nil {
		return 0, fmt.Errorf("job cards missing for %q: %w", query, err)
	}

	appended := 0
	for i, card := range cards {
		if err := card.ScrollIntoView(); err != nil {
			s.log.Debug().Int("card", i+1).Err(err).Msg("scroll into view failed")
		}
		time.Sleep(s.timing.CardSettle)

		s.selectCard(card, i)
		posting := s.extractPosting(drv, card, i)

		if err := s.sink.Append(query, posting); err != nil {
			return appended, fmt.Errorf("append record for %q: %w", query, err)
		}
		appended++
	}
	return appended, nil
}

// selectCard puts the card into its selected state so the detail panel loads.
// The click target is unreliable across postings: both the hover+click and
// the plain click get a two-tier attempt (card root, then the nested card
// element). Total failure is tolerated, the list view still carries most
// fields.
func (s *Scraper) selectCard(card scraper.Element, index int) {
	selected := false
	if err := hoverClick(card); err == nil {
		selected = true
	} else if nested, findErr := card.Find(jobCardSelector); findErr == nil {
		if err := hoverClick(nested); err == nil {
			selected = true
		}
	}

	if err := card.Click(); err != nil {
		if nested, findErr := card.Find(jobCardSelector); findErr == nil {
			if err := nested.Click(); err == nil {
				selected = true
			}
		}
	} else {
		selected = true
	}

	if !selected {
		s.log.Debug().Int("card", index+1).Msg("card selection not confirmed")
	}
}

func hoverClick(el scraper.Element) error {
	if err := el.Hover(); err != nil {
		return err
	}
	return el.Click()
}

func (s *Scraper) pageURL(query string, offset int) string {
	return fmt.Sprintf("%s?q=&l=%s&start=%d", s.baseURL, url.QueryEscape(query), offset)
}

var digitsPattern = regexp.MustCompile(`\d+`)

// parseTotalJobs pulls the job total out of a count-pane text such as
// "1,234 jobs Page 1 of". Thousands separators and the surrounding prose are
// stripped before the first integer token is taken.
func parseTotalJobs(text string) (int, error) {
	cleaned := strings.NewReplacer(",", "", "Page 1 of", "", "jobs", "").Replace(text)
	match := digitsPattern.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("no job count in %q", text)
	}
	return strconv.Atoi(match)
}
