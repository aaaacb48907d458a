// Detail panel context: some postings render their extended detail inside an
// embedded iframe. Entry is optional, exit is not.

package indeed

import (
	"go-indeed-automation/internal/scraper"
)

// extractReviews reads the ratings count from the detail context. Entry and
// exit are always paired around the read.
func (s *Scraper) extractReviews(drv scraper.Driver) string {
	s.enterDetail(drv)
	defer s.exitDetail(drv)

	return firstOf(scraper.DefaultReviews, func() (string, error) {
		if err := drv.WaitVisible(ratingsCountSelector, s.timing.RatingsWait); err != nil {
			return "", err
		}
		el, err := drv.Find(ratingsCountSelector)
		if err != nil {
			return "", err
		}
		return el.Text()
	})
}

// enterDetail switches the session into the embedded detail frame when one
// exists. Absence is not an error, some postings render everything in the
// outer document.
func (s *Scraper) enterDetail(drv scraper.Driver) {
	if err := drv.WaitVisible(detailFrameSelector, s.timing.FrameWait); err != nil {
		s.log.Debug().Msg("detail iframe not found")
		return
	}
	if err := drv.EnterFrame(detailFrameSelector); err != nil {
		s.log.Debug().Err(err).Msg("could not switch into detail iframe")
	}
}

// exitDetail restores the outer document. Never skipped, even when entry
// failed: every card starts and ends extraction in the outer context.
func (s *Scraper) exitDetail(drv scraper.Driver) {
	drv.ExitFrame()
}
