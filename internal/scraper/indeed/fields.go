// Field extraction: each field is an ordered list of strategies, evaluated
// first-success-wins, falling back to the field's documented default. No
// error from a strategy ever escapes the chain.

package indeed

import (
	"fmt"
	"strings"

	"go-indeed-automation/internal/scraper"
)

// strategy resolves one candidate value for a field.
type strategy func() (string, error)

// firstOf returns the result of the first strategy that does not fail, else
// def. An empty string from a successful strategy counts as success.
func firstOf(def string, strategies ...strategy) string {
	for _, strat := range strategies {
		value, err := strat()
		if err != nil {
			continue
		}
		return value
	}
	return def
}

// extractPosting resolves every field of the card at index. Title, link,
// salary, location, job type and date are read from page-scoped indexed
// selectors; the company name is scoped to the card itself. A miss leaves
// the field at its default and never touches the other fields.
func (s *Scraper) extractPosting(drv scraper.Driver, card scraper.Element, index int) scraper.JobPosting {
	var posting scraper.JobPosting

	posting.JobTitle = firstOf("", func() (string, error) {
		return indexedText(drv, jobTitleSelector, index)
	})

	posting.ListingURL = firstOf("", func() (string, error) {
		return indexedAttribute(drv, jobTitleSelector, index, "href")
	})

	posting.Salary = firstOf("", func() (string, error) {
		text, err := indexedText(drv, salarySelector, index)
		if err != nil {
			return "", err
		}
		return collapse(text), nil
	})

	posting.Location = firstOf("", func() (string, error) {
		text, err := indexedText(drv, locationSelector, index)
		if err != nil {
			return "", err
		}
		return collapse(text), nil
	})

	posting.JobType = firstOf(scraper.DefaultJobType, func() (string, error) {
		text, err := indexedText(drv, metadataSelector, index)
		if err != nil {
			return "", err
		}
		return normalizeJobType(text), nil
	})

	posting.DatePosted = firstOf(scraper.DefaultDatePosted, func() (string, error) {
		if err := drv.WaitVisible(dateSelector, s.timing.DateWait); err != nil {
			return "", err
		}
		text, err := indexedText(drv, dateSelector, index)
		if err != nil {
			return "", err
		}
		return normalizeDatePosted(text), nil
	})

	posting.CompanyName = firstOf("", func() (string, error) {
		if err := drv.WaitVisible(companyNameSelector, s.timing.CompanyWait); err != nil {
			return "", err
		}
		el, err := card.Find(companyNameSelector)
		if err != nil {
			return "", err
		}
		return el.Text()
	})

	// The job URL aliases the listing URL: no independent source element is
	// ever read for it.
	posting.JobURL = posting.ListingURL

	posting.ReviewsText = s.extractReviews(drv)
	return posting
}

func indexedText(drv scraper.Driver, selector string, index int) (string, error) {
	els, err := drv.FindAll(selector)
	if err != nil {
		return "", err
	}
	if index >= len(els) {
		return "", fmt.Errorf("no element at index %d for %q", index, selector)
	}
	return els[index].Text()
}

func indexedAttribute(drv scraper.Driver, selector string, index int, name string) (string, error) {
	els, err := drv.FindAll(selector)
	if err != nil {
		return "", err
	}
	if index >= len(els) {
		return "", fmt.Errorf("no element at index %d for %q", index, selector)
	}
	return els[index].Attribute(name)
}

// collapse trims and folds internal newlines into single spaces.
func collapse(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(text), "\n", " "))
}

func normalizeJobType(text string) string {
	cleaned := strings.NewReplacer(":", "", "Job type", "").Replace(collapse(text))
	return strings.TrimSpace(cleaned)
}

func normalizeDatePosted(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(collapse(text), "Posted", ""))
}
