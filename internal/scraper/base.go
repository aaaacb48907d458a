// Capability surface shared by every scraper.
// The pipeline only talks to the browser through Driver/Element, so the
// concrete automation technology stays swappable.

package scraper

import (
	"context"
	"time"
)

// JobPosting is one normalized posting. Written by value to the sink,
// immutable once written.
type JobPosting struct {
	JobTitle    string
	CompanyName string
	Location    string
	Salary      string
	JobType     string
	DatePosted  string
	ReviewsText string
	JobURL      string
	ListingURL  string
}

// Sentinel defaults for fields the page may not carry.
const (
	DefaultJobType    = "Full-Time"
	DefaultDatePosted = "Today"
	DefaultReviews    = "Reviews Not Found"
)

// Element is one rendered DOM node.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	Click() error
	Hover() error
	ScrollIntoView() error

	// Find and FindAll are scoped to this element.
	Find(selector string) (Element, error)
	FindAll(selector string) ([]Element, error)
}

// Driver is one browser session. Find/FindAll/WaitVisible are scoped to the
// current document context: the outer page by default, the embedded detail
// frame between EnterFrame and ExitFrame.
type Driver interface {
	Navigate(url string) error
	WaitVisible(selector string, timeout time.Duration) error
	Find(selector string) (Element, error)
	FindAll(selector string) ([]Element, error)

	// EnterFrame switches the document context into the frame matched by
	// selector. ExitFrame unconditionally restores the outer document and
	// never fails.
	EnterFrame(selector string) error
	ExitFrame()
}

// RecordSink appends one posting to a query's durable store.
type RecordSink interface {
	Append(query string, posting JobPosting) error
}

// Scraper drives one query to completion on one browser session.
type Scraper interface {
	Scrape(ctx context.Context, drv Driver, query string) error
	Name() string
}
