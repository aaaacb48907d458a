package indeed

import (
	"errors"
	"fmt"
	"time"

	"go-indeed-automation/internal/scraper"
)

// In-memory stand-ins for the Driver/Element capability surface. No live
// browser is involved in unit tests.

var errNotVisible = errors.New("element not visible within timeout")

type fakeElement struct {
	text      string
	textErr   error
	attrs     map[string]string
	clickErr  error
	hoverErr  error
	scrollErr error
	children  map[string][]*fakeElement
}

func (e *fakeElement) Text() (string, error) {
	if e.textErr != nil {
		return "", e.textErr
	}
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	value, ok := e.attrs[name]
	if !ok {
		return "", fmt.Errorf("no attribute %q", name)
	}
	return value, nil
}

func (e *fakeElement) Click() error          { return e.clickErr }
func (e *fakeElement) Hover() error          { return e.hoverErr }
func (e *fakeElement) ScrollIntoView() error { return e.scrollErr }

func (e *fakeElement) Find(selector string) (scraper.Element, error) {
	matches := e.children[selector]
	if len(matches) == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return matches[0], nil
}

func (e *fakeElement) FindAll(selector string) ([]scraper.Element, error) {
	return asElements(e.children[selector]), nil
}

// fakeDriver resolves selectors against the page map, or the frame map while
// inside the detail frame.
type fakeDriver struct {
	page  map[string][]*fakeElement
	frame map[string][]*fakeElement

	inFrame     bool
	frameEnters int
	frameExits  int
	navigated   []string
	navErr      error
}

func (d *fakeDriver) scope() map[string][]*fakeElement {
	if d.inFrame {
		return d.frame
	}
	return d.page
}

func (d *fakeDriver) Navigate(url string) error {
	if d.navErr != nil {
		return d.navErr
	}
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) WaitVisible(selector string, _ time.Duration) error {
	if len(d.scope()[selector]) == 0 {
		return errNotVisible
	}
	return nil
}

func (d *fakeDriver) Find(selector string) (scraper.Element, error) {
	matches := d.scope()[selector]
	if len(matches) == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return matches[0], nil
}

func (d *fakeDriver) FindAll(selector string) ([]scraper.Element, error) {
	return asElements(d.scope()[selector]), nil
}

func (d *fakeDriver) EnterFrame(selector string) error {
	if len(d.page[selector]) == 0 {
		return fmt.Errorf("no frame matches %q", selector)
	}
	d.inFrame = true
	d.frameEnters++
	return nil
}

func (d *fakeDriver) ExitFrame() {
	d.inFrame = false
	d.frameExits++
}

func asElements(matches []*fakeElement) []scraper.Element {
	elements := make([]scraper.Element, len(matches))
	for i, m := range matches {
		elements[i] = m
	}
	return elements
}

// recordingSink captures appended postings in order.
type recordingSink struct {
	queries  []string
	postings []scraper.JobPosting
	err      error
}

func (s *recordingSink) Append(query string, posting scraper.JobPosting) error {
	if s.err != nil {
		return s.err
	}
	s.queries = append(s.queries, query)
	s.postings = append(s.postings, posting)
	return nil
}
