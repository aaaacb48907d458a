package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-indeed-automation/internal/scraper"
)

const (
	navigationTimeoutMs = 30000
	elementTimeoutMs    = 2000
)

// Session adapts one Playwright page to the scraper.Driver capability
// surface. While frame is set, lookups resolve inside the embedded detail
// frame instead of the outer document.
type Session struct {
	page  playwright.Page
	frame playwright.FrameLocator
}

func NewSession(page playwright.Page) *Session {
	return &Session{page: page}
}

func (s *Session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(navigationTimeoutMs),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	return s.locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *Session) Find(selector string) (scraper.Element, error) {
	loc := s.locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &element{loc: loc.First()}, nil
}

func (s *Session) FindAll(selector string) ([]scraper.Element, error) {
	locs, err := s.locator(selector).All()
	if err != nil {
		return nil, err
	}
	elements := make([]scraper.Element, len(locs))
	for i, loc := range locs {
		elements[i] = &element{loc: loc}
	}
	return elements, nil
}

func (s *Session) EnterFrame(selector string) error {
	count, err := s.page.Locator(selector).Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no frame matches %q", selector)
	}
	s.frame = s.page.FrameLocator(selector)
	return nil
}

func (s *Session) ExitFrame() {
	s.frame = nil
}

func (s *Session) locator(selector string) playwright.Locator {
	if s.frame != nil {
		return s.frame.Locator(selector)
	}
	return s.page.Locator(selector)
}

type element struct {
	loc playwright.Locator
}

func (e *element) Text() (string, error) {
	return e.loc.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(elementTimeoutMs),
	})
}

func (e *element) Attribute(name string) (string, error) {
	return e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(elementTimeoutMs),
	})
}

func (e *element) Click() error {
	return e.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(elementTimeoutMs),
	})
}

func (e *element) Hover() error {
	return e.loc.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(elementTimeoutMs),
	})
}

func (e *element) ScrollIntoView() error {
	return e.loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(elementTimeoutMs),
	})
}

func (e *element) Find(selector string) (scraper.Element, error) {
	nested := e.loc.Locator(selector)
	count, err := nested.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &element{loc: nested.First()}, nil
}

func (e *element) FindAll(selector string) ([]scraper.Element, error) {
	locs, err := e.loc.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	elements := make([]scraper.Element, len(locs))
	for i, loc := range locs {
		elements[i] = &element{loc: loc}
	}
	return elements, nil
}
