package testsupport

import (
	"context"
	"fmt"
	"sync"

	"higalfetch/internal/browser"
)

// FakeSession is a scripted browser.Session for pipeline tests. All
// methods are safe for concurrent use so tests can mutate page state
// from a simulated-writer goroutine while the pipeline polls.
type FakeSession struct {
	mu            sync.Mutex
	url           string
	windows       int
	elements      map[string]bool
	filled        map[string]string
	clicks        []string
	xpathClicks   []string
	siblingClicks []string
	clickErrs     map[string]error
	siblingErrs   map[string]error
	navigateErr   error
	closed        bool
}

var _ browser.Session = (*FakeSession)(nil)

// NewFakeSession returns a session showing a blank page with one window.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		url:         "about:blank",
		windows:     1,
		elements:    make(map[string]bool),
		filled:      make(map[string]string),
		clickErrs:   make(map[string]error),
		siblingErrs: make(map[string]error),
	}
}

// SetURL updates the page location observed by CurrentURL.
func (s *FakeSession) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
}

// SetWindows updates the open window count.
func (s *FakeSession) SetWindows(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = n
}

// AddElement marks a DOM id as present.
func (s *FakeSession) AddElement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[id] = true
}

// RemoveElement marks a DOM id as absent.
func (s *FakeSession) RemoveElement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, id)
}

// FailClick makes Click on id return err.
func (s *FakeSession) FailClick(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickErrs[id] = err
}

// FailSibling makes ClickSibling on anchorID return err.
func (s *FakeSession) FailSibling(anchorID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.siblingErrs[anchorID] = err
}

// FailNavigate makes Navigate return err.
func (s *FakeSession) FailNavigate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateErr = err
}

// Filled returns the last value typed into id.
func (s *FakeSession) Filled(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filled[id]
}

// Clicks returns the ids activated via Click, in order.
func (s *FakeSession) Clicks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.clicks...)
}

// XPathClicks returns the expressions activated via ClickXPath, in order.
func (s *FakeSession) XPathClicks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.xpathClicks...)
}

// SiblingClicks returns "anchor->control" pairs, in order.
func (s *FakeSession) SiblingClicks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.siblingClicks...)
}

// Closed reports whether Close was called.
func (s *FakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *FakeSession) Navigate(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navigateErr != nil {
		return s.navigateErr
	}
	s.url = url
	return nil
}

func (s *FakeSession) CurrentURL(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *FakeSession) WindowCount(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windows, nil
}

func (s *FakeSession) HasElement(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elements[id], nil
}

func (s *FakeSession) Click(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clickErrs[id]; err != nil {
		return err
	}
	if !s.elements[id] {
		return fmt.Errorf("no element with id %s", id)
	}
	s.clicks = append(s.clicks, id)
	return nil
}

func (s *FakeSession) ClickXPath(_ context.Context, xpath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xpathClicks = append(s.xpathClicks, xpath)
	return nil
}

func (s *FakeSession) Fill(_ context.Context, id, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.elements[id] {
		return fmt.Errorf("no element with id %s", id)
	}
	s.filled[id] = value
	return nil
}

func (s *FakeSession) ClickSibling(_ context.Context, anchorID, controlID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.siblingErrs[anchorID]; err != nil {
		return err
	}
	if !s.elements[anchorID] {
		return fmt.Errorf("no element with id %s", anchorID)
	}
	s.siblingClicks = append(s.siblingClicks, anchorID+"->"+controlID)
	return nil
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
