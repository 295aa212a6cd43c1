package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options configures a rod-backed session.
type Options struct {
	// DownloadDir receives files the browser downloads.
	DownloadDir string
	// Binary optionally pins the browser executable; empty means
	// auto-detect (system browser first, managed download second).
	Binary string
	Headless bool
}

// RodSession drives a Chromium instance through go-rod.
type RodSession struct {
	browser *rod.Browser
	page    *rod.Page
}

var _ Session = (*RodSession)(nil)

// NewRodSession launches a browser and prepares a blank page whose
// downloads land in opts.DownloadDir.
func NewRodSession(opts Options) (*RodSession, error) {
	l := launcher.New().Headless(opts.Headless)
	if opts.Binary != "" {
		l = l.Bin(opts.Binary)
	} else if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	if opts.DownloadDir != "" {
		err := proto.BrowserSetDownloadBehavior{
			Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
			DownloadPath: opts.DownloadDir,
		}.Call(b)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("set download directory: %w", err)
		}
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &RodSession{browser: b, page: page}, nil
}

func (s *RodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return nil
}

func (s *RodSession) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (s *RodSession) WindowCount(ctx context.Context) (int, error) {
	pages, err := s.browser.Context(ctx).Pages()
	if err != nil {
		return 0, fmt.Errorf("list pages: %w", err)
	}
	return len(pages), nil
}

func (s *RodSession) HasElement(ctx context.Context, id string) (bool, error) {
	has, _, err := s.page.Context(ctx).Has("#" + id)
	if err != nil {
		return false, fmt.Errorf("query #%s: %w", id, err)
	}
	return has, nil
}

func (s *RodSession) Click(ctx context.Context, id string) error {
	el, err := s.element(ctx, id)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click #%s: %w", id, err)
	}
	return nil
}

func (s *RodSession) ClickXPath(ctx context.Context, xpath string) error {
	has, el, err := s.page.Context(ctx).HasX(xpath)
	if err != nil {
		return fmt.Errorf("query xpath %s: %w", xpath, err)
	}
	if !has {
		return fmt.Errorf("no element matches xpath %s", xpath)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click xpath %s: %w", xpath, err)
	}
	return nil
}

func (s *RodSession) Fill(ctx context.Context, id, value string) error {
	el, err := s.element(ctx, id)
	if err != nil {
		return err
	}
	// Clear any prefilled value before typing.
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text in #%s: %w", id, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("fill #%s: %w", id, err)
	}
	return nil
}

func (s *RodSession) ClickSibling(ctx context.Context, anchorID, controlID string) error {
	anchor, err := s.element(ctx, anchorID)
	if err != nil {
		return err
	}
	parent, err := anchor.Parent()
	if err != nil {
		return fmt.Errorf("parent of #%s: %w", anchorID, err)
	}
	has, control, err := parent.Has("#" + controlID)
	if err != nil {
		return fmt.Errorf("query #%s under #%s: %w", controlID, anchorID, err)
	}
	if !has {
		return fmt.Errorf("no #%s control next to #%s", controlID, anchorID)
	}
	if err := control.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click #%s for #%s: %w", controlID, anchorID, err)
	}
	return nil
}

func (s *RodSession) Close() error {
	return s.browser.Close()
}

func (s *RodSession) element(ctx context.Context, id string) (*rod.Element, error) {
	has, el, err := s.page.Context(ctx).Has("#" + id)
	if err != nil {
		return nil, fmt.Errorf("query #%s: %w", id, err)
	}
	if !has {
		return nil, fmt.Errorf("no element with id %s", id)
	}
	return el, nil
}
