package browser

import "context"

// Session models the single browser session driving the request form.
// Implementations must be safe for sequential use from one goroutine;
// the pipeline never issues concurrent calls.
type Session interface {
	// Navigate loads url in the session's page and waits for the load
	// event.
	Navigate(ctx context.Context, url string) error
	// CurrentURL reports the page's current location.
	CurrentURL(ctx context.Context) (string, error)
	// WindowCount reports the number of open windows and tabs,
	// including the driven page itself.
	WindowCount(ctx context.Context) (int, error)
	// HasElement reports whether an element with the DOM id exists,
	// without waiting for it to appear.
	HasElement(ctx context.Context, id string) (bool, error)
	// Click activates the element with the DOM id.
	Click(ctx context.Context, id string) error
	// ClickXPath activates the first element matching the XPath
	// expression.
	ClickXPath(ctx context.Context, xpath string) error
	// Fill clears the input with the DOM id and types value into it.
	Fill(ctx context.Context, id, value string) error
	// ClickSibling resolves the element with anchorID, walks to its
	// parent, and activates the child with controlID. The result page
	// nests its per-band download controls this way.
	ClickSibling(ctx context.Context, anchorID, controlID string) error
	// Close tears down the session and the browser it drives.
	Close() error
}
