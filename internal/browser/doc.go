// Package browser is the thin adapter between the fetch pipeline and a
// driven browser.
//
// Session is the capability surface the pipeline needs: navigation, the
// current location, the open window count, and a handful of element
// operations addressed by DOM id. The go-rod implementation drives a
// Chromium instance with its download directory pointed at the
// configured path. Everything above this package talks to the Session
// interface so the pipeline can be tested against a scripted fake.
package browser
