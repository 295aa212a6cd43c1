package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"higalfetch/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := services.Wrap(services.ErrTimeout, "download", "wait for control", "mapDownload never appeared", cause)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	for _, want := range []string{"download", "wait for control", "mapDownload"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("message %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsRecoverable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"timeout", services.Wrap(services.ErrTimeout, "gate", "settle", "", nil), true},
		{"validation", services.Wrap(services.ErrValidation, "form", "radius", "", nil), false},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "", nil), false},
		{"not found", services.Wrap(services.ErrNotFound, "download", "band", "", nil), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.IsRecoverable(tc.err); got != tc.want {
				t.Fatalf("IsRecoverable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-1")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-1" {
		t.Fatalf("got %q %v", id, ok)
	}
	if _, ok := services.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id on fresh context")
	}
}
