package requestform

import (
	"context"
	"log/slog"

	"higalfetch/internal/browser"
	"higalfetch/internal/logging"
	"higalfetch/internal/services"
	"higalfetch/internal/survey"
)

// DOM identifiers of the DR1 search form.
const (
	FrameGalacticControl = "coordsTypeLB"
	FrameFK5Control      = "coordsTypeRADEC"
	CoordinateInput      = "coordobjc"
	RadiusInput          = "radiusInput"

	// The search button carries no id; the form's table layout is the
	// only stable way to address it.
	submitXPath = "//div[2]/form/table/tbody/tr[4]/td/input"
)

// ControlForFrame maps a coordinate frame to its checkbox id.
func ControlForFrame(frame survey.Frame) (string, error) {
	switch frame {
	case survey.FrameGalactic:
		return FrameGalacticControl, nil
	case survey.FrameFK5:
		return FrameFK5Control, nil
	default:
		return "", services.Wrap(services.ErrValidation, "requestform", "frame control", "unsupported frame "+string(frame), nil)
	}
}

// Form fills and submits the DR1 search form.
type Form struct {
	sess   browser.Session
	url    string
	logger *slog.Logger
}

// New constructs a form adapter over an open session.
func New(sess browser.Session, url string, logger *slog.Logger) *Form {
	return &Form{sess: sess, url: url, logger: logging.WithComponent(logger, "requestform")}
}

// Open navigates the session to the form.
func (f *Form) Open(ctx context.Context) error {
	f.logger.Info("loading request form", logging.String("url", f.url))
	if err := f.sess.Navigate(ctx, f.url); err != nil {
		return services.Wrap(services.ErrNavigation, "requestform", "open", "load "+f.url, err)
	}
	return nil
}

// Fill selects the coordinate frame and enters the center and radius.
func (f *Form) Fill(ctx context.Context, req survey.SearchRequest) error {
	control, err := ControlForFrame(req.Center.Frame)
	if err != nil {
		return err
	}
	f.logger.Info("setting coordinate frame", logging.String("frame", string(req.Center.Frame)))
	if err := f.sess.Click(ctx, control); err != nil {
		return services.Wrap(services.ErrExternalTool, "requestform", "select frame", "click "+control, err)
	}

	coords := req.Center.String()
	f.logger.Info("setting coordinates", logging.String("coordinates", coords))
	if err := f.sess.Fill(ctx, CoordinateInput, coords); err != nil {
		return services.Wrap(services.ErrExternalTool, "requestform", "input coordinates", "fill "+CoordinateInput, err)
	}

	f.logger.Info("setting radius", logging.Float64("radius_arcmin", req.Radius.Arcmin()))
	if err := f.sess.Fill(ctx, RadiusInput, req.Radius.String()); err != nil {
		return services.Wrap(services.ErrExternalTool, "requestform", "input radius", "fill "+RadiusInput, err)
	}
	return nil
}

// Submit activates the search button.
func (f *Form) Submit(ctx context.Context) error {
	f.logger.Info("submitting the search")
	if err := f.sess.ClickXPath(ctx, submitXPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "requestform", "submit", "click search button", err)
	}
	return nil
}
