package wiring

import (
	"time"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/formspree"
	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// AppServices is everything a host needs to mount rating dialogs.
type AppServices struct {
	Config    *config.WidgetConfig
	Logger    *zap.Logger
	Submitter rating.Submitter
	// DialogOptions carry studio name, locale, copy, clock and logger.
	DialogOptions []application.DialogOption
}

// BuildAppServices wires a Formspree submitter and dialog options from cfg.
func BuildAppServices(cfg *config.WidgetConfig, logger *zap.Logger) (*AppServices, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	submitter := formspree.NewClient(cfg.Endpoint, formspree.WithLogger(logger))
	return BuildAppServicesWithSubmitter(cfg, logger, submitter)
}

// BuildAppServicesWithSubmitter lets callers supply their own submitter.
func BuildAppServicesWithSubmitter(cfg *config.WidgetConfig, logger *zap.Logger, submitter rating.Submitter) (*AppServices, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &AppServices{
		Config:    cfg,
		Logger:    logger,
		Submitter: submitter,
		DialogOptions: []application.DialogOption{
			application.WithStudioName(cfg.StudioName),
			application.WithLocale(cfg.Locale),
			application.WithCopy(cfg.DialogCopy()),
			application.WithLogger(logger),
			application.WithClock(func() time.Time { return time.Now().In(loc) }),
		},
	}, nil
}

// NewDialog mounts a RatingDialog on handle with the wired options followed
// by extra.
func (s *AppServices) NewDialog(handle rating.Handle, extra ...application.DialogOption) (*application.RatingDialog, error) {
	opts := make([]application.DialogOption, 0, len(s.DialogOptions)+len(extra))
	opts = append(opts, s.DialogOptions...)
	opts = append(opts, extra...)
	return application.NewRatingDialog(handle, s.Submitter, opts...)
}
