package integration_test

import (
	"io"
	"log/slog"

	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/app"
	"github.com/metinatakli/cinebook/internal/catalog"
	"github.com/metinatakli/cinebook/internal/mailer"
	appvalidator "github.com/metinatakli/cinebook/internal/validator"
)

type TestApp struct {
	App    *app.Application
	Mailer *mailer.MockMailer
	close  func()
}

// newTestApp wires an application on the Redis session store, the way
// app.Run does, with a mock mailer.
func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockMailer := mailer.NewMockMailer()

	spec, err := api.LoadSpec()
	if err != nil {
		return nil, err
	}

	sessionManager, closeStore, err := app.NewSessionManager(cfg)
	if err != nil {
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		app.NewMachine(cfg, catalog.Default()),
		appvalidator.NewValidator(),
		mockMailer,
		sessionManager,
		spec,
	)

	return &TestApp{
		App:    application,
		Mailer: mockMailer,
		close:  closeStore,
	}, nil
}

func (a *TestApp) Close() {
	a.close()
}
