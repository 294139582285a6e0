package monitoring

import (
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting when a DSN is configured; with an empty
// DSN the server runs without it.
func InitSentry(dsn string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: os.Getenv("APP_ENV"),
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

func CaptureError(err error, context map[string]interface{}) {
	if hub := sentry.CurrentHub(); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
