package logging

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

// newSentryHook forwards error, fatal and panic entries to the given sentry client.
func newSentryHook(client *sentry.Client, tags map[string]string) *sentrylogrus.Hook {
	hook := sentrylogrus.NewFromClient(sentryLevels, client)
	if len(tags) > 0 {
		hook.AddTags(tags)
	}
	return hook
}

// addSentryHook registers the hook on the standard logger. Fatal entries exit
// right after the hooks run, so buffered events are flushed in an exit handler.
func addSentryHook(hook *sentrylogrus.Hook) {
	logrus.AddHook(hook)
	logrus.RegisterExitHandler(func() {
		hook.Flush(sentryFlushTimeout)
	})
}
