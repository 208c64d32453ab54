// Package logger wraps logrus with context aware helpers.
//
// Every entry carries the request trace id found on the context and the
// build version:
//
//	logger.Infof(ctx, "contact saved: %s", id)
//	logger.WithFields(ctx, logrus.Fields{"recipient": to}).Warn("send failed")
//
// Init configures level, format and output (stdout, stderr or a daily
// rotated file) and installs the desensitize hook. A SentryHook can be added
// once Sentry is initialised.
package logger
