// Package logging builds the slog loggers used across bricksort and provides
// typed attribute helpers so call sites stay terse and consistent.
//
// Components receive a *slog.Logger and wrap it with NewComponentLogger so
// every record carries a component attribute. Console output is the default;
// JSON is available for machine consumption.
package logging
