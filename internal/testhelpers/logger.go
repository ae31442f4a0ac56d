// Package testhelpers provides shared database and logging fixtures for tests.
package testhelpers

import "go.uber.org/zap"

// Logger returns a development Zap logger for use in tests.
// Panics on construction failure (should never happen in tests).
func Logger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("testhelpers.Logger: " + err.Error())
	}
	return l
}
