// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider is the sink for decoder tracing at Critical, Error, Warn and
// Debug levels. Category handlers and the packet dispatcher each hold a
// Clog, which forwards to a LogProvider only while logging is enabled, to
// trace malformed blocks/records.
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Clog is an internal debugging sink: a pluggable LogProvider behind an
// atomic on/off switch, so callers that never enable it pay only the cost
// of a bool load.
type Clog struct {
	provider LogProvider
	enabled  atomic.Bool
}

// NewLogger creates a Clog using the default stdlib-backed provider,
// prefixed with prefix.
func NewLogger(prefix string) Clog {
	return Clog{
		provider: defaultLogger{log.New(os.Stdout, prefix, log.LstdFlags)},
	}
}

// LogMode enables or disables log output.
func (sf *Clog) LogMode(enable bool) {
	sf.enabled.Store(enable)
}

// SetLogProvider installs a custom sink, e.g. to route through a host
// service's structured logger.
func (sf *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

// Critical logs a CRITICAL level message.
func (sf *Clog) Critical(format string, v ...interface{}) {
	if sf.enabled.Load() && sf.provider != nil {
		sf.provider.Critical(format, v...)
	}
}

// Error logs an ERROR level message.
func (sf *Clog) Error(format string, v ...interface{}) {
	if sf.enabled.Load() && sf.provider != nil {
		sf.provider.Error(format, v...)
	}
}

// Warn logs a WARN level message.
func (sf *Clog) Warn(format string, v ...interface{}) {
	if sf.enabled.Load() && sf.provider != nil {
		sf.provider.Warn(format, v...)
	}
}

// Debug logs a DEBUG level message.
func (sf *Clog) Debug(format string, v ...interface{}) {
	if sf.enabled.Load() && sf.provider != nil {
		sf.provider.Debug(format, v...)
	}
}

// default log
type defaultLogger struct {
	*log.Logger
}

var _ LogProvider = (*defaultLogger)(nil)

// Critical Log CRITICAL level message.
func (sf defaultLogger) Critical(format string, v ...interface{}) {
	sf.Printf("[C]: "+format, v...)
}

// Error Log ERROR level message.
func (sf defaultLogger) Error(format string, v ...interface{}) {
	sf.Printf("[E]: "+format, v...)
}

// Warn Log WARN level message.
func (sf defaultLogger) Warn(format string, v ...interface{}) {
	sf.Printf("[W]: "+format, v...)
}

// Debug Log DEBUG level message.
func (sf defaultLogger) Debug(format string, v ...interface{}) {
	sf.Printf("[D]: "+format, v...)
}
