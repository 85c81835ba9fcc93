// Copyright 2023 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger provides the table engine coordinator's structured,
// leveled logging, built on log/slog with file rotation via lumberjack.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/opencolumndb/tableengine/cfg"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// loggerFactory tracks the state needed to rebuild the default logger when
// the format or destination changes at runtime.
type loggerFactory struct {
	file            *lumberjack.Logger
	sysWriter       *os.File
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
	programLevel    *slog.LevelVar
}

func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, programLevel *slog.LevelVar, prefix string) slog.Handler {
	return newSeverityHandler(w, programLevel, f.format == "json", prefix)
}

var defaultLoggerFactory = &loggerFactory{
	sysWriter:       os.Stderr,
	format:          "json",
	level:           cfg.INFO,
	logRotateConfig: cfg.LogRotateLoggingConfig{MaxFileSizeMb: cfg.DefaultLogRotateMaxSizeMb, BackupFileCount: cfg.DefaultLogRotateBackupCount, Compress: true},
	programLevel:    new(slog.LevelVar),
}

var defaultLogger = slog.New(
	defaultLoggerFactory.createJsonOrTextHandler(os.Stderr, defaultLoggerFactory.programLevel, ""),
)

func init() {
	setLoggingLevel(defaultLoggerFactory.level, defaultLoggerFactory.programLevel)
}

// InitLogFile (re)configures the default logger from a cfg.LoggingConfig:
// severity, format, and, if FilePath is set, a lumberjack-rotated log file
// in place of stderr.
func InitLogFile(config cfg.LoggingConfig) error {
	factory := &loggerFactory{
		format:          config.Format,
		level:           string(config.Severity),
		logRotateConfig: config.LogRotate,
		programLevel:    new(slog.LevelVar),
	}
	if factory.format == "" {
		factory.format = "json"
	}

	var out io.Writer
	if config.FilePath != "" {
		factory.file = &lumberjack.Logger{
			Filename:   string(config.FilePath),
			MaxSize:    factory.logRotateConfig.MaxFileSizeMb,
			MaxBackups: factory.logRotateConfig.BackupFileCount,
			Compress:   factory.logRotateConfig.Compress,
		}
		out = factory.file
	} else {
		factory.sysWriter = os.Stderr
		out = os.Stderr
	}

	setLoggingLevel(factory.level, factory.programLevel)
	defaultLoggerFactory = factory
	defaultLogger = slog.New(factory.createJsonOrTextHandler(out, factory.programLevel, ""))
	return nil
}

// SetLogFormat rebuilds the default logger with a new output format
// ("text" or "json"; empty is treated as "json").
func SetLogFormat(format string) {
	defaultLoggerFactory.format = format
	if defaultLoggerFactory.format == "" {
		defaultLoggerFactory.format = "json"
	}

	var out io.Writer
	switch {
	case defaultLoggerFactory.file != nil:
		out = defaultLoggerFactory.file
	case defaultLoggerFactory.sysWriter != nil:
		out = defaultLoggerFactory.sysWriter
	default:
		out = os.Stderr
	}

	defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(out, defaultLoggerFactory.programLevel, ""))
}

func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelDebug, fmt.Sprintf(format, v...))
}

func Infof(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelInfo, fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelWarn, fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelError, fmt.Sprintf(format, v...))
}
