// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	shapeIndent = 4  // spaces to indent shape entries
	shapeWidth  = 30 // Base width for shape name
	countWidth  = 8  // Width for replacement count
)

// 🎯 ShapeOperation represents replacements inside one shape for logging
type ShapeOperation struct {
	Slide        int    // 1-based slide index
	Shape        string // Shape name
	Paragraphs   int    // Paragraphs searched
	Replacements int    // Number of replacements made
	Skipped      bool   // Whether the shape was filtered out of scope
}

// 📦 PassOperation represents one replacement pass for logging
type PassOperation struct {
	Pattern string // Search pattern
	Scope   string // Scope description
	Deck    string // Deck file path
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *PassOperation
	operations []ShapeOperation
}

// 🏭 New creates a new logger. Structured records go to stderr so they
// never interleave with the console lines on the given writer.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatShapeOperation formats a shape operation for display
func (l *Logger) formatShapeOperation(op ShapeOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Skipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.Replacements > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var countColor color.Attribute
	if op.Replacements > 0 {
		countColor = color.FgGreen
	} else {
		countColor = color.Faint
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", shapeIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", shapeWidth, op.Shape),
		color.New(countColor).Sprint(fmt.Sprintf("%-*d", countWidth, op.Replacements)))
}

// 📝 LogShapeOperation logs a shape operation
func (l *Logger) LogShapeOperation(ctx context.Context, op ShapeOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatShapeOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Int("slide", op.Slide).
		Str("shape", op.Shape).
		Int("paragraphs", op.Paragraphs).
		Int("replacements", op.Replacements).
		Bool("skipped", op.Skipped).
		Msg("shape operation")
}

// 📝 StartPassOperation starts a new replacement pass
func (l *Logger) StartPassOperation(ctx context.Context, op PassOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print pass header
	fmt.Fprintf(l.console, "[replacing in %s]\n",
		color.New(color.FgCyan).Sprint(op.Deck))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Pattern),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Scope))

	// Log to zerolog
	l.zlog.Info().
		Str("pattern", op.Pattern).
		Str("scope", op.Scope).
		Str("deck", op.Deck).
		Msg("starting replacement pass")
}

// 📝 EndPassOperation ends the current replacement pass
func (l *Logger) EndPassOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("pattern", l.currentOp.Pattern).
		Int("shapes", len(l.operations)).
		Msg("replacement pass complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("slidetext")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
