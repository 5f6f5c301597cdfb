// Package errors reports user-facing errors and notices either on the
// console or as status messages inside the explorer.
package errors

import (
	"sync"

	"github.com/cristianoliveira/molmark/internal/colors"
)

// Handler receives user-facing messages.
type Handler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
}

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }

// CLIHandler prints messages to the console.
type CLIHandler struct {
	out ColorOutput
}

var _ Handler = (*CLIHandler)(nil)

// NewCLIHandler creates a handler writing to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler creates a handler writing through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}

func (h *CLIHandler) Error(msg string)   { h.out.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.out.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.out.Info(msg) }

// MessageType classifies a status message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
)

// Message is a status message.
type Message struct {
	Text string
	Type MessageType
}

// StatusHandler keeps the latest message for display in a status line.
type StatusHandler struct {
	mu      sync.RWMutex
	current Message
	set     bool
}

var _ Handler = (*StatusHandler)(nil)

// NewStatusHandler creates an empty status handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

func (h *StatusHandler) Error(msg string)   { h.store(msg, MessageTypeError) }
func (h *StatusHandler) Warning(msg string) { h.store(msg, MessageTypeWarning) }
func (h *StatusHandler) Info(msg string)    { h.store(msg, MessageTypeInfo) }

func (h *StatusHandler) store(text string, t MessageType) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Message{Text: text, Type: t}
	h.set = true
}

// Current returns the latest message, if any.
func (h *StatusHandler) Current() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.set
}

// Clear drops the current message.
func (h *StatusHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Message{}
	h.set = false
}
