package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrUnknownCommand is returned by Dispatch for commands without a handler
var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc is a function that handles a command message
type HandlerFunc func(ctx context.Context, message *tgbotapi.Message) error

// Dispatcher handles routing of command messages to their handlers
type Dispatcher interface {
	// RegisterHandler registers a handler for a specific command
	RegisterHandler(command string, handler HandlerFunc)
	// Dispatch runs the handler of the message's command. Messages that are not
	// commands are ignored.
	Dispatch(ctx context.Context, message *tgbotapi.Message) error
}

// NewDispatcher creates a new dispatcher instance
func NewDispatcher() Dispatcher {
	return &defaultDispatcher{
		handlers: make(map[string]HandlerFunc),
	}
}

type defaultDispatcher struct {
	handlers map[string]HandlerFunc
}

func (d *defaultDispatcher) RegisterHandler(command string, handler HandlerFunc) {
	d.handlers[command] = handler
}

func (d *defaultDispatcher) Dispatch(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil {
		return nil
	}

	command := message.Command()
	if command == "" {
		return nil
	}

	handler, exists := d.handlers[command]
	if !exists {
		return ErrUnknownCommand
	}

	return handler(ctx, message)
}
