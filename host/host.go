// Package host is the contract between a chat bot host and its plugins.
// Plugins register commands (typed by users) and tools (called by an LLM);
// both yield plain text that the host delivers.
package host

import (
	"context"
	"errors"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrDuplicate       = errors.New("already registered")
	ErrMissingArgument = errors.New("missing argument")
)

// Metadata describes a plugin to the host.
type Metadata struct {
	Name        string
	Author      string
	Description string
	Version     string
	Repository  string
}

// CommandHandler handles a command typed by a user. args are the
// whitespace separated words after the command name.
type CommandHandler func(ctx context.Context, args []string) (string, error)

// ToolHandler handles a tool call made by an LLM.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// Command a registered command.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tool describes a tool to an LLM. Parameters is a JSON schema object.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Registry is what a plugin registers its handlers with.
type Registry interface {
	RegisterCommand(name, description string, handler CommandHandler) error
	RegisterTool(tool Tool, handler ToolHandler) error
}
