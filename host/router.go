package host

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CommandPrefixes may precede a command name in a chat line.
var CommandPrefixes = []string{"/", "!", "！", "."}

type command struct {
	Command
	handler CommandHandler
}

type tool struct {
	Tool
	handler ToolHandler
}

// Router is an in-process Registry that dispatches chat lines and tool calls.
// It is safe for concurrent use.
type Router struct {
	lock     sync.RWMutex
	commands map[string]command
	tools    map[string]tool
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{
		commands: map[string]command{},
		tools:    map[string]tool{},
	}
}

func (r *Router) RegisterCommand(name, description string, handler CommandHandler) error {
	name = strings.TrimSpace(name)
	if name == "" || handler == nil {
		return fmt.Errorf("register command %q: name and handler are required", name)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("command %q: %w", name, ErrDuplicate)
	}
	r.commands[name] = command{Command{Name: name, Description: description}, handler}
	return nil
}

func (r *Router) RegisterTool(t Tool, handler ToolHandler) error {
	if t.Name == "" || handler == nil {
		return fmt.Errorf("register tool %q: name and handler are required", t.Name)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.tools[t.Name]; ok {
		return fmt.Errorf("tool %q: %w", t.Name, ErrDuplicate)
	}
	r.tools[t.Name] = tool{t, handler}
	return nil
}

// Dispatch runs the command named by the first word of text.
func (r *Router) Dispatch(ctx context.Context, text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ErrUnknownCommand
	}
	name := trimPrefix(fields[0])

	r.lock.RLock()
	c, ok := r.commands[name]
	r.lock.RUnlock()
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	return c.handler(ctx, fields[1:])
}

// CallTool runs the tool called name.
func (r *Router) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	r.lock.RLock()
	t, ok := r.tools[name]
	r.lock.RUnlock()
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownTool)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.handler(ctx, args)
}

// Commands lists registered commands sorted by name.
func (r *Router) Commands() []Command {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c.Command)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tools lists registered tools sorted by name.
func (r *Router) Tools() []Tool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func trimPrefix(word string) string {
	for _, prefix := range CommandPrefixes {
		if strings.HasPrefix(word, prefix) {
			return strings.TrimPrefix(word, prefix)
		}
	}
	return word
}
