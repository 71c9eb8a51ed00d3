package main

import "fmt"

// commandHost collects command verbs contributed by filters. It implements
// filter.CommandLine.
type commandHost struct {
	commands map[string]func(args []string) error
}

func newCommandHost() *commandHost {
	return &commandHost{commands: make(map[string]func(args []string) error)}
}

// RegisterCommand binds a verb, rejecting duplicates.
func (h *commandHost) RegisterCommand(name string, run func(args []string) error) error {
	if name == "" || run == nil {
		return fmt.Errorf("invalid command registration")
	}
	if _, taken := h.commands[name]; taken {
		return fmt.Errorf("command %q already registered", name)
	}
	h.commands[name] = run
	return nil
}

func (h *commandHost) lookup(name string) (func(args []string) error, bool) {
	run, ok := h.commands[name]
	return run, ok
}
