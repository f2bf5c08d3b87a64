package logic

import (
	"errors"
	"sort"
)

// ErrUnknownCommand is returned for command codes without a handler.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a registered service command.
type Command struct {
	Code        string
	Description string
	Execute     func(input []byte) ([]byte, error)
}

var registry = map[string]Command{
	"DK": {Code: "DK", Description: "Decrypt DUKPT track data", Execute: ExecuteDK},
	"KC": {Code: "KC", Description: "Session key check value", Execute: ExecuteKC},
	"NC": {Code: "NC", Description: "Perform diagnostics", Execute: ExecuteNC},
}

// ExecuteCommand runs the handler registered for cmd.
func ExecuteCommand(cmd string, input []byte) ([]byte, error) {
	c, ok := registry[cmd]
	if !ok {
		return nil, ErrUnknownCommand
	}

	return c.Execute(input)
}

// GetDescription returns the description of cmd, or cmd itself when unknown.
func GetDescription(cmd string) string {
	if c, ok := registry[cmd]; ok {
		return c.Description
	}

	return cmd
}

// Commands lists the registered commands ordered by code.
func Commands() []Command {
	out := make([]Command, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out
}
