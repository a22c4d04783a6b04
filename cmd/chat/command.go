package main

import "strings"

type CommandName string

const (
	CommandSay       CommandName = ""
	CommandAttention CommandName = "/attention"
	CommandAway      CommandName = "/away"
	CommandBack      CommandName = "/back"
	CommandDismiss   CommandName = "/dismiss"
	CommandWho       CommandName = "/who"
	CommandRename    CommandName = "/name"
	CommandRecolor   CommandName = "/color"
	CommandQuit      CommandName = "/quit"
	CommandUnknown   CommandName = "unknown"
)

var commands = map[CommandName]struct{}{
	CommandAttention: {},
	CommandAway:      {},
	CommandBack:      {},
	CommandDismiss:   {},
	CommandWho:       {},
	CommandRename:    {},
	CommandRecolor:   {},
	CommandQuit:      {},
}

// Command is one line typed in the terminal. Arg holds the message for
// CommandSay, the argument of a slash command, or the unknown command itself.
type Command struct {
	Name CommandName
	Arg  string
}

// ParseCommand never trims plain messages: what is typed is what is sent.
func ParseCommand(line string) Command {
	if !strings.HasPrefix(line, "/") {
		return Command{Name: CommandSay, Arg: line}
	}
	head, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	name := CommandName(strings.ToLower(head))
	if _, ok := commands[name]; !ok {
		return Command{Name: CommandUnknown, Arg: head}
	}
	return Command{Name: name, Arg: strings.TrimSpace(arg)}
}
