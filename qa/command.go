package qa

import "strings"

// CommandKind enumerates the closed set of console inputs.
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandQuit
	CommandHelp
	CommandReset
	CommandHistory
	CommandQuestion
)

// Command is the classified form of one line of console input.
type Command struct {
	Kind CommandKind
	Text string // the question text, for CommandQuestion
}

// ParseCommand classifies one line of console input. Matching is
// case-insensitive and ignores surrounding whitespace; anything that is not
// a recognized command is a question.
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Kind: CommandEmpty}
	}
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}
	case "help":
		return Command{Kind: CommandHelp}
	case "reset":
		return Command{Kind: CommandReset}
	case "history":
		return Command{Kind: CommandHistory}
	}
	return Command{Kind: CommandQuestion, Text: input}
}
