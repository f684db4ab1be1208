package command

import (
	"fmt"
	"strings"
)

// HelpCommand は登録済みコマンドのヘルプを表示する（HELP）。
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand は新しいHelpCommandを生成する。
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

func (c *HelpCommand) Name() string { return "HELP" }

func (c *HelpCommand) Description() string { return "Show help for the available commands." }

func (c *HelpCommand) Usage() string {
	return usageOf(c) + " [[ command_name ]]\n\n" +
		"when the optional command name is given, show its usage."
}

func (c *HelpCommand) Execute(args []string) string {
	switch len(args) {
	case 0:
		var b strings.Builder
		b.WriteString("Available commands:\n\n")
		for _, cmd := range c.registry.Commands() {
			b.WriteString("* " + formatHelpLine(cmd))
		}
		b.WriteString("\nUse help followed by the command name for details.")
		return b.String()
	case 1:
		cmd, ok := c.registry.Lookup(args[0])
		if !ok {
			return "Unknown command."
		}
		return formatHelpLine(cmd) + cmd.Usage()
	default:
		return c.Usage()
	}
}

func formatHelpLine(cmd Command) string {
	return fmt.Sprintf("%s: %s\n", cmd.Name(), cmd.Description())
}
