package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console prompts over a line-oriented reader/writer pair, usually stdin and
// stdout. Invalid selections re-prompt until the player answers with a valid
// option number.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole wraps the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// PromptForText prints the prompt and reads one line.
func (c *Console) PromptForText(prompt string) (string, error) {
	fmt.Fprintf(c.out, "%s ", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// PromptForChoice prints numbered options and reads selections until one
// parses to a valid 1-based option number.
func (c *Console) PromptForChoice(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("prompt %q has no options", prompt)
	}
	fmt.Fprintln(c.out, prompt)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, opt)
	}
	for {
		answer, err := c.PromptForText(fmt.Sprintf("Enter your choice (1-%d):", len(options)))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintln(c.out, "Invalid choice.")
			continue
		}
		return n - 1, nil
	}
}
