// Package prompt abstracts the surface that asks a player for input. The
// engine only ever sees a synchronous call that returns once an answer is
// available; how the answer is produced (terminal, script, UI thread) is the
// implementation's business.
package prompt

// Prompter is the request/respond surface consumed by the decision engine
// and the campaign loop.
type Prompter interface {
	// PromptForText asks an open question and returns the raw answer.
	PromptForText(prompt string) (string, error)
	// PromptForChoice asks the player to pick one of options and returns the
	// selected index.
	//
	// Precondition: options must be non-empty.
	// Postcondition: On success the returned index is in [0, len(options)).
	PromptForChoice(prompt string, options []string) (int, error)
}
