package prompt

import "fmt"

// Scripted replays queued answers, for tests and automated campaign runs.
type Scripted struct {
	texts   []string
	choices []int
}

// NewScripted builds a prompter that answers text prompts from texts and
// choice prompts from choices, each in order.
func NewScripted(texts []string, choices []int) *Scripted {
	return &Scripted{texts: texts, choices: choices}
}

// PromptForText pops the next scripted text answer.
func (s *Scripted) PromptForText(prompt string) (string, error) {
	if len(s.texts) == 0 {
		return "", fmt.Errorf("scripted prompter has no answer for %q", prompt)
	}
	answer := s.texts[0]
	s.texts = s.texts[1:]
	return answer, nil
}

// PromptForChoice pops the next scripted selection.
//
// Postcondition: Returns an error if the queue is exhausted or the scripted
// index is out of range for options.
func (s *Scripted) PromptForChoice(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("prompt %q has no options", prompt)
	}
	if len(s.choices) == 0 {
		return 0, fmt.Errorf("scripted prompter has no selection for %q", prompt)
	}
	idx := s.choices[0]
	s.choices = s.choices[1:]
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("scripted selection %d out of range for %d options", idx, len(options))
	}
	return idx, nil
}
