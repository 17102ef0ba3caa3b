package prompt

// Request is one pending question published to a UI adapter. Options is nil
// for text prompts.
type Request struct {
	Prompt  string
	Options []string
}

// Response carries the UI's answer back. Text is used for text prompts,
// Choice for selection prompts.
type Response struct {
	Text   string
	Choice int
	Err    error
}

// Channel bridges the engine's synchronous prompt calls to an independent UI
// goroutine. Each call publishes a Request and blocks until the UI sends a
// Response; the engine never sees the asynchrony.
type Channel struct {
	Requests  chan Request
	Responses chan Response
}

// NewChannel returns a bridge with unbuffered channels so the engine and UI
// stay in lockstep.
func NewChannel() *Channel {
	return &Channel{
		Requests:  make(chan Request),
		Responses: make(chan Response),
	}
}

// PromptForText publishes the question and blocks for the answer.
func (c *Channel) PromptForText(prompt string) (string, error) {
	c.Requests <- Request{Prompt: prompt}
	resp := <-c.Responses
	return resp.Text, resp.Err
}

// PromptForChoice publishes the options and blocks for the selection.
func (c *Channel) PromptForChoice(prompt string, options []string) (int, error) {
	c.Requests <- Request{Prompt: prompt, Options: options}
	resp := <-c.Responses
	return resp.Choice, resp.Err
}
