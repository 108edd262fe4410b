package studygen

import "fmt"

// GenerationError reports that a generation could not produce the expected
// content: the transport failed (Err is then an *llm.TransportError), or the
// response could not be parsed into the expected shape.
type GenerationError struct {
	// Op names the gateway operation, e.g. "generate quiz".
	Op string

	// Raw is the model's text when one was received.
	Raw string

	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
