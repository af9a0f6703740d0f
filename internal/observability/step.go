package observability

import "github.com/rs/zerolog"

// Step is one relayed message as seen by the exchange log.
type Step struct {
	Exchange string
	Index    int
	Original string
	Relayed  string
	Lines    []string
	Outcome  string
	Err      error
}

// LogStep picks the level from the outcome: applied steps log at info,
// misunderstood or rejected steps at warn, and dropped steps at error.
func LogStep(logger zerolog.Logger, s Step) {
	event := logger.Info()
	switch s.Outcome {
	case "unrecognized", "rejected":
		event = logger.Warn()
	case "dropped":
		event = logger.Error()
	}
	if s.Err != nil {
		event = event.Err(s.Err)
	}
	event.
		Str("exchange", s.Exchange).
		Int("step", s.Index).
		Str("original", s.Original).
		Str("relayed", s.Relayed).
		Strs("lines", s.Lines).
		Str("outcome", s.Outcome).
		Msg("exchange_step")
}
