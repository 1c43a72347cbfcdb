package domain

// ProbeTarget is the endpoint checked by a liveness probe.
type ProbeTarget struct {
	Protocol Protocol
	Address  string
	Port     int
}

// URL returns the root URL the probe requests.
func (t ProbeTarget) URL() string {
	return ServerURL(t.Protocol, t.Address, t.Port) + "/"
}

// ProbeOutcome classifies the result of a liveness probe.
type ProbeOutcome int

const (
	// ProbeLive means the target answered with status 200.
	ProbeLive ProbeOutcome = iota
	// ProbeUnreachableSoft covers non-200 answers and expected network failures
	// (resolution failure, reset, hang-up, timeout).
	ProbeUnreachableSoft
	// ProbeUnreachableHard covers every other failure.
	ProbeUnreachableHard
)

func (o ProbeOutcome) String() string {
	switch o {
	case ProbeLive:
		return "live"
	case ProbeUnreachableSoft:
		return "unreachable_soft"
	case ProbeUnreachableHard:
		return "unreachable_hard"
	default:
		return "unknown"
	}
}

// ProbeResult is what a probe reports back. Err is nil only for ProbeLive.
type ProbeResult struct {
	Outcome    ProbeOutcome
	StatusCode int // zero when no response was received
	Err        error
}
