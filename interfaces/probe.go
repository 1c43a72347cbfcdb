package interfaces

import (
	"context"

	"github.com/modulesio/prsnt/domain"
)

// LivenessProbe checks whether an announced endpoint answers a lightweight HTTP request.
//
//go:generate moq -stub -out mock/probe.go -pkg mock . LivenessProbe
type LivenessProbe interface {
	// Probe issues one bounded request to target and classifies the result.
	// It never writes to the registry.
	Probe(ctx context.Context, target domain.ProbeTarget) domain.ProbeResult
}
