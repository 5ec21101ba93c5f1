// Package plan defines the serialized engine format shared by the CPU compiler and runtime.
package plan

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	magic = "TMPRPLAN"
	// Version is the plan format version understood by this runtime.
	Version = 1
)

// Step is one layer bound to the tactic selected for it.
type Step struct {
	Layer  *domain.Layer `msgpack:"layer"`
	Tactic string        `msgpack:"tactic"`
}

// Plan is a compiled network ready for execution.
type Plan struct {
	Magic     string                       `msgpack:"magic"`
	Version   int                          `msgpack:"version"`
	Device    string                       `msgpack:"device"`
	Inputs    []domain.Tensor              `msgpack:"inputs"`
	Outputs   []domain.Tensor              `msgpack:"outputs"`
	Profiles  []domain.OptimizationProfile `msgpack:"profiles"`
	Steps     []Step                       `msgpack:"steps"`
	Workspace int64                        `msgpack:"workspace"`
}

// New creates an empty plan for a device.
func New(device string) *Plan {
	return &Plan{Magic: magic, Version: Version, Device: device}
}

// Encode serializes the plan into an artifact.
func (p *Plan) Encode() (domain.CompiledArtifact, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(p); err != nil {
		return domain.CompiledArtifact{}, zerr.Wrap(err, "failed to encode plan")
	}
	return domain.NewCompiledArtifact(buf.Bytes()), nil
}

// Decode parses an artifact and verifies it targets device.
func Decode(artifact domain.CompiledArtifact, device string) (*Plan, error) {
	if artifact.Len() == 0 {
		return nil, zerr.With(domain.ErrPlanDecodeFailed, "reason", "empty artifact")
	}

	var p Plan
	if err := msgpack.Unmarshal(artifact.Bytes(), &p); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPlanDecodeFailed.Error())
	}
	if p.Magic != magic {
		return nil, zerr.With(domain.ErrPlanDecodeFailed, "magic", p.Magic)
	}
	if p.Version != Version {
		return nil, zerr.With(zerr.With(domain.ErrPlanIncompatible, "version", p.Version), "expected_version", Version)
	}
	if p.Device != device {
		return nil, zerr.With(zerr.With(domain.ErrPlanIncompatible, "device", p.Device), "expected_device", device)
	}
	return &p, nil
}

// Profile returns the optimization profile of the named input.
func (p *Plan) Profile(input string) (domain.OptimizationProfile, bool) {
	for _, prof := range p.Profiles {
		if prof.Input == input {
			return prof, true
		}
	}
	return domain.OptimizationProfile{}, false
}
