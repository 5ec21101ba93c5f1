package compiler

import (
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// validate checks the network structure and the optimization profiles of its inputs.
func validate(net *domain.Network, cfg *domain.BuildConfig) error {
	if len(net.Outputs) == 0 {
		return domain.ErrNoOutputs
	}

	produced := make(map[string]struct{}, len(net.Layers))
	for _, l := range net.Layers {
		for _, t := range l.Outputs {
			produced[t.Name] = struct{}{}
		}
	}
	for _, name := range net.Outputs {
		if _, ok := produced[name]; !ok {
			return zerr.With(domain.ErrUnknownTensor, "output", name)
		}
	}

	for _, t := range net.Inputs {
		if err := validateInput(t, cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateInput(t domain.Tensor, cfg *domain.BuildConfig) error {
	p, ok := cfg.Profile(t.Name)
	if !ok {
		if t.Dims.IsDynamic() {
			return zerr.With(domain.ErrMissingProfile, "input", t.Name)
		}
		return nil
	}

	invalid := func(reason string) error {
		return zerr.With(zerr.With(domain.ErrInvalidProfile, "input", t.Name), "reason", reason)
	}
	if len(p.Min) != len(t.Dims) || len(p.Opt) != len(t.Dims) || len(p.Max) != len(t.Dims) {
		return invalid("rank mismatch")
	}
	for i, d := range t.Dims {
		lo, opt, hi := p.Min[i], p.Opt[i], p.Max[i]
		if lo <= 0 || lo > opt || opt > hi {
			return invalid("expected 0 < min <= opt <= max")
		}
		if d != domain.DynamicDim && (lo != d || hi != d) {
			return invalid("static dimension differs from profile")
		}
	}
	return nil
}
