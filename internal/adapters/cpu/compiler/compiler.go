// Package compiler implements ports.Compiler for the reference CPU backend.
//
// A build validates the network, infers tensor shapes at the profile minimum,
// optimum and maximum, and then selects one kernel tactic per layer. Layers
// with a single admissible tactic are never timed. The others are resolved
// from the attached timing cache or benchmarked at the optimum shape, and the
// winning measurement is recorded back into the cache.
package compiler

import (
	"context"
	"errors"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/temper/internal/adapters/cpu/kernels"
	"go.trai.ch/temper/internal/adapters/cpu/plan"
	"go.trai.ch/temper/internal/adapters/cpu/timingcache"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// benchmarkSeed fixes the synthetic data used to time tactics.
const benchmarkSeed = 0x7e3d

// Compiler builds serialized plans on the host CPU.
type Compiler struct {
	clock  clockwork.Clock
	device domain.DeviceInfo
}

// New creates a compiler that measures tactics with clock.
func New(clock clockwork.Clock) *Compiler {
	return &Compiler{
		clock:  clock,
		device: HostDevice(),
	}
}

// HostDevice describes the CPU this process runs on.
func HostDevice() domain.DeviceInfo {
	return domain.DeviceInfo{Name: "cpu", Arch: runtime.GOARCH, Cores: runtime.NumCPU()}
}

// Device returns the device plans are compiled for.
func (c *Compiler) Device() domain.DeviceInfo {
	return c.device
}

// shapes holds the inferred tensor dimensions at each profile point.
type shapes struct {
	opt, max map[string]domain.Dims
}

// Build compiles net into a plan according to cfg.
func (c *Compiler) Build(ctx context.Context, net *domain.Network, cfg *domain.BuildConfig) (*domain.CompileResult, error) {
	if err := validate(net, cfg); err != nil {
		return nil, err
	}

	sh, err := inferProfileShapes(net, cfg)
	if err != nil {
		return nil, err
	}

	var (
		cache *timingcache.Cache
		mode  domain.TimingCacheMode
	)
	if blob, m, ok := cfg.TimingCache(); ok {
		cache, err = timingcache.Decode(blob)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidTimingCache, err)
		}
		mode = m
	}

	p := plan.New(c.device.ID())
	p.Inputs = cloneTensors(net.Inputs)
	p.Profiles = append(p.Profiles, cfg.Profiles...)
	p.Outputs = outputTensors(net)

	var stats domain.TacticStats
	rng := rand.New(rand.NewPCG(benchmarkSeed, benchmarkSeed)) //nolint:gosec // benchmark input data
	for _, l := range net.Layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		k, err := c.selectTactic(l, sh, cfg, cache, mode, rng, &stats)
		if err != nil {
			return nil, zerr.With(err, "layer", l.Name)
		}
		p.Steps = append(p.Steps, plan.Step{Layer: l, Tactic: k.Tactic()})
		p.Workspace = max(p.Workspace, k.Workspace(dimsOf(l.Inputs, sh.max)))
		stats.Layers++
	}

	artifact, err := p.Encode()
	if err != nil {
		return nil, err
	}

	result := &domain.CompileResult{Artifact: artifact, Stats: stats}
	if cache != nil {
		blob, err := cache.Encode()
		if err != nil {
			return nil, err
		}
		result.TimingCache = blob
		result.HasTimingCache = true
	}
	return result, nil
}

func (c *Compiler) selectTactic(
	l *domain.Layer,
	sh shapes,
	cfg *domain.BuildConfig,
	cache *timingcache.Cache,
	mode domain.TimingCacheMode,
	rng *rand.Rand,
	stats *domain.TacticStats,
) (kernels.Kernel, error) {
	candidates, err := kernels.Candidates(l)
	if err != nil {
		return nil, err
	}

	maxIn := dimsOf(l.Inputs, sh.max)
	fit := make([]kernels.Kernel, 0, len(candidates))
	for _, k := range candidates {
		if k.Workspace(maxIn) <= cfg.WorkspaceLimit {
			fit = append(fit, k)
		}
	}
	switch len(fit) {
	case 0:
		return nil, zerr.With(domain.ErrWorkspaceExceeded, "limit", cfg.WorkspaceLimit)
	case 1:
		return fit[0], nil
	}

	stats.Timed++
	optIn := dimsOf(l.Inputs, sh.opt)
	key := timingcache.Key(c.device.ID(), l, optIn)
	if cache != nil {
		if e, ok := cache.Lookup(key); ok {
			for _, k := range fit {
				if k.Tactic() == e.Tactic {
					stats.CacheHits++
					return k, nil
				}
			}
		}
		if mode == domain.TimingCacheExclusive {
			return nil, zerr.With(domain.ErrTimingCacheMiss, "key", key)
		}
	}

	best, elapsed, err := c.benchmark(l, fit, optIn, dimsOf(outputNames(l), sh.opt), cfg.TimingIterations, rng)
	if err != nil {
		return nil, err
	}
	stats.Benchmarked++
	if cache != nil {
		cache.Record(key, best.Tactic(), elapsed)
	}
	return best, nil
}

// benchmark runs every candidate on synthetic data and returns the fastest.
// The first candidate wins ties.
func (c *Compiler) benchmark(
	l *domain.Layer,
	candidates []kernels.Kernel,
	inDims, outDims []domain.Dims,
	iterations int,
	rng *rand.Rand,
) (kernels.Kernel, time.Duration, error) {
	iterations = max(iterations, 1)

	in := make([]*kernels.Tensor, len(inDims))
	for i, d := range inDims {
		in[i] = kernels.NewTensor(d)
		for j := range in[i].Data {
			in[i].Data[j] = rng.Float32()*2 - 1
		}
	}
	out := make([]*kernels.Tensor, len(outDims))
	for i, d := range outDims {
		out[i] = kernels.NewTensor(d)
	}

	var (
		best     kernels.Kernel
		bestTime time.Duration
	)
	for _, k := range candidates {
		start := c.clock.Now()
		for range iterations {
			if err := k.Run(in, out); err != nil {
				return nil, 0, zerr.With(err, "tactic", k.Tactic())
			}
		}
		avg := c.clock.Since(start) / time.Duration(iterations)
		if best == nil || avg < bestTime {
			best, bestTime = k, avg
		}
	}
	return best, bestTime, nil
}

func inferProfileShapes(net *domain.Network, cfg *domain.BuildConfig) (shapes, error) {
	pick := func(sel func(domain.OptimizationProfile) domain.Dims) map[string]domain.Dims {
		in := make(map[string]domain.Dims, len(net.Inputs))
		for _, t := range net.Inputs {
			if p, ok := cfg.Profile(t.Name); ok && t.Dims.IsDynamic() {
				in[t.Name] = sel(p)
				continue
			}
			in[t.Name] = t.Dims
		}
		return in
	}

	var sh shapes
	// The minimum is inferred only to prove every profile point is valid.
	points := []struct {
		sel func(domain.OptimizationProfile) domain.Dims
		dst *map[string]domain.Dims
	}{
		{sel: func(p domain.OptimizationProfile) domain.Dims { return p.Min }},
		{sel: func(p domain.OptimizationProfile) domain.Dims { return p.Opt }, dst: &sh.opt},
		{sel: func(p domain.OptimizationProfile) domain.Dims { return p.Max }, dst: &sh.max},
	}
	for _, pt := range points {
		inferred, err := kernels.InferShapes(net.Layers, pick(pt.sel))
		if err != nil {
			return shapes{}, err
		}
		if pt.dst != nil {
			*pt.dst = inferred
		}
	}
	return sh, nil
}

func dimsOf(names []string, known map[string]domain.Dims) []domain.Dims {
	out := make([]domain.Dims, len(names))
	for i, n := range names {
		out[i] = known[n]
	}
	return out
}

func outputNames(l *domain.Layer) []string {
	names := make([]string, len(l.Outputs))
	for i := range l.Outputs {
		names[i] = l.Outputs[i].Name
	}
	return names
}

func outputTensors(net *domain.Network) []domain.Tensor {
	byName := make(map[string]domain.Tensor)
	for _, l := range net.Layers {
		for _, t := range l.Outputs {
			byName[t.Name] = t
		}
	}
	out := make([]domain.Tensor, 0, len(net.Outputs))
	for _, name := range net.Outputs {
		out = append(out, byName[name])
	}
	return out
}

func cloneTensors(ts []domain.Tensor) []domain.Tensor {
	out := make([]domain.Tensor, len(ts))
	for i, t := range ts {
		out[i] = domain.Tensor{Name: t.Name, Type: t.Type, Dims: t.Dims.Clone()}
	}
	return out
}
