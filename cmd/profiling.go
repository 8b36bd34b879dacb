package cmd

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spiffcs/checkout-ago/internal/log"
)

// profiler writes the CPU, heap and execution-trace profiles requested on
// the command line. Empty paths disable the corresponding profile.
type profiler struct {
	cpuPath   string
	memPath   string
	tracePath string

	cpuFile   *os.File
	traceFile *os.File
}

func newProfiler(opts *Options) *profiler {
	return &profiler{
		cpuPath:   opts.CPUProfile,
		memPath:   opts.MemProfile,
		tracePath: opts.Trace,
	}
}

// start begins CPU profiling and tracing. On error nothing is left running.
func (p *profiler) start() error {
	if p.cpuPath != "" {
		f, err := os.Create(p.cpuPath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		p.cpuFile = f
	}

	if p.tracePath != "" {
		f, err := os.Create(p.tracePath)
		if err != nil {
			p.stopCPU()
			return fmt.Errorf("could not create trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			f.Close()
			p.stopCPU()
			return fmt.Errorf("could not start trace: %w", err)
		}
		p.traceFile = f
	}

	return nil
}

// stop flushes every profile. Failures are logged, not returned, so they
// never mask the command's own result.
func (p *profiler) stop() {
	if p.traceFile != nil {
		trace.Stop()
		closeLogged(p.traceFile, "trace")
		p.traceFile = nil
	}

	p.stopCPU()

	if p.memPath == "" {
		return
	}
	f, err := os.Create(p.memPath)
	if err != nil {
		log.Warn("could not create memory profile", "error", err)
		return
	}
	defer closeLogged(f, "memory profile")
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Warn("could not write memory profile", "error", err)
	}
}

func (p *profiler) stopCPU() {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		closeLogged(p.cpuFile, "CPU profile")
		p.cpuFile = nil
	}
}

func closeLogged(f *os.File, what string) {
	if err := f.Close(); err != nil {
		log.Warn("could not close "+what, "path", f.Name(), "error", err)
	}
}
