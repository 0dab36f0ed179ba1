package profile

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/afero"
)

// Profiler runs the profiles selected by a [Config]. Create instances with
// [Config.NewProfiler].
type Profiler struct {
	fs      afero.Fs
	cpuFile afero.File
	config  Config
}

// Start applies the memory profile rate and starts CPU profiling if
// enabled.
func (p *Profiler) Start() error {
	if p.config.MemProfileRate > 0 {
		runtime.MemProfileRate = p.config.MemProfileRate
	}

	if p.config.CPUProfile == "" {
		return nil
	}

	f, err := p.fs.Create(p.config.CPUProfile)
	if err != nil {
		return fmt.Errorf("create CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the heap and allocs snapshots. It is
// safe to call when nothing was started.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}

		p.cpuFile = nil
	}

	for name, path := range map[string]string{
		"heap":   p.config.HeapProfile,
		"allocs": p.config.AllocsProfile,
	} {
		if path == "" {
			continue
		}

		err := p.snapshot(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *Profiler) snapshot(name, path string) error {
	f, err := p.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
