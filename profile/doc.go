// Package profile writes runtime profiles for a CLI run.
//
// CPU profiling spans the run; heap and allocs profiles are snapshots taken
// when the run ends. Profiles are written through an [afero.Fs], so tests can
// capture them in memory:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler(afero.NewOsFs())
//	err := p.Start()
//	defer p.Stop()
//
// Users enable profiling with flags like --cpu-profile=cpu.prof when
// generating large batches.
package profile
