// Package log builds [log/slog] handlers from CLI flags.
//
// It supports three output formats ([FormatJSON], [FormatLogfmt], and
// [FormatText]) and four levels ([LevelError], [LevelWarn], [LevelInfo], and
// [LevelDebug]). Use [NewHandler] directly, or [Config] to bind the level and
// format to [github.com/spf13/pflag] flags with shell completions via
// [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// The documentation engine only logs at debug level (mode dispatch and
// filtered declarations) and warn level (ignored variables, failed settings
// reloads), so the default warn level keeps CLI output quiet.
package log
