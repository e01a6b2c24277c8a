package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/boolean-maybe/hound/config"
	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/output"
	"github.com/boolean-maybe/hound/store"

	// Backend registrations
	_ "github.com/boolean-maybe/hound/store/fsstore"
	_ "github.com/boolean-maybe/hound/store/gitstore"
)

// exUsage is the exit status for command line errors, per sysexits.h.
const exUsage = 64

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("hound version %s\ncommit: %s\nbuilt: %s\n",
			config.Version, config.GitCommit, config.BuildDate)
		os.Exit(0)
	}

	os.Exit(run(os.Args[1:]))
}

// run is main without the os.Exit, so deferred backend cleanup fires
// on every path.
func run(args []string) int {
	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	config.InitLogging(cfg)

	aliases, err := config.LoadAliases()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	args = stripFlags(args)

	// Backend URIs come first; the expression starts at the first token
	// that is not a URI.
	split := 0
	for split < len(args) && filter.Classify(args[split]).Kind == filter.TokenURI {
		split++
	}
	if split == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "error: missing at least one backend URI")
		return exUsage
	}

	var backends []store.Backend
	defer func() {
		for _, b := range backends {
			if err := b.Close(); err != nil {
				slog.Warn("closing backend", "backend", b.Name(), "error", err)
			}
		}
	}()
	for _, uri := range args[:split] {
		b, err := store.Resolve(uri, aliases)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		backends = append(backends, b)
	}

	executor := output.NewExecutor(backends)
	if cfg.Output.PosixlyCorrect {
		executor.PosixlyCorrect = true
	}

	arena := filter.NewArena()
	defer arena.Release()

	parser := filter.NewParser(arena, args[split:], executor.Exec)
	f, sorts, acted, err := parser.Parse()
	if err == nil && !acted {
		// No action in the expression: print every match.
		err = executor.Exec(filter.ActPrint, "-print", "", f, sorts)
	}
	if err != nil {
		if errors.Is(err, output.ErrQuit) {
			return 0
		}
		var usage *filter.UsageError
		if errors.As(err, &usage) {
			_, _ = fmt.Fprintln(os.Stderr, "error:", err)
			return exUsage
		}
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	return 0
}

// stripFlags removes the global flags viper already consumed so they
// do not reach the expression parser. Only flags hound itself defines
// are stripped; everything else passes through.
func stripFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--log-level" || arg == "--config" {
			if i+1 < len(args) {
				i++ // skip the value
			}
			continue
		}
		if strings.HasPrefix(arg, "--log-level=") || strings.HasPrefix(arg, "--config=") {
			continue
		}
		out = append(out, arg)
	}
	return out
}
