// Command tafiti resolves and validates localized study content bundles from
// the command line.
package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/pitabwire/util"

	"github.com/pitabwire/tafiti"
	"github.com/pitabwire/tafiti/config"
	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/localization"
	"github.com/pitabwire/tafiti/resource"
	"github.com/pitabwire/tafiti/version"
	"github.com/pitabwire/tafiti/workerpool"
)

//go:embed localization/*.toml
var messageFiles embed.FS

var catalogLanguages = []string{"en", "sw"}

var errValidationFailed = errors.New("bundle validation failed")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "resolve":
		exitOnErr(cmdResolve(os.Args[2:]))
	case "validate":
		exitOnErr(cmdValidate(os.Args[2:]))
	case "version":
		fmt.Fprintln(os.Stdout, "tafiti "+version.String())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stdout, "tafiti <command> [args]")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Commands:")
	fmt.Fprintln(os.Stdout, "  resolve <bundle-url> <category/name.ext> <language-REGION> [--behaviour NAME]")
	fmt.Fprintln(os.Stdout, "  validate <bundle-url> [category/name.ext ...] [--lang CODE]")
	fmt.Fprintln(os.Stdout, "  version")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Bundle URLs use gocloud blob syntax, e.g. file:///path/to/bundle")
}

func exitOnErr(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func setup() (context.Context, *config.Default, localization.Manager, error) {
	ctx := context.Background()

	cfg, err := config.FromEnv[config.Default]()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not read configuration: %w", err)
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel(cfg.LoggingLevel()),
		TimeFormat: cfg.LoggingTimeFormat(),
		NoColor:    !cfg.LoggingColored(),
	})
	log := util.NewLogger(ctx, util.WithLogHandler(handler))
	ctx = util.ContextWithLogger(ctx, log)

	catalogs, err := fs.Sub(messageFiles, "localization")
	if err != nil {
		return nil, nil, nil, err
	}
	translator, err := localization.NewManagerFS(catalogs, catalogLanguages...)
	if err != nil {
		return nil, nil, nil, err
	}

	return ctx, &cfg, translator, nil
}

func slogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openBundle(
	ctx context.Context,
	cfg *config.Default,
	urlstr string,
	extra ...tafiti.Option,
) (context.Context, *tafiti.Bundle, *tafiti.Store, error) {
	store, err := tafiti.OpenStore(ctx, urlstr)
	if err != nil {
		return nil, nil, nil, err
	}

	var poolOpts []workerpool.Option
	if cfg.WorkerPoolCapacity > 0 {
		poolOpts = append(poolOpts, workerpool.WithCapacity(cfg.WorkerPoolCapacity))
	}
	poolOpts = append(poolOpts, workerpool.WithExpiryDuration(cfg.GetWorkerPoolExpiryDuration()))

	opts := []tafiti.Option{
		tafiti.WithStore(store),
		tafiti.WithConfig(cfg),
		tafiti.WithWorkerPoolOptions(poolOpts...),
	}
	opts = append(opts, extra...)

	ctx, bundle := tafiti.New(ctx, bundleName(urlstr), opts...)

	return ctx, bundle, store, nil
}

func bundleName(urlstr string) string {
	return path.Base(strings.TrimSuffix(urlstr, "/"))
}

// parseReference reads a "category/name.extension" argument.
func parseReference(s string) (resource.FileReference, error) {
	folder, file, ok := strings.Cut(s, "/")
	if !ok || folder == "" {
		return resource.FileReference{}, fmt.Errorf("reference %q must look like category/name.extension", s)
	}

	idx := strings.LastIndex(file, ".")
	if idx <= 0 || idx == len(file)-1 {
		return resource.FileReference{}, fmt.Errorf("reference %q must name a file with an extension", s)
	}

	return resource.FileReference{
		Category:  resource.Category(folder),
		Name:      file[:idx],
		Extension: file[idx+1:],
	}, nil
}

func cmdResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	behaviour := fs.String("behaviour", "",
		"matching behaviour override: require_perfect, prefer_language or prefer_region")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return errors.New("usage: resolve <bundle-url> <category/name.ext> <language-REGION>")
	}

	ctx, cfg, translator, err := setup()
	if err != nil {
		return err
	}

	ref, err := parseReference(fs.Arg(1))
	if err != nil {
		return err
	}

	requested, err := locale.Parse(fs.Arg(2))
	if err != nil {
		return err
	}

	var extra []tafiti.Option
	if *behaviour != "" {
		extra = append(extra, tafiti.WithMatchBehaviour(tafiti.BehaviourByName(*behaviour)))
	}

	ctx, bundle, store, err := openBundle(ctx, cfg, fs.Arg(0), extra...)
	if err != nil {
		return err
	}
	defer store.Close()

	resolution, err := bundle.Resolve(ctx, ref, requested)
	if err != nil {
		return err
	}

	languages := []string{requested.Language, "en"}
	fmt.Fprintln(os.Stdout, translator.TranslateWithMap(ctx, languages, "ResolvedTo", map[string]any{
		"Key":   resolution.StorageKey(),
		"Score": fmt.Sprintf("%.2f", resolution.Score),
	}))

	return nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	lang := fs.String("lang", "en", "language of the summary output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: validate <bundle-url> [category/name.ext ...]")
	}

	ctx, cfg, translator, err := setup()
	if err != nil {
		return err
	}

	ctx, bundle, store, err := openBundle(ctx, cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	defer store.Close()

	var refs []resource.FileReference
	for _, arg := range fs.Args()[1:] {
		ref, refErr := parseReference(arg)
		if refErr != nil {
			return refErr
		}
		refs = append(refs, ref)
	}

	if len(refs) == 0 {
		if _, defErr := bundle.LoadDefinition(ctx); defErr != nil {
			return defErr
		}
	}

	report, err := bundle.Validate(ctx, refs...)
	if err != nil {
		return err
	}

	if rendered := report.Render(); rendered != "" {
		fmt.Fprintln(os.Stdout, rendered)
	}

	issueCount := len(report.Issues())
	if issueCount == 0 && report.Err() == nil {
		fmt.Fprintln(os.Stdout, translator.Translate(ctx, *lang, "ValidationPassed"))
		return nil
	}

	fmt.Fprintln(os.Stdout, translator.TranslateWithMapAndCount(ctx, *lang, "IssuesFound",
		map[string]any{"Count": issueCount}, issueCount))

	if reportErr := report.Err(); reportErr != nil {
		return reportErr
	}

	return errValidationFailed
}
