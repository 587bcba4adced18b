// Command sunderc drives the front-end end-to-end: it lexes and parses one
// or more Sunder source files, runs the §4.4 resolver over the result, and
// hands the resolved module to a pluggable internal/codegen.Backend. The
// backend is a stub (§6, §14 Non-goals) — this driver exists to exercise
// the resolver as a real compiler would, not to produce machine code.
//
// Usage:
//
//	sunderc check <entry.sunder>            resolve only, report diagnostics
//	sunderc build <entry.sunder> [-o out]   resolve, then run the backend
//	sunderc -version
//
// Modeled on the teacher's cmd/funxy/main.go module-walking/evaluation-loop
// shape, narrowed to the subcommands a front-end-only driver needs.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sunder-lang/sunderc/internal/codegen"
	"github.com/sunder-lang/sunderc/internal/config"
	"github.com/sunder-lang/sunderc/internal/diagnostics"
	"github.com/sunder-lang/sunderc/internal/evaluator"
	"github.com/sunder-lang/sunderc/internal/interner"
	"github.com/sunder-lang/sunderc/internal/parser"
	"github.com/sunder-lang/sunderc/internal/resolver"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) >= 2 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		fmt.Printf("sunderc %s (build %s)\n", config.Version, config.BuildID)
		return
	}

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <check|build> <entry.sunder> [-o out]\n", os.Args[0])
		os.Exit(2)
	}

	cmd := os.Args[1]
	entry := os.Args[2]
	outputPath := ""
	for i := 3; i < len(os.Args)-1; i++ {
		if os.Args[i] == "-o" {
			outputPath = os.Args[i+1]
		}
	}

	searchPath := resolveSearchPath(entry)

	reg := types.NewRegistry()
	eval := evaluator.New(reg)
	sink := diagnostics.NewSink(os.Stderr)
	loader := newFileLoader(reg, eval, sink, searchPath)

	log.Printf("module=%s phase=resolve status=start build=%s", entry, config.BuildID)
	mod := loader.resolveEntry(entry)
	log.Printf("module=%s phase=resolve status=ok functions=%d statics=%d nodes=%d build=%s",
		entry, len(mod.Functions), len(mod.Statics), loader.freezer.Len(), config.BuildID)

	switch cmd {
	case "check":
		return
	case "build":
		backend := codegen.NoopBackend{}
		out, err := backend.Emit(mod)
		if err != nil {
			fmt.Fprintf(os.Stderr, "codegen (%s): %s\n", backend.Name(), err)
			os.Exit(1)
		}
		if outputPath == "" {
			outputPath = config.TrimSourceExt(entry) + ".out"
		}
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %s\n", outputPath, err)
			os.Exit(1)
		}
		log.Printf("module=%s phase=codegen status=ok backend=%s out=%s build=%s",
			entry, backend.Name(), outputPath, config.BuildID)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", cmd)
		os.Exit(2)
	}
}

// resolveSearchPath builds the directory list §6 specifies: the entry
// module's own directory, then any sunder.yaml manifest's import_path
// entries (sought alongside the entry file), then SUNDER_IMPORT_PATH.
func resolveSearchPath(entry string) []string {
	dir := filepath.Dir(entry)
	path := []string{dir}

	manifestPath := filepath.Join(dir, "sunder.yaml")
	if m, ok, err := config.LoadManifest(manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	} else if ok {
		for _, p := range m.ImportPath {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			path = append(path, p)
		}
	}

	path = append(path, config.ImportSearchPath()...)
	return path
}

// fileLoader resolves imports against the real filesystem, implementing
// resolver.Loader. Grounded on internal/modules/loader.go's
// Processing map[string]bool cycle-detection idiom (mark in progress,
// defer delete, fatal on re-entry) from the teacher, narrowed to this
// repo's simpler single-exports-table-per-module model. A module path is
// canonicalized through the compilation's one Interner before it is used
// as a cache/visiting key, so two spellings of the same path (e.g. via
// different search-path entries resolving to the same symlink target)
// that happen to produce the same cleaned string still collapse onto a
// single cache entry by construction, not by accident of string equality.
type fileLoader struct {
	reg        *types.Registry
	eval       *evaluator.Evaluator
	sink       *diagnostics.Sink
	searchPath []string
	interner   *interner.Interner
	freezer    *interner.Freezer

	cache    map[*interner.Ident]*symbols.SymbolTable
	visiting map[*interner.Ident]bool
}

func newFileLoader(reg *types.Registry, eval *evaluator.Evaluator, sink *diagnostics.Sink, searchPath []string) *fileLoader {
	return &fileLoader{
		reg:        reg,
		eval:       eval,
		sink:       sink,
		searchPath: searchPath,
		interner:   interner.New(),
		freezer:    interner.NewFreezer(),
		cache:      make(map[*interner.Ident]*symbols.SymbolTable),
		visiting:   make(map[*interner.Ident]bool),
	}
}

// resolveEntry parses and resolves the top-level entry file directly
// (it is never itself "imported", so it bypasses the search-path lookup
// Load performs for imports).
func (l *fileLoader) resolveEntry(path string) *tir.Module {
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	mod, _, err := l.parseAndResolve(abs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	return mod
}

// Load resolves importPath relative to fromDir, falling back to each
// directory in the configured search path, parses and fully resolves the
// target module (so transitively-imported modules are resolved before
// their exports are merged, per the resolver.Loader contract), and caches
// the result by absolute path. Per §4.4 "Import merging", a path naming a
// directory imports every .sunder file found under it, recursively.
func (l *fileLoader) Load(fromDir, importPath string) (*symbols.SymbolTable, error) {
	abs, err := l.locate(fromDir, importPath)
	if err != nil {
		return nil, err
	}
	id := l.interner.Intern(abs)
	if exports, ok := l.cache[id]; ok {
		return exports, nil
	}
	if l.visiting[id] {
		return nil, fmt.Errorf("circular import involving %s", abs)
	}
	l.visiting[id] = true
	defer delete(l.visiting, id)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	var exports *symbols.SymbolTable
	if info.IsDir() {
		exports, err = l.loadDir(abs)
	} else {
		_, exports, err = l.parseAndResolve(abs)
	}
	if err != nil {
		return nil, err
	}
	l.cache[id] = exports
	return exports, nil
}

// loadDir implements §4.4's directory-import rule: every .sunder file
// found anywhere under dir is parsed and resolved as its own module, and
// their export tables are merged into one, as if each child had been
// imported individually and the results unioned. Files are visited in
// lexical order so a name collision between two children is reported
// deterministically rather than depending on filesystem walk order.
func (l *fileLoader) loadDir(dir string) (*symbols.SymbolTable, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sunder") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)

	merged := symbols.New(nil)
	for _, f := range files {
		_, exports, err := l.parseAndResolve(f)
		if err != nil {
			return nil, err
		}
		if err := symbols.MergeNamespace(merged, exports); err != nil {
			return nil, fmt.Errorf("merging %s into directory import %s: %w", f, dir, err)
		}
	}
	merged.Freeze()
	return merged, nil
}

func (l *fileLoader) locate(fromDir, importPath string) (string, error) {
	if filepath.IsAbs(importPath) {
		return filepath.Clean(importPath), nil
	}
	candidates := append([]string{fromDir}, l.searchPath...)
	for _, dir := range candidates {
		candidate := filepath.Join(dir, importPath)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("no such module %q (searched %v)", importPath, candidates)
}

func (l *fileLoader) parseAndResolve(abs string) (*tir.Module, *symbols.SymbolTable, error) {
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", abs, err)
	}
	prog, err := parser.ParseProgram(abs, string(src))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", abs, err)
	}
	r := resolver.New(l.reg, l.eval, l.sink, l)
	mod, err := r.ResolveModule(prog)
	if err != nil {
		return nil, nil, err
	}
	// The freezer takes ownership of every top-level node the resolver
	// produced for this module, giving the driver one place to report
	// total compiled-node count from (§9 "Arena ownership") without each
	// resolver call site needing to reason about who owns what past the
	// call that built it.
	for _, fn := range mod.Functions {
		interner.Own(l.freezer, fn)
	}
	for _, st := range mod.Statics {
		interner.Own(l.freezer, st)
	}
	return mod, r.Exports(), nil
}
