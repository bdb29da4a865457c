// Command walink is a diagnostic CLI around internal/reloc. It is ambient
// scaffolding — spec.md §1 puts CLI/config/logging scaffolding out of
// scope for the core — kept minimal and structured the way the teacher's
// own cmd/wazero is: a thin flag-based dispatcher over doMain, so the bulk
// of the logic stays unit-testable without invoking os.Exit.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/go-walink/walink/internal/relinkcfg"
	"github.com/go-walink/walink/internal/reloc"
)

// version is overridden at build time via -ldflags, matching the
// teacher's cmd/wazero version plumbing.
var version = "dev"

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

func doMain(stdout, stderr io.Writer) int {
	flag.CommandLine.SetOutput(stderr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")
	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stderr)
		return 0
	}

	cfg := relinkcfg.Load()
	log := newLogger(stderr, cfg.LogLevel)

	switch flag.Arg(0) {
	case "check":
		return doCheck(flag.Args()[1:], stdout, log)
	case "version":
		fmt.Fprintln(stdout, version)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown subcommand %q\n", flag.Arg(0))
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "walink is a diagnostic CLI for the static relocation linker.")
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "\twalink check <fixture.json>   link a synthetic fixture and print the patched bytes")
	fmt.Fprintln(w, "\twalink version                print the walink version")
}

func newLogger(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

func doCheck(args []string, stdout io.Writer, log *logrus.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "usage: walink check <fixture.json>")
		return 1
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.WithError(err).Error("opening fixture")
		return 1
	}
	defer f.Close()

	fx, err := loadFixture(f)
	if err != nil {
		log.WithError(err).Error("loading fixture")
		return 1
	}

	exitCode := 0
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("link_module aborted")
				exitCode = 1
			}
		}()
		exitCode = runFixture(fx, stdout, log)
	}()
	return exitCode
}

func runFixture(fx *fixture, stdout io.Writer, log *logrus.Logger) int {
	arena, functions, sections := materialize(fx)

	libcalls, err := buildLibcallTable(fx.Libcalls)
	if err != nil {
		log.WithError(err).Error("building libcall table")
		return 1
	}

	functionRelocs, err := buildGroups(fx.FunctionRelocations)
	if err != nil {
		log.WithError(err).Error("building function relocations")
		return 1
	}
	sectionRelocs, err := buildGroups(fx.SectionRelocations)
	if err != nil {
		log.WithError(err).Error("building section relocations")
		return 1
	}

	entryLen := fx.TrampolineEntryLength
	if entryLen == 0 {
		entryLen = relinkcfg.Load().TrampolineEntryLength
	}

	total := 0
	for _, g := range functionRelocs {
		total += len(g.Records)
	}
	for _, g := range sectionRelocs {
		total += len(g.Records)
	}
	log.WithField("relocations", total).Debug("linking module")

	// Sections are logged before functions, matching LinkModule's own
	// two-pass ordering (spec.md §9).
	logGroups(log, func(i uint32) uintptr { return sections[i].Base }, sectionRelocs)
	logGroups(log, func(i uint32) uintptr { return functions[i].Base }, functionRelocs)

	fnGroups := make([]reloc.FunctionRelocations, len(functionRelocs))
	for i, g := range functionRelocs {
		fnGroups[i] = reloc.FunctionRelocations{Index: g.Index, Records: g.Records}
	}
	secGroups := make([]reloc.SectionRelocations, len(sectionRelocs))
	for i, g := range sectionRelocs {
		secGroups[i] = reloc.SectionRelocations{Index: g.Index, Records: g.Records}
	}

	reloc.LinkModule(reloc.ModuleInfo{}, functions, fnGroups, sections, secGroups,
		fx.TrampolineSectionIndex, uintptr(entryLen), libcalls)

	fmt.Fprintln(stdout, hex.EncodeToString(arena.buf))
	log.Info("link_module completed")
	return 0
}

type recordGroup struct {
	Index   uint32
	Records []reloc.Record
}

// logGroups emits one Debug line per relocation record, carrying kind,
// target, offset and the resolved write address, ahead of LinkModule
// actually applying it. base resolves a group's index to its body's
// starting address.
func logGroups(log *logrus.Logger, base func(index uint32) uintptr, groups []recordGroup) {
	for _, g := range groups {
		b := base(g.Index)
		for _, r := range g.Records {
			jr, ok := r.(jsonRecord)
			if !ok {
				continue
			}
			log.WithFields(logrus.Fields{
				"kind":       jr.kind,
				"target":     jr.target,
				"offset":     jr.offset,
				"write_addr": b + jr.offset,
			}).Debug("applying relocation")
		}
	}
}

func buildGroups(specs []relocationGroupSpec) ([]recordGroup, error) {
	groups := make([]recordGroup, len(specs))
	for i, g := range specs {
		records := make([]reloc.Record, len(g.Records))
		for j, rs := range g.Records {
			r, err := buildRecord(rs)
			if err != nil {
				return nil, fmt.Errorf("group %d record %d: %w", g.Index, j, err)
			}
			records[j] = r
		}
		groups[i] = recordGroup{Index: g.Index, Records: records}
	}
	return groups, nil
}
