package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"

	"github.com/FitrahHaque/Huffman-Archiver/engine"
	"github.com/FitrahHaque/Huffman-Archiver/logger"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "inspect", "help"}

// aliases of the archiver's original short commands
var aliases = map[string]string{
	"-ar": "compress",
	"-de": "decompress",
}

func main() {
	os.Exit(run(os.Args, colorable.NewColorableStdout(), colorable.NewColorableStderr()))
}

func run(args []string, stdout, stderr io.Writer) int {
	application := args[0]
	if len(args) == 1 {
		fmt.Fprintln(stderr, "Please provide commands")
		return 1
	}
	commandFlags := make([]string, 0, 2*len(Commands))
	for _, c := range Commands {
		commandFlags = append(commandFlags, "--"+c, "-"+c)
	}
	for alias := range aliases {
		commandFlags = append(commandFlags, alias)
	}
	selected := findIntersection(commandFlags, args[1:])
	if len(selected) > 1 {
		fmt.Fprintln(stderr, "Specify a single command")
		return 1
	}

	command, rest := "compress", args[1:]
	if len(selected) == 0 {
		fmt.Fprintln(stdout, "No command is selected. Compression by default")
	} else {
		command = commandName(selected[0])
		rest = without(args[1:], selected[0])
	}

	switch command {
	case "compress":
		return runCompress(application, rest, stdout, stderr)
	case "decompress":
		return runDecompress(application, rest, stdout, stderr)
	case "benchmark":
		return runBenchmark(application, rest, stdout, stderr)
	case "inspect":
		return runInspect(application, rest, stdout, stderr)
	}
	fmt.Fprintf(stderr, "Usage of %s:\n", application)
	fmt.Fprintf(stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
	fmt.Fprintf(stderr, "Aliases:\n\t-ar (compress), -de (decompress)\n")
	return 0
}

func commandName(arg string) string {
	if name, ok := aliases[arg]; ok {
		return name
	}
	return strings.TrimLeft(arg, "-")
}

func newFlagSet(application, command, options string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s --%s [OPTIONS] <file(s)>\n", application, command)
		fmt.Fprintf(stderr, "Valid options include:\n\t%s\n", options)
		fmt.Fprintf(stderr, "Flag:\n")
		fs.PrintDefaults()
	}
	return fs
}

func parseFiles(fs *flag.FlagSet, args []string, stderr io.Writer) ([]string, bool) {
	if err := fs.Parse(args); err != nil {
		return nil, false
	}
	files := collectFiles(fs.Args())
	if len(files) == 0 {
		fmt.Fprintf(stderr, "No file provided for %s\n", fs.Name())
		return nil, false
	}
	return files, true
}

func runCompress(application string, args []string, stdout, stderr io.Writer) int {
	compressFS := newFlagSet(application, "compress", "algorithm, delete, outfileext, verify, progress, verbose, help", stderr)
	algorithmCompress := compressFS.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) to use, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
	deleteAfterCompress := compressFS.Bool("delete", false, "Delete file after compression")
	outputFileExtension := compressFS.String("outfileext", engine.DefaultFileExtension, "File extension used for the result")
	verifyCompress := compressFS.Bool("verify", false, "Decode the archive in memory before writing it")
	progress := compressFS.Bool("progress", true, "Show a progress bar on terminals")
	verbose := compressFS.Bool("verbose", false, "Print debug traces")
	files, ok := parseFiles(compressFS, args, stderr)
	if !ok {
		return 1
	}
	log := logger.NewWithWriter(stderr, *verbose)
	algorithmsChosen := strings.Split(*algorithmCompress, ",")
	trimSpace(algorithmsChosen)
	fmt.Fprintln(stdout, "Processing...")
	results := engine.CompressFiles(files, engine.Options{
		Algorithms:    algorithmsChosen,
		FileExtension: *outputFileExtension,
		Verify:        *verifyCompress,
		Progress:      *progress,
		Logger:        log,
	})
	return finish(results, *deleteAfterCompress, stdout, log)
}

func runDecompress(application string, args []string, stdout, stderr io.Writer) int {
	decompressFS := newFlagSet(application, "decompress", "algorithm, delete, outfileext, outprefix, progress, verbose, help", stderr)
	algorithmDecompress := decompressFS.String("algorithm", "huffman", "Algorithm(s) the archive was built with, in compression order")
	deleteAfterDecompress := decompressFS.Bool("delete", false, "Delete archive after extraction")
	inputFileExtension := decompressFS.String("outfileext", engine.DefaultFileExtension, "File extension archives carry")
	outPrefix := decompressFS.String("outprefix", engine.DefaultOutPrefix, "Prefix for the extracted file name")
	progress := decompressFS.Bool("progress", true, "Show a progress bar on terminals")
	verbose := decompressFS.Bool("verbose", false, "Print debug traces")
	files, ok := parseFiles(decompressFS, args, stderr)
	if !ok {
		return 1
	}
	log := logger.NewWithWriter(stderr, *verbose)
	algorithmsChosen := strings.Split(*algorithmDecompress, ",")
	trimSpace(algorithmsChosen)
	fmt.Fprintln(stdout, "Processing...")
	results := engine.DecompressFiles(files, engine.Options{
		Algorithms:    algorithmsChosen,
		FileExtension: *inputFileExtension,
		OutPrefix:     *outPrefix,
		Progress:      *progress,
		Logger:        log,
	})
	return finish(results, *deleteAfterDecompress, stdout, log)
}

func runBenchmark(application string, args []string, stdout, stderr io.Writer) int {
	benchmarkFS := newFlagSet(application, "benchmark", "rounds, verbose, help", stderr)
	rounds := benchmarkFS.Int("rounds", 5, "Encode/decode rounds per codec")
	verbose := benchmarkFS.Bool("verbose", false, "Print debug traces")
	files, ok := parseFiles(benchmarkFS, args, stderr)
	if !ok {
		return 1
	}
	log := logger.NewWithWriter(stderr, *verbose)
	results := engine.BenchmarkFiles(files, *rounds, engine.Options{Logger: log})
	if err := engine.PrintBenchmark(stdout, results); err != nil {
		log.Errorf("could not print benchmark: %v", err)
		return 1
	}
	for _, r := range results {
		if r.Err != nil || !r.RoundTrip {
			return 1
		}
	}
	return 0
}

func runInspect(application string, args []string, stdout, stderr io.Writer) int {
	inspectFS := newFlagSet(application, "inspect", "outfileext, help", stderr)
	inputFileExtension := inspectFS.String("outfileext", engine.DefaultFileExtension, "File extension archives carry")
	files, ok := parseFiles(inspectFS, args, stderr)
	if !ok {
		return 1
	}
	log := logger.NewWithWriter(stderr, false)
	status := 0
	for _, r := range engine.InspectFiles(files, engine.Options{FileExtension: *inputFileExtension}) {
		if r.Err != nil {
			status = 1
		}
		if err := engine.PrintInspect(stdout, r); err != nil {
			log.Errorf("could not print %s: %v", r.File, err)
			return 1
		}
	}
	return status
}

func finish(results []engine.Result, deleteSources bool, stdout io.Writer, log logger.Logger) int {
	failed := engine.PrintResults(stdout, results)
	if deleteSources {
		var done []string
		for _, r := range results {
			if r.Err == nil {
				done = append(done, r.Source)
			}
		}
		if err := deleteFiles(done); err != nil {
			log.Errorf("could not delete source: %v", err)
			return 1
		}
		for _, file := range done {
			log.Infof("Removed %s", file)
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func without(args []string, drop string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg != drop {
			out = append(out, arg)
		}
	}
	return out
}

// collectFiles accepts files as separate arguments or comma-separated.
func collectFiles(args []string) []string {
	var files []string
	for _, arg := range args {
		parts := strings.Split(arg, ",")
		trimSpace(parts)
		for _, part := range parts {
			if part != "" {
				files = append(files, part)
			}
		}
	}
	return files
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}

func deleteFiles(files []string) error {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return err
		}
	}
	return nil
}
