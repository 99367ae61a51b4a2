// Command novac is the Nova compiler driver: it reads a source file,
// runs it through the core pipeline, and writes the resulting x86-64
// assembly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xyproto/env/v2"
	"github.com/xyproto/novac/compile"
	"github.com/xyproto/novac/compilerr"
)

const versionString = "novac 1.0.0"

// verboseMode gates the stage-tracing helpers throughout the driver.
var verboseMode bool

func main() {
	var (
		outputFlag       = flag.String("o", "out.s", "assembly output path")
		outputLongFlag   = flag.String("output", "out.s", "assembly output path")
		targetFlag       = flag.String("target", "x86_64", "target ISA (x86_64, arm64)")
		verboseFlag      = flag.Bool("v", env.Bool("NOVAC_VERBOSE", false), "verbose mode (show pipeline stage info)")
		verboseLongFlag  = flag.Bool("verbose", false, "verbose mode (show pipeline stage info)")
		versionFlag      = flag.Bool("V", false, "print version information and exit")
		versionLongFlag  = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *versionFlag || *versionLongFlag {
		fmt.Println(versionString)
		os.Exit(0)
	}

	verboseMode = *verboseFlag || *verboseLongFlag

	outputPath := *outputFlag
	if *outputLongFlag != "out.s" {
		outputPath = *outputLongFlag
	}

	target, ok := compile.ParseTarget(*targetFlag)
	if !ok {
		log.Fatalf("novac: unsupported --target %q (supported: x86_64, arm64)", *targetFlag)
	}
	if target == compile.ARM64 {
		log.Fatalf("novac: --target arm64 is not implemented")
	}

	inputFiles := flag.Args()
	if len(inputFiles) == 0 {
		fmt.Fprintln(os.Stderr, "novac: no input file")
		os.Exit(1)
	}
	inputPath := inputFiles[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("novac: %v", err)
	}

	if verboseMode {
		fmt.Fprintf(os.Stderr, "novac: compiling %s for %s\n", inputPath, target)
	}

	asm, stats, err := compile.Source(string(source), target)
	if err != nil {
		reportAndExit(err)
	}

	if verboseMode {
		fmt.Fprintf(os.Stderr, "novac: %d tokens, %d functions\n", stats.Tokens, stats.Functions)
	}

	if err := os.WriteFile(outputPath, []byte(asm), 0o644); err != nil {
		log.Fatalf("novac: %v", err)
	}
	fmt.Println("wrote", outputPath)
}

// reportAndExit prints a pipeline Diagnostic uniformly, regardless of
// which of the three error kinds it is, and exits non-zero. An error
// that is not a compilerr.Diagnostic is reported as an internal error.
func reportAndExit(err error) {
	if _, ok := err.(compilerr.Diagnostic); ok {
		fmt.Fprintf(os.Stderr, "novac: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "novac: internal error: %v\n", err)
	}
	os.Exit(1)
}
