// mmpccheck validates MMPC container files.
//
// Usage:
//
//	mmpccheck [-q|--quiet] [-s|--strict] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet   Only output errors. Exit code indicates pass/fail.
//	-s, --strict  Additionally run a full decode of each container.
//	-h, --help    Show this help message.
//	--version     Show version information.
//
// Exit codes:
//
//	0: All files valid
//	1: One or more files invalid
//	2: Error (file not found, etc.)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrjoshuak/go-mmpc/compression"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

const version = "1.0.0"

// ValidationIssue represents a single validation problem found in a file.
type ValidationIssue struct {
	Severity string // "error" or "warning"
	Message  string
}

// ValidationResult contains all validation results for a file.
type ValidationResult struct {
	Filename string
	Issues   []ValidationIssue
	Checks   []string // List of checks performed
}

// IsValid returns true if there are no errors (warnings are ok).
func (r *ValidationResult) IsValid() bool {
	for _, issue := range r.Issues {
		if issue.Severity == "error" {
			return false
		}
	}
	return true
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "error", Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "warning", Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addCheck(name string) {
	r.Checks = append(r.Checks, name)
}

func main() {
	quiet := false
	strict := false
	files := []string{}

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-q", "--quiet":
			quiet = true
		case "-s", "--strict":
			strict = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("mmpccheck version %s\n", version)
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		printUsage()
		os.Exit(2)
	}

	allValid := true
	for _, filename := range files {
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmpccheck: %v\n", err)
			os.Exit(2)
		}

		result := validate(filename, data, strict)
		if !result.IsValid() {
			allValid = false
		}
		report(&result, quiet)
	}

	if !allValid {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: mmpccheck [-q|--quiet] [-s|--strict] <filename> [<filename> ...]\n")
}

// validate runs the container checks on a single file.
func validate(filename string, data []byte, strict bool) ValidationResult {
	result := ValidationResult{Filename: filename}

	result.addCheck("header")
	var h mmpc.Header
	if err := h.UnmarshalBinary(data); err != nil {
		result.addError("%v", err)
		return result
	}

	result.addCheck("header fields")
	if h.Width == 0 || h.Height == 0 {
		result.addError("zero image dimensions %dx%d", h.Width, h.Height)
	}
	if h.BlockSize == 0 {
		result.addError("zero block size")
	}
	if h.BitDepth < 1 || h.BitDepth > 16 {
		result.addError("bit depth %d outside [1, 16]", h.BitDepth)
	}
	if h.QuantStep == 0 {
		result.addError("zero quantization step")
	}
	if h.BlockSize != 0 && h.BlockSize != mmpc.DefaultBlockSize {
		result.addWarning("non-default block size %d", h.BlockSize)
	}

	result.addCheck("payload length")
	got := len(data) - mmpc.HeaderSize
	if got < int(h.PayloadLength) {
		result.addError("payload has %d bytes, header promises %d", got, h.PayloadLength)
	} else if got > int(h.PayloadLength) {
		result.addWarning("%d trailing bytes after payload", got-int(h.PayloadLength))
	}

	if !result.IsValid() {
		return result
	}

	result.addCheck("payload inflate")
	payload := data[mmpc.HeaderSize : mmpc.HeaderSize+int(h.PayloadLength)]
	rle, err := compression.DeflateDecompress(payload)
	if err != nil {
		result.addError("%v", err)
		return result
	}

	result.addCheck("coefficient stream")
	stream, err := compression.RunLengthDecode(rle)
	if err != nil {
		result.addError("%v", err)
		return result
	}
	elemBytes := 2 * int(h.BlockSize) * int(h.BlockSize)
	if len(stream)%elemBytes != 0 {
		result.addError("coefficient stream of %d bytes is not a whole number of blocks", len(stream))
	}

	if strict {
		result.addCheck("full decode")
		if _, err := mmpc.Decode(data); err != nil {
			result.addError("decode: %v", err)
		}
	}

	return result
}

func report(result *ValidationResult, quiet bool) {
	if result.IsValid() && quiet {
		return
	}

	status := "OK"
	if !result.IsValid() {
		status = "FAIL"
	}
	fmt.Printf("%s: %s (%d checks)\n", result.Filename, status, len(result.Checks))
	for _, issue := range result.Issues {
		fmt.Printf("  %s: %s\n", issue.Severity, issue.Message)
	}
}
