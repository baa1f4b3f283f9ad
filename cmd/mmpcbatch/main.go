// mmpcbatch encodes a directory of images at several quality levels,
// measures every operating point and writes CSV reports.
//
// Usage:
//
//	mmpcbatch [options] -in <dir> -out <dir>
//
// Options:
//
//	-in <dir>       input directory (.dcm, .png, .jpg files)
//	-out <dir>      output directory for containers, reconstructions and reports
//	-q <list>       comma-separated quality levels (default "10,30,60")
//	-b <n>          transform block size (default 8)
//	-baseline       also measure a JPEG 2000 reference point per file
//
// The output directory receives <name>_q<N>.mmpc and <name>_q<N>_rec.png
// per operating point, plus results.csv (per point) and summary.csv
// (per quality level).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-mmpc/batch"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

func main() {
	inDir := flag.String("in", "", "input directory")
	outDir := flag.String("out", "", "output directory")
	qualities := flag.String("q", "10,30,60", "comma-separated quality levels")
	blockSize := flag.Int("b", mmpc.DefaultBlockSize, "transform block size")
	baseline := flag.Bool("baseline", false, "measure JPEG 2000 reference points")
	flag.Parse()

	if *inDir == "" || *outDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	qs, err := parseQualities(*qualities)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(2)
	}

	inputs, err := collectInputs(*inDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(2)
	}
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "mmpcbatch: no input images in %s\n", *inDir)
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(2)
	}

	results, err := batch.Run(batch.Config{
		Inputs:    inputs,
		Qualities: qs,
		OutputDir: *outDir,
		Options:   &mmpc.Options{BlockSize: *blockSize},
		Baseline:  *baseline,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(1)
	}

	if err := writeReport(filepath.Join(*outDir, "results.csv"), results, batch.WriteCSV); err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(1)
	}
	if err := writeReport(filepath.Join(*outDir, "summary.csv"), results, batch.WriteSummary); err != nil {
		fmt.Fprintf(os.Stderr, "mmpcbatch: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "mmpcbatch: %s q=%d: %v\n",
				results[i].Input, results[i].Quality, results[i].Err)
		}
	}
	fmt.Printf("%d operating points (%d failed), reports in %s\n", len(results), failed, *outDir)
	if failed > 0 {
		os.Exit(1)
	}
}

func parseQualities(s string) ([]int, error) {
	var qs []int
	for _, part := range strings.Split(s, ",") {
		q, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad quality %q", part)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// collectInputs lists the supported image files in dir, sorted by name.
func collectInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".dcm", ".png", ".jpg", ".jpeg", ".gif":
			inputs = append(inputs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

func writeReport(path string, results []batch.Result, write func(w io.Writer, results []batch.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
