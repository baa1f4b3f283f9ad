// Package batch runs the MMPC codec over a set of input files at one or
// more quality levels and measures each operating point. It reproduces
// the encode → decode → evaluate loop used for rate/distortion studies:
// every (file, quality) pair yields a Result, and WriteSummary
// aggregates the results into a CSV report.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-mmpc/imageio"
	"github.com/mrjoshuak/go-mmpc/metrics"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

var (
	// ErrNoInputs is returned when the configuration names no files.
	ErrNoInputs = errors.New("batch: no input files")

	// ErrNoQualities is returned when no quality levels are given.
	ErrNoQualities = errors.New("batch: no quality levels")
)

// Config describes a batch run.
type Config struct {
	// Inputs are the source files (DICOM or PNG/JPEG).
	Inputs []string

	// Qualities are the quality levels to encode each input at.
	Qualities []int

	// OutputDir, if non-empty, receives the .mmpc containers and
	// reconstructed PNGs for each operating point.
	OutputDir string

	// Options are passed to every encode. Nil means defaults.
	Options *mmpc.Options

	// Baseline additionally measures each input with the JPEG 2000
	// reference codec at the same quality.
	Baseline bool
}

// Result is the outcome of one (input, quality) operating point.
// A failed point records its error and zero metrics; the rest of the
// run continues.
type Result struct {
	Input       string
	Quality     int
	EncodedSize int
	RMSE        float64
	PSNR        float64
	MaxAbsErr   int32
	BPP         float64
	Ratio       float64
	Baseline    *metrics.Baseline
	Err         error
}

// Run executes the batch. Inputs are processed by the worker pool, but
// results always come back in input order, qualities innermost.
func Run(cfg Config) ([]Result, error) {
	if len(cfg.Inputs) == 0 {
		return nil, ErrNoInputs
	}
	if len(cfg.Qualities) == 0 {
		return nil, ErrNoQualities
	}

	nq := len(cfg.Qualities)
	results := make([]Result, len(cfg.Inputs)*nq)

	mmpc.ParallelFor(len(cfg.Inputs), func(i int) {
		input := cfg.Inputs[i]

		raster, err := imageio.ReadRaster(input)
		for j, q := range cfg.Qualities {
			r := &results[i*nq+j]
			r.Input = input
			r.Quality = q
			if err != nil {
				r.Err = err
				continue
			}
			runPoint(r, raster, &cfg)
		}
	})

	return results, nil
}

// runPoint encodes, decodes and measures a single operating point.
func runPoint(r *Result, raster *mmpc.Raster, cfg *Config) {
	encoded, err := mmpc.Encode(raster, r.Quality, cfg.Options)
	if err != nil {
		r.Err = err
		return
	}
	r.EncodedSize = len(encoded)

	decoded, err := mmpc.Decode(encoded)
	if err != nil {
		r.Err = err
		return
	}

	if r.RMSE, err = metrics.RMSE(raster, decoded); err != nil {
		r.Err = err
		return
	}
	r.PSNR, _ = metrics.PSNR(raster, decoded)
	r.MaxAbsErr, _ = metrics.MaxAbsError(raster, decoded)
	r.BPP = metrics.BitsPerPixel(raster, len(encoded))
	r.Ratio = metrics.CompressionRatio(raster, len(encoded))

	if cfg.Baseline {
		if r.Baseline, err = metrics.JPEG2000Baseline(raster, r.Quality); err != nil {
			r.Err = err
			return
		}
	}

	if cfg.OutputDir != "" {
		stem := strings.TrimSuffix(filepath.Base(r.Input), filepath.Ext(r.Input))
		name := fmt.Sprintf("%s_q%d", stem, r.Quality)
		if err := imageio.WriteFileAtomic(filepath.Join(cfg.OutputDir, name+".mmpc"), encoded); err != nil {
			r.Err = err
			return
		}
		if err := imageio.WritePNG(filepath.Join(cfg.OutputDir, name+"_rec.png"), decoded); err != nil {
			r.Err = err
			return
		}
	}
}

// WriteCSV emits one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	header := []string{"input", "quality", "size", "rmse", "psnr", "max_abs_err", "bpp", "ratio", "error"}
	hasBaseline := false
	for i := range results {
		if results[i].Baseline != nil {
			hasBaseline = true
			break
		}
	}
	if hasBaseline {
		header = append(header, "j2k_size", "j2k_psnr", "j2k_ratio")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range results {
		r := &results[i]
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		row := []string{
			r.Input,
			strconv.Itoa(r.Quality),
			strconv.Itoa(r.EncodedSize),
			formatFloat(r.RMSE),
			formatFloat(r.PSNR),
			strconv.Itoa(int(r.MaxAbsErr)),
			formatFloat(r.BPP),
			formatFloat(r.Ratio),
			errMsg,
		}
		if hasBaseline {
			if r.Baseline != nil {
				row = append(row,
					strconv.Itoa(r.Baseline.EncodedSize),
					formatFloat(r.Baseline.PSNR),
					formatFloat(r.Baseline.Ratio))
			} else {
				row = append(row, "", "", "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Summary aggregates the successful results of one quality level.
type Summary struct {
	Quality   int
	Files     int
	Failed    int
	MeanPSNR  float64
	MeanBPP   float64
	MeanRatio float64
}

// Summarize groups results by quality level and averages their metrics.
// Failed points count toward Failed and are excluded from the means.
func Summarize(results []Result) []Summary {
	byQuality := make(map[int]*Summary)
	for i := range results {
		r := &results[i]
		s := byQuality[r.Quality]
		if s == nil {
			s = &Summary{Quality: r.Quality}
			byQuality[r.Quality] = s
		}
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Files++
		s.MeanPSNR += r.PSNR
		s.MeanBPP += r.BPP
		s.MeanRatio += r.Ratio
	}

	summaries := make([]Summary, 0, len(byQuality))
	for _, s := range byQuality {
		if s.Files > 0 {
			n := float64(s.Files)
			s.MeanPSNR /= n
			s.MeanBPP /= n
			s.MeanRatio /= n
		}
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Quality < summaries[j].Quality
	})
	return summaries
}

// WriteSummary emits a per-quality CSV aggregation of the results.
func WriteSummary(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"quality", "files", "failed", "mean_psnr", "mean_bpp", "mean_ratio"}); err != nil {
		return err
	}
	for _, s := range Summarize(results) {
		row := []string{
			strconv.Itoa(s.Quality),
			strconv.Itoa(s.Files),
			strconv.Itoa(s.Failed),
			formatFloat(s.MeanPSNR),
			formatFloat(s.MeanBPP),
			formatFloat(s.MeanRatio),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
