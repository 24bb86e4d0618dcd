package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"

	"github.com/decibelcooper/jetsweep"
	"github.com/decibelcooper/jetsweep/report"
)

const defaultInput = "out/addedpythia.root"

var (
	outDir    = flag.String("o", "tmp", "output directory")
	ref       = flag.Int("ref", 7, "index of the reference radius bin")
	ext       = flag.String("ext", "png", "image format: png, pdf or svg")
	html      = flag.Bool("html", false, "also write an interactive radius.html page")
	maps      = flag.Bool("maps", false, "also write a radius heat map per algorithm and observable")
	doProfile = flag.Bool("profile", false, "write a CPU profile to the current directory")
)

// profileDir receives the -profile output.
var profileDir = "."

func printUsage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [options] [<input.root>]

Draws the distributions at the reference radius and the mean of every
observable against radius from a file written by jetfind
(default %s).

options:
`,
		os.Args[0], defaultInput,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("jetplot: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()

	input := defaultInput
	switch flag.NArg() {
	case 0:
	case 1:
		input = flag.Arg(0)
	default:
		printUsage()
		log.Printf("Invalid arguments")
		os.Exit(-1)
	}

	if err := run(input); err != nil {
		log.Printf("%v", err)
		os.Exit(-1)
	}
}

func run(input string) error {
	if *doProfile {
		defer profile.Start(profile.ProfilePath(profileDir)).Stop()
	}

	res, err := report.Load(input)
	if err != nil {
		return err
	}

	files, err := report.RenderAll(res, report.Options{OutDir: *outDir, Ref: *ref, Ext: *ext})
	if err != nil {
		return err
	}
	log.Printf("wrote %d plots to %s", len(files), *outDir)

	if *html {
		if err := writeHTML(res, filepath.Join(*outDir, "radius.html")); err != nil {
			return err
		}
	}
	if *maps {
		if err := writeMaps(res); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(res *report.Results, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	if err := report.WriteHTML(f, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close page: %w", err)
	}
	log.Printf("wrote %s", fname)
	return nil
}

func writeMaps(res *report.Results) error {
	for _, spec := range report.Plots {
		for _, alg := range jetsweep.Algorithms {
			fname := filepath.Join(*outDir, jetsweep.HistName(alg, spec.Obs)+"map.png")
			f, err := os.Create(fname)
			if err != nil {
				return fmt.Errorf("could not create heat map: %w", err)
			}
			title := fmt.Sprintf("%s - %s", spec.Title, alg.Title())
			if err := report.RenderHeatMap(f, res.Hist(alg, spec.Obs), res.Radii, title, spec.XLabel); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("could not close heat map: %w", err)
			}
		}
	}
	return nil
}
