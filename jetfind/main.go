package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/pkg/profile"

	"github.com/decibelcooper/jetsweep"
	"github.com/decibelcooper/jetsweep/analysis"
	"github.com/decibelcooper/jetsweep/gen"
)

const (
	defaultSettingsDir = "cmnd"
	defaultExponent    = 1
	defaultOutput      = "out/test.root"
)

var (
	generator   = flag.String("gen", "toy", "event source: toy or hepmc")
	hepmcFile   = flag.String("hepmc", "", "HepMC2 ASCII file replayed by -gen hepmc")
	ghostArea   = flag.Float64("ghost-area", analysis.DefaultGhostArea, "area of one ghost cell, 0 disables jet areas")
	ghostRepeat = flag.Int("ghost-repeat", analysis.DefaultGhostRepeat, "number of ghost sets per event")
	ptMin       = flag.Float64("ptmin", analysis.JetPtMin, "minimum jet transverse momentum in GeV")
	maxRejects  = flag.Int("max-rejects", 1000, "consecutive rejected events before giving up, 0 for no limit")
	doProfile   = flag.Bool("profile", false, "write a CPU profile to the current directory")
	radii       = &jetsweep.RadiusFlags{Radii: jetsweep.DefaultRadii(0.1, 10)}
)

func init() {
	flag.Var(radii, "radius", "jet radius, repeatable or comma separated, ascending")
}

// profileDir receives the -profile output.
var profileDir = "."

func printUsage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [options] [<xml-config-dir> <event-count-exponent> <output-path>]

Generates 10^<event-count-exponent> events, clusters them with every jet
algorithm at every radius and writes the histograms to <output-path>
(default %s).

options:
`,
		os.Args[0], defaultOutput,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("jetfind: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()

	settingsDir := defaultSettingsDir
	exponent := defaultExponent
	output := defaultOutput
	explicitDir := false
	switch flag.NArg() {
	case 0:
	case 3:
		settingsDir = flag.Arg(0)
		explicitDir = true
		exp, err := strconv.Atoi(flag.Arg(1))
		if err != nil || exp < 0 {
			printUsage()
			log.Printf("invalid event count exponent %q", flag.Arg(1))
			os.Exit(-1)
		}
		exponent = exp
		output = flag.Arg(2)
	default:
		printUsage()
		log.Printf("Invalid arguments")
		os.Exit(-1)
	}

	if err := run(settingsDir, explicitDir, exponent, output); err != nil {
		log.Printf("%v", err)
		os.Exit(-1)
	}
}

// toyDefaults seed every run from the clock. Settings files may override
// them.
var toyDefaults = []string{
	"Random:setSeed = on",
	"Random:seed = 0",
}

func newGenerator(name, hepmcFile string) (gen.Generator, error) {
	switch name {
	case "toy":
		toy := gen.NewToy()
		for _, setting := range toyDefaults {
			if err := toy.ReadString(setting); err != nil {
				return nil, err
			}
		}
		return toy, nil
	case "hepmc":
		return &gen.HepMC{File: hepmcFile}, nil
	}
	return nil, fmt.Errorf("unknown generator %q", name)
}

func run(settingsDir string, explicitDir bool, exponent int, output string) error {
	if *doProfile {
		defer profile.Start(profile.ProfilePath(profileDir)).Stop()
	}

	g, err := newGenerator(*generator, *hepmcFile)
	if err != nil {
		return err
	}
	if c, ok := g.(io.Closer); ok {
		defer c.Close()
	}

	n, err := gen.ReadSettingsDir(settingsDir, g)
	switch {
	case err == nil:
		log.Printf("read %d settings from %s", n, settingsDir)
	case errors.Is(err, fs.ErrNotExist) && !explicitDir:
		log.Printf("no settings directory %s, using generator defaults", settingsDir)
	default:
		return err
	}

	if err := g.Init(); err != nil {
		return fmt.Errorf("could not initialize generator: %w", err)
	}

	p, err := analysis.NewPipeline(g, analysis.Config{
		Radii:       radii.Radii,
		GhostArea:   *ghostArea,
		GhostRepeat: *ghostRepeat,
		PtMin:       *ptMin,
		MaxRejects:  *maxRejects,
	})
	if err != nil {
		return err
	}

	nEvents := int(math.Pow10(exponent))
	runErr := p.Run(nEvents)

	st := p.Stats
	log.Printf("processed %d events (%d rejected, %d outside acceptance, %d layout mismatches)",
		st.Events, st.Rejected, st.OutOfAcceptance, st.LayoutMismatches)
	log.Printf("%d clusterings over %d configurations", st.Clusterings, p.Grid.Size())
	for _, alg := range jetsweep.Algorithms {
		if n := st.Skipped[alg]; n > 0 {
			log.Printf("%s: %d event/radius pairs without jets", alg.Title(), n)
		}
	}

	if errors.Is(runErr, gen.ErrExhausted) {
		log.Printf("event source exhausted after %d events", st.Events)
		runErr = nil
	}
	if runErr != nil {
		return runErr
	}

	if err := analysis.WriteROOT(output, p.Hists); err != nil {
		return err
	}
	log.Printf("wrote %s", output)
	return nil
}
