package gen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/stat/distuv"
)

// Toy is a stand-in for a full hard-QCD event generator. It produces 2→2
// parton scatterings with a steeply falling pT spectrum, fragments each
// outgoing parton into a collimated spray of massless hadrons and adds a
// soft underlying event.
//
// Recognised settings (case-insensitive):
//
//	Beams:eCM             centre-of-mass energy in GeV (13000)
//	HardQCD:all           must be on
//	PhaseSpace:pTHatMin   minimum hard-scattering pT in GeV (200)
//	Random:setSeed        use Random:seed instead of the built-in seed
//	Random:seed           seed, 0 seeds from the clock
//	Toy:nUnderlying       mean underlying-event multiplicity (150)
//	Toy:coneWidth         angular spread of the fragmentation (0.15)
type Toy struct {
	ECM         float64
	HardQCD     bool
	PTHatMin    float64
	SetSeed     bool
	Seed        uint64
	NUnderlying float64
	ConeWidth   float64

	src    *rand.PCG
	rnd    *rand.Rand
	pTHat  distuv.Pareto
	yHat   distuv.Uniform
	phi    distuv.Uniform
	smear  distuv.Normal
	frac   distuv.Exponential
	uePt   distuv.Exponential
	ueEta  distuv.Uniform
	record Record
	ready  bool
}

const (
	defaultSeed  = 19780503
	maxHardRap   = 2.5
	maxSoftEta   = 5.0
	meanSoftPt   = 0.7
	pTHatPower   = 4
	hadronsPerLn = 4.0
)

// NewToy returns a Toy generator with default settings.
func NewToy() *Toy {
	return &Toy{
		ECM:         13000,
		HardQCD:     true,
		PTHatMin:    200,
		Seed:        defaultSeed,
		NUnderlying: 150,
		ConeWidth:   0.15,
	}
}

func (t *Toy) ReadString(setting string) error {
	key, value, ok, err := ParseSetting(setting)
	if err != nil || !ok {
		return err
	}

	switch key {
	case "beams:ecm":
		t.ECM, err = parseFloat(key, value)
	case "hardqcd:all":
		t.HardQCD, err = parseFlag(key, value)
	case "phasespace:pthatmin":
		t.PTHatMin, err = parseFloat(key, value)
	case "random:setseed":
		t.SetSeed, err = parseFlag(key, value)
	case "random:seed":
		var v uint64
		v, err = parseUint(key, value)
		t.Seed = v
	case "toy:nunderlying":
		t.NUnderlying, err = parseFloat(key, value)
	case "toy:conewidth":
		t.ConeWidth, err = parseFloat(key, value)
	default:
		return fmt.Errorf("gen: unknown setting %q", key)
	}
	return err
}

func (t *Toy) Init() error {
	switch {
	case !t.HardQCD:
		return fmt.Errorf("gen: toy generator only implements HardQCD:all = on")
	case t.ECM <= 0:
		return fmt.Errorf("gen: invalid Beams:eCM %v", t.ECM)
	case t.PTHatMin <= 0 || 2*t.PTHatMin >= t.ECM:
		return fmt.Errorf("gen: invalid PhaseSpace:pTHatMin %v", t.PTHatMin)
	case t.NUnderlying < 0 || t.ConeWidth < 0:
		return fmt.Errorf("gen: negative toy parameter")
	}

	seed := uint64(defaultSeed)
	if t.SetSeed {
		seed = t.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
	}
	t.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	t.rnd = rand.New(t.src)

	t.pTHat = distuv.Pareto{Xm: t.PTHatMin, Alpha: pTHatPower, Src: t.src}
	t.yHat = distuv.Uniform{Min: -maxHardRap, Max: maxHardRap, Src: t.src}
	t.phi = distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: t.src}
	t.smear = distuv.Normal{Mu: 0, Sigma: t.ConeWidth, Src: t.src}
	t.frac = distuv.Exponential{Rate: 1, Src: t.src}
	t.uePt = distuv.Exponential{Rate: 1 / meanSoftPt, Src: t.src}
	t.ueEta = distuv.Uniform{Min: -maxSoftEta, Max: maxSoftEta, Src: t.src}
	t.record = make(Record, 0, 512)
	t.ready = true
	return nil
}

func (t *Toy) Next() (bool, error) {
	if !t.ready {
		return false, fmt.Errorf("gen: toy generator not initialized")
	}
	t.record = t.record[:0]

	pt := t.pTHat.Rand()
	y1, y2 := t.yHat.Rand(), t.yHat.Rand()
	phi := t.phi.Rand()

	ebeam := t.ECM / 2
	x1 := pt / t.ECM * (math.Exp(y1) + math.Exp(y2))
	x2 := pt / t.ECM * (math.Exp(-y1) + math.Exp(-y2))
	if x1 >= 1 || x2 >= 1 {
		return false, nil
	}

	id1, id2 := t.flavour(), t.flavour()
	t.record = append(t.record,
		Particle{ID: 90, Status: StatusSystem, P: fmom.NewPxPyPzE(0, 0, 0, t.ECM)},
		Particle{ID: 2212, Status: StatusBeam, P: fmom.NewPxPyPzE(0, 0, ebeam, ebeam), Charge: 1},
		Particle{ID: 2212, Status: StatusBeam, P: fmom.NewPxPyPzE(0, 0, -ebeam, ebeam), Charge: 1},
		Particle{ID: id1, Status: StatusIncoming, P: fmom.NewPxPyPzE(0, 0, x1*ebeam, x1*ebeam), Charge: Charge(id1)},
		Particle{ID: id2, Status: StatusIncoming, P: fmom.NewPxPyPzE(0, 0, -x2*ebeam, x2*ebeam), Charge: Charge(id2)},
		Particle{ID: id1, Status: StatusHardOutgoing, P: massless(pt, y1, phi), Charge: Charge(id1)},
		Particle{ID: id2, Status: StatusHardOutgoing, P: massless(pt, y2, phi+math.Pi), Charge: Charge(id2)},
	)

	t.fragment(5)
	t.fragment(6)
	t.underlying()
	return true, nil
}

func (t *Toy) Record() Record { return t.record }

// fragment splits the outgoing parton at index i into hadrons sharing its
// transverse momentum.
func (t *Toy) fragment(i int) {
	parton := t.record[i].P
	pt, eta, phi := parton.Pt(), parton.Eta(), parton.Phi()

	lambda := hadronsPerLn * math.Log(math.Max(parton.E(), math.E))
	n := int(distuv.Poisson{Lambda: lambda, Src: t.src}.Rand())
	if n < 1 {
		n = 1
	}

	weights := make([]float64, n)
	sum := 0.0
	for k := range weights {
		weights[k] = t.frac.Rand()
		sum += weights[k]
	}
	for _, w := range weights {
		id, charge := t.species()
		p := massless(pt*w/sum, eta+t.smear.Rand(), phi+t.smear.Rand())
		t.record = append(t.record, Particle{ID: id, Status: StatusHadron, P: p, Charge: charge})
	}
}

func (t *Toy) underlying() {
	n := 0
	if t.NUnderlying > 0 {
		n = int(distuv.Poisson{Lambda: t.NUnderlying, Src: t.src}.Rand())
	}
	for k := 0; k < n; k++ {
		id, charge := t.species()
		p := massless(t.uePt.Rand(), t.ueEta.Rand(), t.phi.Rand())
		t.record = append(t.record, Particle{ID: id, Status: StatusUnderlying, P: p, Charge: charge})
	}
}

// flavour picks a gluon half of the time and a light (anti)quark otherwise.
func (t *Toy) flavour() int {
	if t.rnd.Float64() < 0.5 {
		return 21
	}
	id := 1 + t.rnd.IntN(3)
	if t.rnd.IntN(2) == 0 {
		id = -id
	}
	return id
}

func (t *Toy) species() (int, float64) {
	r := t.rnd.Float64()
	switch {
	case r < 0.30:
		return 211, 1
	case r < 0.60:
		return -211, -1
	case r < 0.85:
		return 22, 0
	case r < 0.97:
		return 130, 0
	case r < 0.985:
		return 12, 0
	}
	return -14, 0
}

func massless(pt, eta, phi float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(pt*math.Cos(phi), pt*math.Sin(phi), pt*math.Sinh(eta), pt*math.Cosh(eta))
}

func parseUint(key, value string) (uint64, error) {
	v, err := parseFloat(key, value)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("gen: %s: %q is not a non-negative integer", key, value)
	}
	return uint64(v), nil
}
