package genome

import (
	"math/rand"

	"github.com/google/uuid"
)

// GeneState is the per-gene molecular state: base expression, inherited
// variants, accumulated somatic mutations, promoter methylation, and
// copy number.
type GeneState struct {
	Expression  float64    `json:"expression"`
	Variants    []Variant  `json:"variants,omitempty"`
	Mutations   []Mutation `json:"mutations,omitempty"`
	Methylation float64    `json:"methylation"`
	CopyNumber  int        `json:"copy_number"`
}

// DefaultGeneState is the unperturbed state of a diploid gene.
func DefaultGeneState() GeneState {
	return GeneState{
		Expression:  0.5,
		Methylation: 0.3,
		CopyNumber:  2,
	}
}

// ChromosomeCount is the number of telomere-capped chromosomes tracked
// per genome.
const ChromosomeCount = 46

// Genome is the molecular state of one individual: nuclear gene states
// in catalog order, mitochondrial DNA, per-chromosome telomeres, the
// epigenome, and acquired mutations.
type Genome struct {
	ID            string                    `json:"id"`
	NuclearGenes  [GeneCount]GeneState      `json:"nuclear_genes"`
	MtDNA         MitochondrialDNA          `json:"mtdna"`
	Telomeres     [ChromosomeCount]Telomere `json:"telomeres"`
	Epigenome     Epigenome                 `json:"epigenome"`
	SomaticMuts   []SomaticMutation         `json:"somatic_mutations,omitempty"`
	Aberrations   []Aberration              `json:"chromosomal_aberrations,omitempty"`
}

// NewRandom draws a genome with inherited variation: each gene carries
// a variant with probability p.VariantCarrierChance, birth telomere
// lengths vary per chromosome, and an enhanced TERT allele grants
// residual telomerase activity in somatic tissue.
func NewRandom(p Params, rng *rand.Rand) *Genome {
	g := &Genome{
		ID:        uuid.NewString(),
		MtDNA:     DefaultMitochondrialDNA(),
		Epigenome: DefaultEpigenome(),
	}
	for i := range g.NuclearGenes {
		state := DefaultGeneState()
		if rng.Float64() < p.VariantCarrierChance {
			state.Variants = append(state.Variants, RandomVariant(Gene(i), rng))
		}
		g.NuclearGenes[i] = state
	}

	span := p.TelomereBirthMaxBP - p.TelomereBirthMinBP
	for i := range g.Telomeres {
		g.Telomeres[i] = DefaultTelomere()
		g.Telomeres[i].LengthBP = p.TelomereBirthMinBP + rng.Intn(span)
	}

	for _, v := range g.NuclearGenes[TERT].Variants {
		if v.Effect == EnhancedFunction {
			for i := range g.Telomeres {
				g.Telomeres[i].TelomeraseActivity = p.InheritedTelomeraseActivity
			}
			break
		}
	}
	return g
}

// Clone returns a deep copy with a fresh ID. Slice-backed state
// (variants, mutations, clock sites, aberrations) is copied so aging
// the clone never touches the original.
func (g *Genome) Clone() *Genome {
	out := *g
	out.ID = uuid.NewString()
	for i := range out.NuclearGenes {
		state := &out.NuclearGenes[i]
		state.Variants = append([]Variant(nil), state.Variants...)
		state.Mutations = append([]Mutation(nil), state.Mutations...)
	}
	out.Epigenome.ClockSites = append([]float64(nil), g.Epigenome.ClockSites...)
	out.SomaticMuts = append([]SomaticMutation(nil), g.SomaticMuts...)
	out.Aberrations = append([]Aberration(nil), g.Aberrations...)
	return &out
}

// GeneFunction computes the effective function of a gene from
// expression, variant effects, driver mutations, methylation
// silencing, and copy number, clamped to [0, p.GeneFunctionMax].
func (g *Genome) GeneFunction(p Params, gene Gene) float64 {
	if gene < 0 || int(gene) >= GeneCount {
		return 0.5
	}
	state := &g.NuclearGenes[gene]
	function := state.Expression

	for _, v := range state.Variants {
		switch v.Effect {
		case LossOfFunction:
			function = 0
		case ReducedFunction:
			function *= 0.5 + v.LongevityEffect*0.2
		case GainOfFunction:
			function *= 1.5
		case EnhancedFunction:
			function *= 1.2
		}
	}

	for _, m := range state.Mutations {
		if m.Driver {
			function *= p.DriverFunctionFactor
		}
	}

	if state.Methylation > p.MethylationSilencingLevel {
		function *= p.MethylationSilencingFactor
	}

	function *= float64(state.CopyNumber) / 2.0

	return clamp(function, 0, p.GeneFunctionMax)
}

// DNARepairCapacity averages the effective function of the core repair
// genes.
func (g *Genome) DNARepairCapacity(p Params) float64 {
	genes := []Gene{TP53, BRCA1, BRCA2, ATM, ERCC1}
	total := 0.0
	for _, gene := range genes {
		total += g.GeneFunction(p, gene)
	}
	return total / float64(len(genes))
}

// SenescencePropensity rises with p16/p21 activity and falls with
// telomerase function.
func (g *Genome) SenescencePropensity(p Params) float64 {
	p16 := g.GeneFunction(p, CDKN2A)
	p21 := g.GeneFunction(p, CDKN1A)
	tert := g.GeneFunction(p, TERT)
	return (p16 + p21) / 2.0 * (1.0 - tert*0.5)
}

// ProteostasisCapacity averages the chaperone and autophagy genes.
func (g *Genome) ProteostasisCapacity(p Params) float64 {
	genes := []Gene{HSF1, HSP70, HSP90, SQSTM1}
	total := 0.0
	for _, gene := range genes {
		total += g.GeneFunction(p, gene)
	}
	return total / float64(len(genes))
}

// InflammationTendency averages the pro-inflammatory signaling genes.
func (g *Genome) InflammationTendency(p Params) float64 {
	proInflam := g.GeneFunction(p, NFKB1) +
		g.GeneFunction(p, NLRP3) +
		g.GeneFunction(p, IL6) +
		g.GeneFunction(p, TNF)
	return proInflam / 4.0
}

// ShortestTelomere returns the minimum telomere length in bp.
func (g *Genome) ShortestTelomere() int {
	shortest := g.Telomeres[0].LengthBP
	for _, t := range g.Telomeres[1:] {
		if t.LengthBP < shortest {
			shortest = t.LengthBP
		}
	}
	return shortest
}

// CriticallyShortTelomeres counts chromosomes past the critical
// threshold.
func (g *Genome) CriticallyShortTelomeres() int {
	n := 0
	for _, t := range g.Telomeres {
		if t.CriticallyShort {
			n++
		}
	}
	return n
}

// GenomicInstability aggregates mutation burden, aberration burden,
// mtDNA heteroplasmy, and repair deficit into a 0-1 score.
func (g *Genome) GenomicInstability(p Params) float64 {
	mutationBurden := float64(len(g.SomaticMuts)) / 1000.0
	aberrationBurden := float64(len(g.Aberrations)) / 10.0
	mtDamage := g.MtDNA.Heteroplasmy
	repairDeficit := 1.0 - g.DNARepairCapacity(p)
	return (mutationBurden + aberrationBurden + mtDamage + repairDeficit) / 4.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
