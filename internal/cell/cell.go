// Package cell simulates the fundamental unit of aging: damage
// generation, imperfect repair, machinery decay, and the fate
// decisions that follow from them. One Step advances a cell through a
// fixed pipeline; fate selection walks an ordered rule list.
package cell

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"geras/internal/genome"
)

// Type classifies a cell by lineage, which sets its division behavior.
type Type int

const (
	Epithelial Type = iota
	Fibroblast
	Endothelial
	Neuron
	Cardiomyocyte
	Hepatocyte
	Adipocyte
	StemCell
	ImmuneCell
	Myocyte
)

var typeNames = []string{
	"epithelial", "fibroblast", "endothelial", "neuron", "cardiomyocyte",
	"hepatocyte", "adipocyte", "stem_cell", "immune_cell", "myocyte",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// DivisionRate is the divisions per year for actively dividing cells
// of this type.
func (t Type) DivisionRate() float64 {
	switch t {
	case Epithelial:
		return 365.0
	case Fibroblast:
		return 12.0
	case Endothelial:
		return 52.0
	case Neuron:
		return 0.0
	case Cardiomyocyte:
		return 0.01
	case Hepatocyte:
		return 1.0
	case Adipocyte:
		return 0.1
	case StemCell:
		return 52.0
	case ImmuneCell:
		return 365.0
	case Myocyte:
		return 0.001
	default:
		return 0.0
	}
}

// PostMitotic reports whether cells of this type no longer divide.
func (t Type) PostMitotic() bool {
	return t == Neuron || t == Cardiomyocyte || t == Myocyte
}

// CyclePhase is the cell cycle position.
type CyclePhase int

const (
	PhaseG0 CyclePhase = iota
	PhaseG1
	PhaseS
	PhaseG2
	PhaseM
	PhaseSenescent
)

// DeathCause records how a cell died.
type DeathCause int

const (
	DeathApoptosis DeathCause = iota
	DeathNecrosis
	DeathAutophagy
	DeathFerroptosis
	DeathPyroptosis
	DeathSenolysis
)

var deathCauseNames = []string{
	"apoptosis", "necrosis", "autophagy", "ferroptosis", "pyroptosis", "senolysis",
}

func (d DeathCause) String() string {
	if d < 0 || int(d) >= len(deathCauseNames) {
		return fmt.Sprintf("DeathCause(%d)", int(d))
	}
	return deathCauseNames[d]
}

// Damage tracks the six accumulating damage channels of a cell, each
// in [0, 1].
type Damage struct {
	DNA               float64 `json:"dna_damage"`
	Oxidative         float64 `json:"oxidative_damage"`
	ProteinAggregates float64 `json:"protein_aggregates"`
	Lipofuscin        float64 `json:"lipofuscin"`
	Membrane          float64 `json:"membrane_damage"`
	ERStress          float64 `json:"er_stress"`
}

// Total is the mean across the six channels.
func (d Damage) Total() float64 {
	return (d.DNA + d.Oxidative + d.ProteinAggregates +
		d.Lipofuscin + d.Membrane + d.ERStress) / 6.0
}

// ShouldApoptose reports whether damage warrants programmed death.
func (d Damage) ShouldApoptose(cfg *Config) bool {
	return d.DNA > cfg.ApoptosisDNADamage || d.Total() > cfg.ApoptosisTotalDamage
}

// ShouldSenesce reports whether damage warrants senescence entry.
func (d Damage) ShouldSenesce(cfg *Config) bool {
	return d.DNA > cfg.SenescenceDNADamage ||
		d.Oxidative > cfg.SenescenceOxidative ||
		d.Total() > cfg.SenescenceTotal
}

// Machinery is the molecular maintenance capacity of a cell. All
// scalar capacities start at 1 and decay with floors.
type Machinery struct {
	DNARepair           float64            `json:"dna_repair"`
	Proteasome          float64            `json:"proteasome"`
	Autophagy           float64            `json:"autophagy"`
	Mitochondria        MitochondrialState `json:"mitochondria"`
	TranslationFidelity float64            `json:"translation_fidelity"`
	Chaperones          float64            `json:"chaperones"`
	Antioxidants        float64            `json:"antioxidants"`
}

// DefaultMachinery is the pristine newborn state.
func DefaultMachinery() Machinery {
	return Machinery{
		DNARepair:           1.0,
		Proteasome:          1.0,
		Autophagy:           1.0,
		Mitochondria:        DefaultMitochondrialState(),
		TranslationFidelity: 1.0,
		Chaperones:          1.0,
		Antioxidants:        1.0,
	}
}

// MitochondrialState is the energy machinery of one cell.
type MitochondrialState struct {
	Count             int     `json:"count"`
	ATPProduction     float64 `json:"atp_production"`
	ROSProduction     float64 `json:"ros_production"`
	MembranePotential float64 `json:"membrane_potential"`
	Mitophagy         float64 `json:"mitophagy"`
	Biogenesis        float64 `json:"biogenesis"`
}

// DefaultMitochondrialState is the young mitochondrial pool.
func DefaultMitochondrialState() MitochondrialState {
	return MitochondrialState{
		Count:             1000,
		ATPProduction:     1.0,
		ROSProduction:     0.1,
		MembranePotential: 1.0,
		Mitophagy:         1.0,
		Biogenesis:        1.0,
	}
}

// NetEnergy is ATP output discounted by ROS burden.
func (m MitochondrialState) NetEnergy() float64 {
	return m.ATPProduction * (1.0 - m.ROSProduction*0.3)
}

// AgeStep advances mitochondrial decline by one step: ROS rises, ATP
// and membrane potential fall, quality control erodes.
func (m *MitochondrialState) AgeStep(rng *rand.Rand) {
	m.ROSProduction += rng.Float64() * 0.001
	if m.ROSProduction > 1.0 {
		m.ROSProduction = 1.0
	}

	m.ATPProduction -= rng.Float64() * 0.0005 * m.ROSProduction
	if m.ATPProduction < 0.2 {
		m.ATPProduction = 0.2
	}

	m.MembranePotential -= rng.Float64() * 0.0003
	if m.MembranePotential < 0.3 {
		m.MembranePotential = 0.3
	}

	m.Mitophagy -= rng.Float64() * 0.0002
	if m.Mitophagy < 0.2 {
		m.Mitophagy = 0.2
	}
	m.Biogenesis -= rng.Float64() * 0.0002
	if m.Biogenesis < 0.2 {
		m.Biogenesis = 0.2
	}
}

// Environment is the extracellular context a cell experiences during a
// step.
type Environment struct {
	Oxygen                float64 `json:"oxygen"`
	Nutrients             float64 `json:"nutrients"`
	GrowthFactors         float64 `json:"growth_factors"`
	InflammatoryCytokines float64 `json:"inflammatory_cytokines"`
	SASPExposure          float64 `json:"sasp_exposure"`
	OxidativeStress       float64 `json:"oxidative_stress"`
	Temperature           float64 `json:"temperature"`
	PH                    float64 `json:"ph"`
}

// DefaultEnvironment is healthy young tissue.
func DefaultEnvironment() Environment {
	return Environment{
		Oxygen:                1.0,
		Nutrients:             1.0,
		GrowthFactors:         0.5,
		InflammatoryCytokines: 0.1,
		OxidativeStress:       0.1,
		Temperature:           37.0,
		PH:                    7.4,
	}
}

// Cell is one simulated cell.
type Cell struct {
	ID                  string                   `json:"id"`
	GenomeID            string                   `json:"genome_id"`
	LocalMutations      []genome.SomaticMutation `json:"local_mutations,omitempty"`
	Type                Type                     `json:"cell_type"`
	Tissue              genome.Tissue            `json:"tissue"`
	CyclePhase          CyclePhase               `json:"cycle_phase"`
	DivisionCount       int                      `json:"division_count"`
	ReplicativeCapacity int                      `json:"replicative_capacity"`
	TelomereLengthBP    int                      `json:"telomere_length_bp"`
	Damage              Damage                   `json:"damage"`
	Machinery           Machinery                `json:"machinery"`
	Senescent           bool                     `json:"senescent"`
	SASPOutput          float64                  `json:"sasp_output"`
	Age                 float64                  `json:"age"`
	Alive               bool                     `json:"alive"`
	// DeathCause is meaningful only when Alive is false.
	DeathCause DeathCause `json:"death_cause"`
}

// New creates a cell of the given type. Post-mitotic types start in G0
// with no replicative capacity; dividing types draw a Hayflick budget
// from the configured base and jitter.
func New(cfg *Config, genomeID string, cellType Type, tissue genome.Tissue, rng *rand.Rand) *Cell {
	capacity := 0
	phase := PhaseG0
	if !cellType.PostMitotic() {
		capacity = cfg.HayflickBase + rng.Intn(cfg.HayflickJitter)
		phase = PhaseG1
	}
	return &Cell{
		ID:                  uuid.NewString(),
		GenomeID:            genomeID,
		Type:                cellType,
		Tissue:              tissue,
		CyclePhase:          phase,
		ReplicativeCapacity: capacity,
		TelomereLengthBP:    cfg.BirthTelomereBP,
		Machinery:           DefaultMachinery(),
		Alive:               true,
	}
}

// BiologicalAge estimates the cell's age in years from damage burden,
// machinery loss, and telomere attrition.
func (c *Cell) BiologicalAge() float64 {
	damageAge := c.Damage.Total() * 100.0
	machineryAge := (1.0 - (c.Machinery.DNARepair+
		c.Machinery.Proteasome+
		c.Machinery.Autophagy+
		c.Machinery.TranslationFidelity)/4.0) * 100.0
	telomereAge := (1.0 - float64(c.TelomereLengthBP)/12000.0) * 100.0
	return (damageAge + machineryAge + telomereAge) / 3.0
}
