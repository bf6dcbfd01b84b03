package genome

import (
	"fmt"
	"math/rand"
)

// VariantEffect classifies the functional impact of a germline variant.
type VariantEffect int

const (
	LossOfFunction VariantEffect = iota
	GainOfFunction
	ReducedFunction
	EnhancedFunction
	Neutral
)

var variantEffectNames = []string{
	"loss_of_function", "gain_of_function", "reduced_function",
	"enhanced_function", "neutral",
}

func (e VariantEffect) String() string {
	if e < 0 || int(e) >= len(variantEffectNames) {
		return fmt.Sprintf("VariantEffect(%d)", int(e))
	}
	return variantEffectNames[e]
}

func (e VariantEffect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *VariantEffect) UnmarshalText(text []byte) error {
	for i, n := range variantEffectNames {
		if n == string(text) {
			*e = VariantEffect(i)
			return nil
		}
	}
	return fmt.Errorf("unknown variant effect: %q", string(text))
}

// Variant is an inherited germline variant of a gene.
type Variant struct {
	RSID            string        `json:"rsid"`
	Effect          VariantEffect `json:"effect"`
	AlleleFrequency float64       `json:"allele_frequency"`
	// LongevityEffect ranges -1 (harmful) to +1 (protective).
	LongevityEffect float64 `json:"longevity_effect"`
}

// MutationType classifies acquired DNA lesions.
type MutationType int

const (
	PointMutation MutationType = iota
	Deletion
	Insertion
	Duplication
	Translocation
)

var mutationTypeNames = []string{
	"point_mutation", "deletion", "insertion", "duplication", "translocation",
}

func (m MutationType) String() string {
	if m < 0 || int(m) >= len(mutationTypeNames) {
		return fmt.Sprintf("MutationType(%d)", int(m))
	}
	return mutationTypeNames[m]
}

func (m MutationType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MutationType) UnmarshalText(text []byte) error {
	for i, n := range mutationTypeNames {
		if n == string(text) {
			*m = MutationType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mutation type: %q", string(text))
}

// Mutation is a somatic mutation within a tracked gene.
type Mutation struct {
	Type           MutationType `json:"type"`
	AgeAcquired    float64      `json:"age_acquired"`
	ClonalFraction float64      `json:"clonal_fraction"`
	Driver         bool         `json:"driver"`
}

// Tissue identifies where a somatic mutation arose.
type Tissue int

const (
	TissueBlood Tissue = iota
	TissueBrain
	TissueHeart
	TissueLiver
	TissueKidney
	TissueLung
	TissueMuscle
	TissueSkin
	TissueAdipose
	TissueIntestine
	TissueBoneMarrow
	TissuePancreas
	TissueImmune
)

var tissueNames = []string{
	"blood", "brain", "heart", "liver", "kidney", "lung", "muscle",
	"skin", "adipose", "intestine", "bone_marrow", "pancreas", "immune",
}

func (t Tissue) String() string {
	if t < 0 || int(t) >= len(tissueNames) {
		return fmt.Sprintf("Tissue(%d)", int(t))
	}
	return tissueNames[t]
}

func (t Tissue) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tissue) UnmarshalText(text []byte) error {
	for i, n := range tissueNames {
		if n == string(text) {
			*t = Tissue(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tissue: %q", string(text))
}

// SomaticMutation is an acquired mutation anywhere in the genome. Gene
// is -1 when the mutation is intergenic.
type SomaticMutation struct {
	ID              string       `json:"id"`
	Gene            Gene         `json:"gene"`
	Type            MutationType `json:"type"`
	AgeAcquired     float64      `json:"age_acquired"`
	TissueOrigin    Tissue       `json:"tissue_origin"`
	ClonalExpansion float64      `json:"clonal_expansion"`
	Driver          bool         `json:"driver"`
}

// Intergenic marks a somatic mutation outside any tracked gene.
const Intergenic Gene = -1

// AberrationType classifies large-scale chromosomal abnormalities.
type AberrationType int

const (
	Aneuploidy AberrationType = iota
	LossOfHeterozygosity
	ChromosomalFusion
	Inversion
	LargeScaleDeletion
)

// Aberration is an acquired chromosomal abnormality.
type Aberration struct {
	Type         AberrationType `json:"type"`
	Chromosome   int            `json:"chromosome"`
	AgeAcquired  float64        `json:"age_acquired"`
	CellFraction float64        `json:"cell_fraction"`
}

// RandomVariant draws an inherited variant for a gene. The longevity
// effect depends on the gene's role and the drawn impact class: loss
// of a repair gene is harmful, reduced IGF-1/mTOR signaling and the
// DEC2/ADRB1 short-sleep alleles are protective.
func RandomVariant(gene Gene, rng *rand.Rand) Variant {
	effects := []VariantEffect{
		LossOfFunction, ReducedFunction, Neutral, EnhancedFunction, GainOfFunction,
	}
	effect := effects[rng.Intn(len(effects))]

	var longevity float64
	role := gene.AgingRole()
	switch {
	case role == RoleDNARepair && effect == EnhancedFunction:
		longevity = 0.3
	case role == RoleDNARepair && effect == LossOfFunction:
		longevity = -0.5
	case role == RoleSirtuins && effect == EnhancedFunction:
		longevity = 0.4
	case role == RoleNutrientSensing && effect == ReducedFunction:
		if gene == IGF1R || gene == MTOR {
			longevity = 0.3
		} else {
			longevity = -0.2
		}
	case role == RoleInflammation && effect == ReducedFunction:
		longevity = 0.2
	case role == RoleTelomereMaintenance && effect == EnhancedFunction:
		longevity = 0.2
	case role == RoleCircadianRhythm && effect == ReducedFunction:
		if gene == DEC2 || gene == ADRB1 {
			longevity = 0.2
		} else {
			longevity = -0.1
		}
	case role == RoleCircadianRhythm && effect == EnhancedFunction:
		longevity = 0.1
	default:
		longevity = -0.2 + rng.Float64()*0.4
	}

	return Variant{
		RSID:            fmt.Sprintf("rs%d", rng.Uint32()%10000000),
		Effect:          effect,
		AlleleFrequency: 0.001 + rng.Float64()*0.299,
		LongevityEffect: longevity,
	}
}
