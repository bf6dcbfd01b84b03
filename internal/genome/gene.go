// Package genome models the molecular layer of the aging simulation:
// a catalog of longevity-relevant nuclear genes, inherited variants,
// somatic mutation accrual, telomeres, mitochondrial DNA, and the
// epigenetic clock. All stochastic operations take an explicit rng.
package genome

import "fmt"

// Gene identifies one of the longevity-relevant nuclear genes tracked
// by the simulation. The zero value is TP53.
type Gene int

const (
	// DNA repair
	TP53 Gene = iota
	BRCA1
	BRCA2
	ATM
	WRN
	LMNA
	ERCC1
	// Telomere maintenance
	TERT
	TERC
	POT1
	// Nutrient sensing / metabolism
	MTOR
	IGF1R
	FOXO3
	SIRT1
	SIRT3
	SIRT6
	AMPK
	// Senescence
	CDKN2A
	CDKN1A
	RB1
	// Proteostasis
	HSF1
	HSP70
	HSP90
	SQSTM1
	// Mitochondrial function
	PPARGC1A
	PINK1
	PRKN
	NFE2L2
	// Inflammation
	NFKB1
	NLRP3
	IL6
	TNF
	// Stem cells
	NANOG
	OCT4
	KLF4
	MYC
	// Apoptosis
	BCL2
	BAX
	CASP3
	// Circadian rhythm / sleep
	CLOCK
	BMAL1
	PER1
	PER2
	PER3
	CRY1
	CRY2
	DEC2
	ADRB1
	ADA

	geneSentinel
)

// GeneCount is the number of genes in the catalog. Per-gene state is
// held in fixed arrays indexed by the Gene ordinal.
const GeneCount = int(geneSentinel)

var geneNames = [GeneCount]string{
	"TP53", "BRCA1", "BRCA2", "ATM", "WRN", "LMNA", "ERCC1",
	"TERT", "TERC", "POT1",
	"MTOR", "IGF1R", "FOXO3", "SIRT1", "SIRT3", "SIRT6", "AMPK",
	"CDKN2A", "CDKN1A", "RB1",
	"HSF1", "HSP70", "HSP90", "SQSTM1",
	"PPARGC1A", "PINK1", "PRKN", "NFE2L2",
	"NFKB1", "NLRP3", "IL6", "TNF",
	"NANOG", "OCT4", "KLF4", "MYC",
	"BCL2", "BAX", "CASP3",
	"CLOCK", "BMAL1", "PER1", "PER2", "PER3",
	"CRY1", "CRY2", "DEC2", "ADRB1", "ADA",
}

func (g Gene) String() string {
	if g < 0 || int(g) >= GeneCount {
		return fmt.Sprintf("Gene(%d)", int(g))
	}
	return geneNames[g]
}

func (g Gene) MarshalText() ([]byte, error) {
	if g == Intergenic {
		return []byte("intergenic"), nil
	}
	return []byte(g.String()), nil
}

func (g *Gene) UnmarshalText(text []byte) error {
	if string(text) == "intergenic" {
		*g = Intergenic
		return nil
	}
	parsed, err := ParseGene(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGene resolves a gene symbol to its Gene value.
func ParseGene(name string) (Gene, error) {
	for i, n := range geneNames {
		if n == name {
			return Gene(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gene: %q", name)
}

// AllGenes returns every gene in catalog order.
func AllGenes() []Gene {
	out := make([]Gene, GeneCount)
	for i := range out {
		out[i] = Gene(i)
	}
	return out
}

// Role classifies a gene's contribution to the aging process.
type Role int

const (
	RoleDNARepair Role = iota
	RoleProgeria
	RoleTelomereMaintenance
	RoleNutrientSensing
	RoleSirtuins
	RoleSenescence
	RoleProteostasis
	RoleMitochondrial
	RoleInflammation
	RoleStemCell
	RoleApoptosis
	RoleCircadianRhythm
)

var roleNames = []string{
	"dna_repair", "progeria", "telomere_maintenance", "nutrient_sensing",
	"sirtuins", "senescence", "proteostasis", "mitochondrial",
	"inflammation", "stem_cell", "apoptosis", "circadian_rhythm",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	for i, n := range roleNames {
		if n == string(text) {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("unknown role: %q", string(text))
}

// AgingRole reports the gene's functional category.
func (g Gene) AgingRole() Role {
	switch g {
	case TP53, BRCA1, BRCA2, ATM, ERCC1:
		return RoleDNARepair
	case WRN, LMNA:
		return RoleProgeria
	case TERT, TERC, POT1:
		return RoleTelomereMaintenance
	case MTOR, IGF1R, FOXO3, AMPK:
		return RoleNutrientSensing
	case SIRT1, SIRT3, SIRT6:
		return RoleSirtuins
	case CDKN2A, CDKN1A, RB1:
		return RoleSenescence
	case HSF1, HSP70, HSP90, SQSTM1:
		return RoleProteostasis
	case PPARGC1A, PINK1, PRKN, NFE2L2:
		return RoleMitochondrial
	case NFKB1, NLRP3, IL6, TNF:
		return RoleInflammation
	case NANOG, OCT4, KLF4, MYC:
		return RoleStemCell
	case BCL2, BAX, CASP3:
		return RoleApoptosis
	default:
		return RoleCircadianRhythm
	}
}
