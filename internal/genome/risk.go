package genome

import (
	"fmt"
	"sort"
)

// RiskScore summarizes germline predisposition, 0 (low) to 1 (high)
// per category.
type RiskScore struct {
	Overall          float64 `json:"overall"`
	Cancer           float64 `json:"cancer"`
	Cardiovascular   float64 `json:"cardiovascular"`
	Neurodegeneration float64 `json:"neurodegeneration"`
	Metabolic        float64 `json:"metabolic"`
	AcceleratedAging float64 `json:"accelerated_aging"`
}

// RiskFactor names a variant that raises disease or mortality risk.
type RiskFactor struct {
	Gene         Gene    `json:"gene"`
	Variant      string  `json:"variant"`
	Impact       string  `json:"impact"`
	RiskIncrease float64 `json:"risk_increase"`
}

// ProtectiveFactor names a variant associated with longer life.
type ProtectiveFactor struct {
	Gene       Gene    `json:"gene"`
	Variant    string  `json:"variant"`
	Impact     string  `json:"impact"`
	Protection float64 `json:"protection"`
}

// CalculateRiskScore aggregates gene function into category risks:
// cancer from repair deficit and tumor suppressors, cardiovascular
// from inflammation and nutrient sensing, neurodegeneration from
// proteostasis and mitochondrial quality control, metabolic from
// growth signaling, accelerated aging from telomere and progeria
// genes.
func (g *Genome) CalculateRiskScore(p Params) RiskScore {
	cancer := func() float64 {
		repair := 1.0 - g.DNARepairCapacity(p)
		tp53 := 1.0 - g.GeneFunction(p, TP53)
		brca := (1.0 - g.GeneFunction(p, BRCA1) + 1.0 - g.GeneFunction(p, BRCA2)) / 2.0
		return clamp((repair+tp53+brca)/3.0, 0, 1)
	}()

	cardiovascular := func() float64 {
		inflammation := g.InflammationTendency(p)
		mtor := g.GeneFunction(p, MTOR)
		ampk := 1.0 - g.GeneFunction(p, AMPK)
		return clamp((inflammation+mtor*0.5+ampk*0.5)/2.0, 0, 1)
	}()

	neuro := func() float64 {
		proteostasis := 1.0 - g.ProteostasisCapacity(p)
		mito := 1.0 - g.GeneFunction(p, PPARGC1A)
		pink1 := 1.0 - g.GeneFunction(p, PINK1)
		return clamp((proteostasis+mito+pink1)/3.0, 0, 1)
	}()

	metabolic := func() float64 {
		igf1 := g.GeneFunction(p, IGF1R)
		foxo3 := 1.0 - g.GeneFunction(p, FOXO3)
		sirt := 1.0 - (g.GeneFunction(p, SIRT1)+g.GeneFunction(p, SIRT3))/2.0
		return clamp((igf1*0.5+foxo3+sirt)/2.5, 0, 1)
	}()

	accelerated := func() float64 {
		telo := 1.0 - g.GeneFunction(p, TERT)
		wrn := 1.0 - g.GeneFunction(p, WRN)
		lmna := 1.0 - g.GeneFunction(p, LMNA)
		senescence := g.SenescencePropensity(p)
		return clamp((telo+wrn*0.5+lmna*0.5+senescence)/3.0, 0, 1)
	}()

	overall := clamp(
		cancer*0.25+cardiovascular*0.25+neuro*0.15+metabolic*0.15+accelerated*0.20,
		0, 1)

	return RiskScore{
		Overall:          overall,
		Cancer:           cancer,
		Cardiovascular:   cardiovascular,
		Neurodegeneration: neuro,
		Metabolic:        metabolic,
		AcceleratedAging: accelerated,
	}
}

func riskImpact(role Role) string {
	switch role {
	case RoleDNARepair:
		return "reduced DNA repair capacity"
	case RoleTelomereMaintenance:
		return "accelerated telomere shortening"
	case RoleSenescence:
		return "increased cellular senescence"
	case RoleProteostasis:
		return "impaired protein quality control"
	case RoleMitochondrial:
		return "mitochondrial dysfunction"
	case RoleInflammation:
		return "increased inflammatory signaling"
	case RoleCircadianRhythm:
		return "disrupted circadian rhythm"
	case RoleProgeria:
		return "progeroid syndrome risk"
	default:
		return "potential negative impact on longevity"
	}
}

func protectiveImpact(gene Gene) string {
	switch gene.AgingRole() {
	case RoleDNARepair:
		return "enhanced DNA repair"
	case RoleSirtuins:
		return "enhanced sirtuin activity"
	case RoleNutrientSensing:
		if gene == FOXO3 {
			return "FOXO3 longevity variant"
		}
		return "favorable nutrient sensing"
	case RoleCircadianRhythm:
		if gene == DEC2 || gene == ADRB1 {
			return "natural short sleep phenotype"
		}
		return "robust circadian rhythm"
	case RoleTelomereMaintenance:
		return "enhanced telomere maintenance"
	case RoleInflammation:
		return "reduced inflammatory signaling"
	default:
		return "potential positive impact on longevity"
	}
}

// IdentifyRiskFactors lists the top damaging variants carried by this
// genome, strongest first, at most ten.
func (g *Genome) IdentifyRiskFactors() []RiskFactor {
	var factors []RiskFactor
	for i := range g.NuclearGenes {
		gene := Gene(i)
		for _, v := range g.NuclearGenes[i].Variants {
			if v.LongevityEffect < -0.1 {
				factors = append(factors, RiskFactor{
					Gene:         gene,
					Variant:      fmt.Sprintf("%s %s", v.RSID, v.Effect),
					Impact:       riskImpact(gene.AgingRole()),
					RiskIncrease: -v.LongevityEffect,
				})
			}
		}
	}
	sort.Slice(factors, func(a, b int) bool {
		return factors[a].RiskIncrease > factors[b].RiskIncrease
	})
	if len(factors) > 10 {
		factors = factors[:10]
	}
	return factors
}

// IdentifyProtectiveFactors lists the top beneficial variants carried
// by this genome, strongest first, at most ten.
func (g *Genome) IdentifyProtectiveFactors() []ProtectiveFactor {
	var factors []ProtectiveFactor
	for i := range g.NuclearGenes {
		gene := Gene(i)
		for _, v := range g.NuclearGenes[i].Variants {
			if v.LongevityEffect > 0.1 {
				factors = append(factors, ProtectiveFactor{
					Gene:       gene,
					Variant:    fmt.Sprintf("%s %s", v.RSID, v.Effect),
					Impact:     protectiveImpact(gene),
					Protection: v.LongevityEffect,
				})
			}
		}
	}
	sort.Slice(factors, func(a, b int) bool {
		return factors[a].Protection > factors[b].Protection
	})
	if len(factors) > 10 {
		factors = factors[:10]
	}
	return factors
}
