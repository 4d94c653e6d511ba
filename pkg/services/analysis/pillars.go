package analysis

import (
	"fmt"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Pillar names, in report order.
const (
	PillarSecurity              = "Security"
	PillarCostOptimization      = "Cost Optimization"
	PillarOperationalExcellence = "Operational Excellence"
	PillarReliability           = "Reliability"
	PillarPerformanceEfficiency = "Performance Efficiency"
)

// Tag keys the pillar evaluators treat as evidence of cost attribution and
// operational ownership.
var (
	costTags = []string{"CostCenter", "Project", "Owner"}
	opsTags  = []string{"Environment", "Owner", "ManagedBy"}
)

// inventoryProfile is the aggregate view the pillar evaluators work from,
// computed once per analysis.
type inventoryProfile struct {
	total          int
	virtualMachine int
	securityGroup  int
	managedDisk    int
	publicIP       int
	loadBalancer   int
	keyVault       int
	storage        int
	locations      int
	costTagged     int
	opsTagged      int
}

func profileInventory(resources []domain.Resource) inventoryProfile {
	p := inventoryProfile{total: len(resources)}
	locations := make(map[string]struct{})
	for _, r := range resources {
		switch {
		case r.IsVirtualMachine():
			p.virtualMachine++
		case r.IsNetworkSecurityGroup():
			p.securityGroup++
		case r.IsManagedDisk():
			p.managedDisk++
		case r.IsPublicIP():
			p.publicIP++
		case r.IsLoadBalancer():
			p.loadBalancer++
		case r.IsKeyVault():
			p.keyVault++
		case r.IsStorage():
			p.storage++
		}
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
		if hasAnyTag(r, costTags) {
			p.costTagged++
		}
		if hasAnyTag(r, opsTags) {
			p.opsTagged++
		}
	}
	p.locations = len(locations)
	return p
}

func hasAnyTag(r domain.Resource, keys []string) bool {
	for _, k := range keys {
		if r.HasTag(k) {
			return true
		}
	}
	return false
}

// EvaluatePillars assesses the inventory against the five best-practice
// pillars and returns one summary per pillar, in fixed order. It never fails:
// an empty inventory produces Medium scores with empty evidence lists.
func EvaluatePillars(resources []domain.Resource, settings domain.PillarSettings) []domain.PillarSummary {
	p := profileInventory(resources)
	return []domain.PillarSummary{
		evaluateSecurity(p, settings),
		evaluateCostOptimization(p, settings),
		evaluateOperationalExcellence(p, settings),
		evaluateReliability(p, settings),
		evaluatePerformanceEfficiency(p, settings),
	}
}

func evaluateSecurity(p inventoryProfile, settings domain.PillarSettings) domain.PillarSummary {
	var strengths, weaknesses, recommendations []string

	if p.securityGroup > 0 {
		strengths = append(strengths, fmt.Sprintf("%d network security groups restrict traffic", p.securityGroup))
	}
	if p.keyVault > 0 {
		strengths = append(strengths, fmt.Sprintf("%d secret stores keep credentials out of configuration", p.keyVault))
	}
	if p.virtualMachine > 0 && p.securityGroup == 0 {
		weaknesses = append(weaknesses, "virtual machines run without any network security group")
		recommendations = append(recommendations, "Attach network security groups to all compute subnets")
	}
	if p.publicIP > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d public IP addresses widen the attack surface", p.publicIP))
		recommendations = append(recommendations, "Review every public IP and prefer private endpoints")
	}
	if p.total > 0 && p.keyVault == 0 {
		weaknesses = append(weaknesses, "no managed secret store is in use")
		recommendations = append(recommendations, "Provision a managed vault for application secrets")
	}

	return buildPillar(
		PillarSecurity,
		"Protection of workloads and data from threats.",
		strengths, weaknesses, recommendations, settings,
	)
}

func evaluateCostOptimization(p inventoryProfile, settings domain.PillarSettings) domain.PillarSummary {
	var strengths, weaknesses, recommendations []string

	if p.total > 0 {
		ratio := float64(p.costTagged) / float64(p.total)
		if ratio >= settings.CostTagRatioThreshold {
			strengths = append(strengths, fmt.Sprintf("%d of %d resources carry cost allocation tags", p.costTagged, p.total))
		} else {
			weaknesses = append(weaknesses, fmt.Sprintf("only %d of %d resources carry cost allocation tags", p.costTagged, p.total))
			recommendations = append(recommendations, "Enforce cost allocation tags through policy")
		}
	}
	if p.managedDisk > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d managed disks may be unattached", p.managedDisk))
		recommendations = append(recommendations, "Audit disks for orphans and delete unused ones")
	}
	if p.publicIP > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d public IP addresses incur standing charges", p.publicIP))
	}
	if p.total > 0 && p.managedDisk == 0 && p.publicIP == 0 {
		strengths = append(strengths, "no standing charges from idle disks or addresses were observed")
	}
	if p.storage > 0 {
		strengths = append(strengths, fmt.Sprintf("%d storage services use pay-as-you-go managed capacity", p.storage))
	}

	return buildPillar(
		PillarCostOptimization,
		"Elimination of unneeded spend and attribution of the rest.",
		strengths, weaknesses, recommendations, settings,
	)
}

func evaluateOperationalExcellence(p inventoryProfile, settings domain.PillarSettings) domain.PillarSummary {
	var strengths, weaknesses, recommendations []string

	if p.total > 0 {
		ratio := float64(p.opsTagged) / float64(p.total)
		if ratio >= settings.OperationsTagRatioThreshold {
			strengths = append(strengths, fmt.Sprintf("%d of %d resources declare an owner or environment", p.opsTagged, p.total))
		} else {
			weaknesses = append(weaknesses, fmt.Sprintf("only %d of %d resources declare an owner or environment", p.opsTagged, p.total))
			recommendations = append(recommendations, "Tag every resource with Environment and Owner")
		}
	}
	if p.total > 0 && p.locations == 1 {
		strengths = append(strengths, "the estate is concentrated in a single region, simplifying operations")
	}
	if p.locations > 3 {
		weaknesses = append(weaknesses, fmt.Sprintf("resources are spread over %d regions", p.locations))
		recommendations = append(recommendations, "Document the regional footprint and consolidate where possible")
	}

	return buildPillar(
		PillarOperationalExcellence,
		"Running and monitoring systems to deliver business value.",
		strengths, weaknesses, recommendations, settings,
	)
}

func evaluateReliability(p inventoryProfile, settings domain.PillarSettings) domain.PillarSummary {
	var strengths, weaknesses, recommendations []string

	if p.loadBalancer > 0 {
		strengths = append(strengths, fmt.Sprintf("%d load balancers distribute traffic across instances", p.loadBalancer))
	}
	if p.locations > 1 {
		strengths = append(strengths, fmt.Sprintf("workloads span %d regions", p.locations))
	}
	if p.virtualMachine > 0 && p.loadBalancer == 0 {
		weaknesses = append(weaknesses, "compute runs without load balancing")
		recommendations = append(recommendations, "Place stateless compute behind a load balancer")
	}
	if p.total > 1 && p.locations <= 1 {
		weaknesses = append(weaknesses, "the whole estate depends on a single region")
		recommendations = append(recommendations, "Evaluate a secondary region for critical workloads")
	}

	return buildPillar(
		PillarReliability,
		"Ability of the system to recover from failures and keep working.",
		strengths, weaknesses, recommendations, settings,
	)
}

func evaluatePerformanceEfficiency(p inventoryProfile, settings domain.PillarSettings) domain.PillarSummary {
	var strengths, weaknesses, recommendations []string

	if p.loadBalancer > 0 {
		strengths = append(strengths, "load balancing enables horizontal scaling")
	}
	if p.storage > 0 {
		strengths = append(strengths, fmt.Sprintf("%d managed storage services offload IO scaling", p.storage))
	}
	if p.virtualMachine > p.loadBalancer*5 && p.virtualMachine > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d virtual machines rely on vertical scaling", p.virtualMachine))
		recommendations = append(recommendations, "Review instance sizing and consider scale sets or autoscaling groups")
	}

	return buildPillar(
		PillarPerformanceEfficiency,
		"Efficient use of compute and storage to meet demand.",
		strengths, weaknesses, recommendations, settings,
	)
}

func buildPillar(
	name, overview string,
	strengths, weaknesses, recommendations []string,
	settings domain.PillarSettings,
) domain.PillarSummary {
	score := scorePillar(len(strengths), len(weaknesses), settings)
	return domain.PillarSummary{
		Name:            name,
		Overview:        overview,
		CurrentState:    currentState(name, score),
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: recommendations,
		Score:           score,
	}
}

// scorePillar maps evidence counts to a qualitative score. High demands both
// a majority of strengths and enough of them in absolute terms; Low requires
// weaknesses to dominate by the configured multiplier.
func scorePillar(strengths, weaknesses int, settings domain.PillarSettings) domain.Score {
	switch {
	case strengths > weaknesses && strengths > settings.HighScoreMinStrengths:
		return domain.ScoreHigh
	case weaknesses > settings.LowScoreWeaknessMultiplier*strengths:
		return domain.ScoreLow
	default:
		return domain.ScoreMedium
	}
}

func currentState(name string, score domain.Score) string {
	switch score {
	case domain.ScoreHigh:
		return fmt.Sprintf("The estate follows %s best practices with no material gaps observed.", name)
	case domain.ScoreLow:
		return fmt.Sprintf("The estate shows significant %s gaps that need attention.", name)
	default:
		return fmt.Sprintf("The estate partially follows %s best practices; targeted improvements are available.", name)
	}
}
