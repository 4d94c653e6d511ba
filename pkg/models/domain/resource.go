package domain

import "strings"

// Resource is a single cloud resource in the normalized inventory handed to
// the analysis engine. It is immutable input; explorers guarantee a non-empty
// Id and Type. ResourceGroup may be empty for subscription-scoped resources.
type Resource struct {
	Id            string
	Name          string
	Type          string
	Location      string
	ResourceGroup string
	Tags          map[string]string
}

// Provider-native type strings recognized by the evaluators. Tag keys are
// case-sensitive; type comparison is not.
var (
	virtualMachineTypes = []string{
		"Microsoft.Compute/virtualMachines",
		"AWS::EC2::Instance",
	}
	securityGroupTypes = []string{
		"Microsoft.Network/networkSecurityGroups",
		"AWS::EC2::SecurityGroup",
	}
	managedDiskTypes = []string{
		"Microsoft.Compute/disks",
		"AWS::EC2::Volume",
	}
	publicIPTypes = []string{
		"Microsoft.Network/publicIPAddresses",
		"AWS::EC2::EIP",
	}
	loadBalancerTypes = []string{
		"Microsoft.Network/loadBalancers",
		"AWS::ElasticLoadBalancingV2::LoadBalancer",
	}
	keyVaultTypes = []string{
		"Microsoft.KeyVault/vaults",
		"AWS::SecretsManager::Secret",
	}
	storageTypes = []string{
		"Microsoft.Storage/storageAccounts",
		"AWS::S3::Bucket",
	}
)

func (r Resource) IsVirtualMachine() bool       { return typeIn(r.Type, virtualMachineTypes) }
func (r Resource) IsNetworkSecurityGroup() bool { return typeIn(r.Type, securityGroupTypes) }
func (r Resource) IsManagedDisk() bool          { return typeIn(r.Type, managedDiskTypes) }
func (r Resource) IsPublicIP() bool             { return typeIn(r.Type, publicIPTypes) }
func (r Resource) IsLoadBalancer() bool         { return typeIn(r.Type, loadBalancerTypes) }
func (r Resource) IsKeyVault() bool             { return typeIn(r.Type, keyVaultTypes) }
func (r Resource) IsStorage() bool              { return typeIn(r.Type, storageTypes) }

// HasTag reports whether the resource carries the given tag key. Keys are
// matched case-sensitively, mirroring provider tag semantics.
func (r Resource) HasTag(key string) bool {
	_, ok := r.Tags[key]
	return ok
}

func typeIn(resourceType string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(resourceType, c) {
			return true
		}
	}
	return false
}
