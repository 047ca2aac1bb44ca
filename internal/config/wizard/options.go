package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents an AWS region offering Fargate Spot.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// SizeOption is a Fargate CPU/memory pairing.
type SizeOption struct {
	Key         string
	CPU         int
	MemoryMiB   int
	Description string
}

// Regions contains the regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Frankfurt"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Ireland"},
	{Value: "eu-west-2", Label: "eu-west-2", Description: "London"},
	{Value: "eu-north-1", Label: "eu-north-1", Description: "Stockholm"},
	{Value: "us-east-1", Label: "us-east-1", Description: "N. Virginia"},
	{Value: "us-east-2", Label: "us-east-2", Description: "Ohio"},
	{Value: "us-west-2", Label: "us-west-2", Description: "Oregon"},
	{Value: "ap-southeast-2", Label: "ap-southeast-2", Description: "Sydney"},
}

// Sizes contains valid Fargate sizes for a game server.
var Sizes = []SizeOption{
	{Key: "small", CPU: 512, MemoryMiB: 4096, Description: "0.5 vCPU, 4GB RAM (1-3 players)"},
	{Key: "standard", CPU: 1024, MemoryMiB: 8192, Description: "1 vCPU, 8GB RAM (Recommended)"},
	{Key: "large", CPU: 2048, MemoryMiB: 8192, Description: "2 vCPU, 8GB RAM (large worlds)"},
	{Key: "xlarge", CPU: 2048, MemoryMiB: 16384, Description: "2 vCPU, 16GB RAM (10 players)"},
}

// Size keys.
const (
	SizeSmall    = "small"
	SizeStandard = "standard"
	SizeLarge    = "large"
	SizeXLarge   = "xlarge"
)

// Password sources.
const (
	PasswordGenerate = "generate"
	PasswordExisting = "existing"
)

// PasswordModes contains the password source options.
var PasswordModes = []huh.Option[string]{
	huh.NewOption("Generate a random password (Recommended)", PasswordGenerate),
	huh.NewOption("Use an existing Secrets Manager secret", PasswordExisting),
}

// PortCountOptions selects between the two-port and single-port layouts.
var PortCountOptions = []huh.Option[int]{
	huh.NewOption("2456-2457/udp (Recommended)", 2),
	huh.NewOption("2456/udp only", 1),
}

// RegionsToOptions converts Regions to huh options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}

// SizesToOptions converts Sizes to huh options.
func SizesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Sizes))
	for i, s := range Sizes {
		opts[i] = huh.NewOption(s.Key+" - "+s.Description, s.Key)
	}
	return opts
}

// SizeByKey looks up a size option.
func SizeByKey(key string) (SizeOption, bool) {
	for _, s := range Sizes {
		if s.Key == key {
			return s, true
		}
	}
	return SizeOption{}, false
}
