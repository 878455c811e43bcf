// Package network holds the static table of Coreum networks the installer
// can join and the release URLs for each supported platform.
package network

import (
	"fmt"
	"sort"
	"strings"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

// ChainID identifies a Coreum network.
type ChainID string

// Known networks
const (
	Mainnet ChainID = "coreum-mainnet-1"
	Testnet ChainID = "coreum-testnet-1"
)

// Release versions
const (
	MainnetVersion    = "v3.0.3"
	TestnetVersion    = "v3.0.3"
	CosmovisorVersion = "v1.5.0"
)

// URLTable maps OS, then architecture, to a download URL.
type URLTable map[string]map[string]string

// Resolve returns the URL for a normalized platform.
func (t URLTable) Resolve(os, arch string) (string, error) {
	if byArch, ok := t[os]; ok {
		if url, ok := byArch[arch]; ok {
			return url, nil
		}
	}
	return "", errs.NewMissingURLError(os, arch)
}

// Profile describes one network.
type Profile struct {
	ChainID    ChainID
	Name       string
	Version    string
	BinaryURLs URLTable
}

func coredURLs(version string) URLTable {
	base := "https://github.com/CoreumFoundation/coreum/releases/download/" + version
	return URLTable{
		"linux": {
			"amd64": base + "/cored-linux-amd64",
			"arm64": base + "/cored-linux-arm64",
		},
	}
}

var profiles = map[ChainID]Profile{
	Mainnet: {
		ChainID:    Mainnet,
		Name:       "Mainnet",
		Version:    MainnetVersion,
		BinaryURLs: coredURLs(MainnetVersion),
	},
	Testnet: {
		ChainID:    Testnet,
		Name:       "Testnet",
		Version:    TestnetVersion,
		BinaryURLs: coredURLs(TestnetVersion),
	},
}

// CosmovisorURLs lists the cosmovisor release archives.
var CosmovisorURLs = URLTable{
	"linux": {
		"amd64": "https://github.com/cosmos/cosmos-sdk/releases/download/cosmovisor%2F" + CosmovisorVersion + "/cosmovisor-" + CosmovisorVersion + "-linux-amd64.tar.gz",
		"arm64": "https://github.com/cosmos/cosmos-sdk/releases/download/cosmovisor%2F" + CosmovisorVersion + "/cosmovisor-" + CosmovisorVersion + "-linux-arm64.tar.gz",
	},
}

// Lookup returns the profile for a chain id.
func Lookup(id string) (Profile, error) {
	p, ok := profiles[ChainID(id)]
	if !ok {
		return Profile{}, errs.NewValidationError("network", fmt.Sprintf("unknown network %q", id), id)
	}
	return p, nil
}

// MustLookup is Lookup for the built-in chain ids.
func MustLookup(id ChainID) Profile {
	p, err := Lookup(string(id))
	if err != nil {
		panic(err)
	}
	return p
}

// IDs returns the known chain ids, mainnet first.
func IDs() []ChainID {
	ids := make([]ChainID, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NormalizeArch maps a raw machine name (uname -m) to the release naming.
// Already normalized names map to themselves.
func NormalizeArch(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "x86_64", "amd64":
		return "amd64", nil
	case "aarch64", "arm64":
		return "arm64", nil
	default:
		return "", errs.NewUnsupportedArchError(raw)
	}
}

// NormalizeOS lower-cases an OS name ("Linux" -> "linux").
func NormalizeOS(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
