package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

func TestLookup(t *testing.T) {
	p, err := Lookup("coreum-mainnet-1")
	require.NoError(t, err)
	assert.Equal(t, Mainnet, p.ChainID)
	assert.Equal(t, "v3.0.3", p.Version)

	p, err = Lookup("coreum-testnet-1")
	require.NoError(t, err)
	assert.Equal(t, Testnet, p.ChainID)

	_, err = Lookup("unknown-chain")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), `unknown network "unknown-chain"`)
}

func TestIDsOrder(t *testing.T) {
	assert.Equal(t, []ChainID{Mainnet, Testnet}, IDs())
}

func TestBinaryURLResolution(t *testing.T) {
	for _, id := range IDs() {
		p := MustLookup(id)
		for os, byArch := range p.BinaryURLs {
			for arch, want := range byArch {
				got, err := p.BinaryURLs.Resolve(os, arch)
				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Contains(t, got, p.Version)
				assert.Contains(t, got, "cored-"+os+"-"+arch)
			}
		}
	}

	missing := []struct{ os, arch string }{
		{"darwin", "arm64"},
		{"windows", "amd64"},
		{"linux", "riscv64"},
		{"", ""},
	}
	for _, m := range missing {
		_, err := MustLookup(Mainnet).BinaryURLs.Resolve(m.os, m.arch)
		require.Error(t, err)
		assert.True(t, errs.IsPlatform(err))
	}
}

func TestCosmovisorURLs(t *testing.T) {
	url, err := CosmovisorURLs.Resolve("linux", "arm64")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/cosmos/cosmos-sdk/releases/download/cosmovisor%2Fv1.5.0/cosmovisor-v1.5.0-linux-arm64.tar.gz", url)
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "x86_64", want: "amd64"},
		{raw: "aarch64", want: "arm64"},
		{raw: "amd64", want: "amd64"},
		{raw: "arm64", want: "arm64"},
		{raw: "i686", wantErr: true},
		{raw: "armv7l", wantErr: true},
		{raw: "riscv64", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeArch(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsPlatform(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := NormalizeArch(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestNormalizeOS(t *testing.T) {
	assert.Equal(t, "linux", NormalizeOS("Linux"))
	assert.Equal(t, "darwin", NormalizeOS(" Darwin "))
}
