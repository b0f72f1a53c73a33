package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proposal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://api.mainnet-beta.solana.com
  commitment: confirmed
programs:
  governance: GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw
logger:
  format: json
  level: debug
  compress: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCConf.Endpoint)
	assert.Equal(t, "confirmed", cfg.RPCConf.Commitment)
	assert.Equal(t, "GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw", cfg.ProgramConf.Governance)
	assert.Equal(t, "json", cfg.LogConf.Format)
	assert.True(t, cfg.LogConf.ToLogOption().Compress)
}

func TestLoad_MissingEndpoint(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: info
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "rpc.endpoint")
}

func TestLoad_BadCommitment(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: http://localhost:8899
  commitment: eventually
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "commitment")
}

func TestLoad_BadProgramAddress(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: http://localhost:8899
programs:
  amm: not-an-address
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "programs.amm")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
