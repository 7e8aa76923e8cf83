package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/cosmos-lcd-query/lcd"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestAccountCmd_PrintsJSON(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"account":{"@type":"/cosmos.auth.v1beta1.BaseAccount","address":"addr1","account_number":"4","sequence":"2"}}`))
	}))
	t.Cleanup(upstream.Close)

	out, err := execute(t, "account", "addr1", "--lcd", upstream.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "/cosmos/auth/v1beta1/accounts/addr1", gotPath)

	var account lcd.AccountResponse
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &account))
	assert.Equal(t, "addr1", account.Address)
	assert.Equal(t, "4", account.AccountNumber)
}

func TestGrantsCmd_PassesMsgType(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"grants":[],"pagination":null}`))
	}))
	t.Cleanup(upstream.Close)

	out, err := execute(t, "grants", "g1", "g2", "--msg-type", "/m", "--lcd", upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, "granter=g1&grantee=g2&msg_type_url=%2Fm", gotQuery)
	assert.Equal(t, "[]\n", out)
}

func TestRootCmd_RequiresTarget(t *testing.T) {
	_, err := execute(t, "account", "addr1")
	assert.EqualError(t, err, "either --chain or --lcd is required")
}

func TestRootCmd_UnknownChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chains:\n  secret:\n    lcdURL: http://127.0.0.1:1\n"), 0o600))

	_, err := execute(t, "account", "addr1", "--config", path, "--chain", "osmosis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chain osmosis")
	assert.Contains(t, err.Error(), "secret")
}

func TestAccountCmd_ReturnsResponseError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":5,"message":"account addr1 not found","details":[]}`))
	}))
	t.Cleanup(upstream.Close)

	out, err := execute(t, "account", "addr1", "--lcd", upstream.URL)
	require.Error(t, err)
	assert.Empty(t, out)

	var respErr *lcd.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusOK, respErr.StatusCode())
	assert.Contains(t, respErr.Error(), "account addr1 not found")
}
