package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okValue[T any](t *testing.T, res result) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(res.Ok, &v))
	return v
}

func TestToken_Lifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec, res := srv.do(t, http.MethodPost, "/token/initialize", "",
		`{"name":"T","originAddress":"A","ticker":"TICK","totalSupply":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, okValue[bool](t, res))

	_, res = srv.do(t, http.MethodGet, "/token/balance?address=A", "", "")
	assert.Equal(t, uint64(1000), okValue[uint64](t, res))
	_, res = srv.do(t, http.MethodGet, "/token/balance?address=B", "", "")
	assert.Equal(t, uint64(0), okValue[uint64](t, res))
	_, res = srv.do(t, http.MethodGet, "/token/total-supply", "", "")
	assert.Equal(t, uint64(1000), okValue[uint64](t, res))
	_, res = srv.do(t, http.MethodGet, "/token/ticker", "", "")
	assert.Equal(t, "TICK", okValue[string](t, res))
	_, res = srv.do(t, http.MethodGet, "/token/name", "", "")
	assert.Equal(t, "T", okValue[string](t, res))

	rec, res = srv.do(t, http.MethodPost, "/token/transfer", "", `{"from":"A","to":"B","amount":300}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, okValue[bool](t, res))
	assert.Equal(t, uint64(700), srv.ledger.Balance("A"))
	assert.Equal(t, uint64(300), srv.ledger.Balance("B"))
}

func TestToken_TransferTrapIsRejected(t *testing.T) {
	srv := newTestServer(t)
	srv.ledger.InitializeSupply("T", "A", "TICK", 1000)
	_, err := srv.ledger.Transfer("A", "B", 300)
	require.NoError(t, err)

	rec, _ := srv.do(t, http.MethodPost, "/token/transfer", "", `{"from":"A","to":"B","amount":800}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"reject_code":"CANISTER_ERROR","reject_message":"Insufficient amount"}`, rec.Body.String())
	assert.Equal(t, uint64(700), srv.ledger.Balance("A"))
	assert.Equal(t, uint64(300), srv.ledger.Balance("B"))
}

func TestToken_ZeroValuesBeforeInitialize(t *testing.T) {
	srv := newTestServer(t)

	_, res := srv.do(t, http.MethodGet, "/token/name", "", "")
	assert.Equal(t, "", okValue[string](t, res))
	_, res = srv.do(t, http.MethodGet, "/token/total-supply", "", "")
	assert.Equal(t, uint64(0), okValue[uint64](t, res))

	rec, res := srv.do(t, http.MethodPost, "/token/transfer", "", `{"from":"X","to":"Y","amount":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, okValue[bool](t, res))
}

func TestToken_BadBodies(t *testing.T) {
	srv := newTestServer(t)

	rec, res := srv.do(t, http.MethodPost, "/token/transfer", "", `{"from":"A","to":"B","amount":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, res.Err, "invalid request body")

	rec, _ = srv.do(t, http.MethodPost, "/token/initialize", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToken_BalanceOfAnyAddress(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := srv.do(t, http.MethodPost, "/token/initialize", "",
		`{"name":"T","originAddress":"acct/1","ticker":"TICK","totalSupply":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = srv.do(t, http.MethodPost, "/token/transfer", "", `{"from":"acct/1","to":"","amount":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cases := map[string]uint64{
		"/token/balance?address=" + url.QueryEscape("acct/1"): 995,
		"/token/balance?address=":                             5,
		"/token/balance":                                      5,
		"/token/balance?address=unknown":                      0,
	}
	for path, want := range cases {
		rec, res := srv.do(t, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, okValue[uint64](t, res), path)
	}
}

func TestToken_Accounts(t *testing.T) {
	srv := newTestServer(t)

	_, res := srv.do(t, http.MethodGet, "/token/accounts", "", "")
	assert.JSONEq(t, `[]`, string(res.Ok))

	srv.ledger.InitializeSupply("T", "B", "TICK", 10)
	_, err := srv.ledger.Transfer("B", "A", 4)
	require.NoError(t, err)

	rec, res := srv.do(t, http.MethodGet, "/token/accounts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"address":"A","balance":4},{"address":"B","balance":6}]`, string(res.Ok))
}
