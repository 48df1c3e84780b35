package ranking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `
<html><body>
<div class="card p-1 text-white">
  <h4 class="text-center text-lg font-bold uppercase">Standard</h4>
  <p class="text-4xl text-center font-bold">1,234</p>
  <p class="text-lg text-center text-sm">Rank <big>7</big></p>
</div>
</body></html>
`

func TestFetchProfileParsesCompetitionCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	results, err := FetchProfile(srv.URL)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Standard", results[0].Name)
	assert.Equal(t, 1234, results[0].Score)
	assert.Equal(t, 7, results[0].Rank)
}
