package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/progression"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cosmospt/internal/server/rest"
	"github.com/dmitrijs2005/cosmospt/internal/server/services"
	"github.com/stretchr/testify/require"
)

var seed = map[models.Collection][]string{
	models.CollectionQuizzes: {
		`{"_id":"q1","title":"Planets","category":"solar-system","difficulty":"easy","points":50,"questions":[{"question":"Largest planet?","options":["Mars","Jupiter"],"correctAnswer":1},{"question":"Red planet?","options":["Mars","Venus"],"correctAnswer":0}]}`,
	},
	models.CollectionMissions: {
		`{"id":"m1","title":"Orbit","difficulty":"easy","duration":"5 min","scenarios":[{"id":"s1","situation":"Launch window","options":[{"text":"Go","outcome":"success","points":40,"result":"Clean ascent"},{"text":"Scrub","outcome":"failure","points":0}]}]}`,
	},
	models.CollectionDestinations: {
		`{"id":"earth","name":"Earth","type":"planet","distance":0}`,
		`{"id":"moon","name":"Moon","type":"moon","distance":384400}`,
	},
	models.CollectionVehicles: {
		`{"id":"rocket","name":"Chemical Rocket","speed":10,"multiplier":1}`,
		`{"id":"ion","name":"Ion Drive","speed":90.5,"multiplier":1.25}`,
	},
}

// newBackend serves the real REST API over an in-memory store.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	log := logging.Nop()

	rm := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	us := services.NewUserService(rm, cfg, log)
	cs := services.NewCatalogService(rm, log)
	for c, docs := range seed {
		raw := make([]json.RawMessage, 0, len(docs))
		for _, d := range docs {
			raw = append(raw, json.RawMessage(d))
		}
		_, err := cs.Replace(ctx, c, raw)
		require.NoError(t, err)
	}
	engine := progression.NewEngine(rm.Users(), log)
	as := services.NewActivityService(cs, us, engine, log)

	h := rest.NewHandler(us, cs, as, engine, log, true)
	srv := httptest.NewServer(rest.NewRouter(h, "http://localhost:5173"))
	t.Cleanup(srv.Close)
	return srv
}

type result struct {
	code   int
	stdout string
	stderr string
}

// cliRunner runs cosmosctl against one server URL and one local database.
type cliRunner struct {
	server string
	db     string
}

func newRunner(t *testing.T, server string) *cliRunner {
	t.Helper()
	t.Setenv("COSMOSCTL_CONFIG", "")
	t.Setenv("COSMOSCTL_SERVER", "")
	t.Setenv("COSMOSCTL_DB", "")
	t.Setenv("COSMOSPT_CONFIG", "")
	return &cliRunner{server: server, db: filepath.Join(t.TempDir(), "cosmosctl.db")}
}

func (r *cliRunner) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--server", r.server, "--db", r.db, "--retries", "0"}, args...)
	code := Execute(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (r *cliRunner) register(t *testing.T, name string) {
	t.Helper()
	res := r.run(t, "secret\n", "register", "--name", name)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
}
