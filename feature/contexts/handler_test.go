package contexts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asset-bridge/core/bridge"
	"asset-bridge/core/database"
	"asset-bridge/core/engine/obj"
	"asset-bridge/core/history"
	"asset-bridge/core/logger"
	"asset-bridge/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const triangleOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

type testEnv struct {
	app *fiber.App
	reg *bridge.Registry
	dir string
}

func setupTestApp(t *testing.T, store *history.Store, opts bridge.Options) *testEnv {
	t.Helper()
	log := zap.NewNop()
	opts.Engine = obj.NewFactory()
	opts.Hub = logger.NewHub(func() (*zap.Logger, error) { return log, nil }, log)
	if store != nil {
		opts.Recorder = store
	}
	reg, err := bridge.NewRegistry(opts)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(rayid.New())
	require.NoError(t, NewFeature(reg, store, log, 10).Load(app))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(triangleOBJ), 0o644))
	return &testEnv{app: app, reg: reg, dir: dir}
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (e *testEnv) create(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/contexts", "", CallerHeader, "host-1")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["handle"].(string)
}

func TestHandleCreateAndList(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{})
	h := e.create(t)

	resp, body := e.do(t, "GET", "/contexts", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []any{h}, body["handles"])
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["active"])
	assert.Equal(t, float64(1), stats["hub_refs"])
}

func TestHandleCreate_SessionLimit(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{MaxSessions: 1})
	e.create(t)

	resp, _ := e.do(t, "POST", "/contexts", "")
	assert.Equal(t, fiber.StatusInsufficientStorage, resp.StatusCode)
	assert.Equal(t, 1, e.reg.Active())
}

func TestHandleLoadFlow(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{})
	h := e.create(t)

	resp, body := e.do(t, "GET", "/contexts/"+h+"/scene", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "no asset loaded")

	resp, body = e.do(t, "PUT", "/contexts/"+h+"/properties/GLOBAL_SCALE", `{"type":"float","value":2}`)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "float", body["type"])
	assert.Equal(t, float64(2), body["value"])

	load := fmt.Sprintf(`{"path":%q,"flags":8}`, filepath.Join(e.dir, "tri.obj"))
	resp, body = e.do(t, "POST", "/contexts/"+h+"/load", load)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["meshes"])
	assert.Equal(t, float64(3), body["vertices"])

	resp, body = e.do(t, "GET", "/contexts/"+h+"/scene?full=true", "")
	require.Equal(t, 200, resp.StatusCode)
	meshes := body["meshes"].([]any)
	verts := meshes[0].(map[string]any)["vertices"].([]any)
	assert.Equal(t, float64(2), verts[1].(map[string]any)["x"])
}

func TestHandleLoad_Failures(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{MaxSceneVertices: 2})
	h := e.create(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"Bad handle", "/contexts/abc/load", `{"path":"x.obj"}`, fiber.StatusNotFound},
		{"Stale handle", "/contexts/1/load", `{"path":"x.obj"}`, fiber.StatusNotFound},
		{"Bad body", "/contexts/" + h + "/load", `{`, fiber.StatusBadRequest},
		{"Missing path", "/contexts/" + h + "/load", `{"flags":0}`, fiber.StatusBadRequest},
		{"Missing file", "/contexts/" + h + "/load", `{"path":"nope.obj"}`, fiber.StatusUnprocessableEntity},
		{"Too large", "/contexts/" + h + "/load", fmt.Sprintf(`{"path":%q}`, filepath.Join(e.dir, "tri.obj")), fiber.StatusInsufficientStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := e.do(t, "POST", tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleSetProperty_Invalid(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{})
	h := e.create(t)

	resp, _ := e.do(t, "PUT", "/contexts/"+h+"/properties/X", `{"type":"vector","value":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = e.do(t, "PUT", "/contexts/"+h+"/properties/X", `{"type":"int","value":1.5}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = e.do(t, "PUT", "/contexts/"+h+"/properties/X", `{"type":"int","value":"7"}`)
	assert.Equal(t, 200, resp.StatusCode)

	handle, err := bridge.ParseHandle(h)
	require.NoError(t, err)
	pending, err := e.reg.PendingProperties(handle)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int32(7), pending[0].Int)
}

func TestHandleFree(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{})
	h := e.create(t)

	resp, body := e.do(t, "DELETE", "/contexts/"+h, "", CallerHeader, "host-1")
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "freed", body["status"])
	assert.Equal(t, 0, e.reg.Active())
	assert.Equal(t, 0, e.reg.Stats().HubRefs)

	resp, _ = e.do(t, "DELETE", "/contexts/"+h, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleFree_WithoutCallerHeader(t *testing.T) {
	e := setupTestApp(t, nil, bridge.Options{})

	var handles []string
	for i := 0; i < 5; i++ {
		resp, body := e.do(t, "POST", "/contexts", "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		handles = append(handles, body["handle"].(string))
	}
	assert.Equal(t, 5, e.reg.Stats().Bindings)

	for _, h := range handles {
		resp, _ := e.do(t, "DELETE", "/contexts/"+h, "")
		require.Equal(t, 200, resp.StatusCode)
	}

	stats := e.reg.Stats()
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 0, stats.HubRefs)
	assert.Equal(t, 0, stats.Bindings)
}

func TestHandleHistory(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		e := setupTestApp(t, nil, bridge.Options{})
		resp, _ := e.do(t, "GET", "/contexts/history", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Enabled", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		store := history.NewStore(db)
		require.NoError(t, store.Migrate())

		e := setupTestApp(t, store, bridge.Options{})
		h := e.create(t)
		e.do(t, "POST", "/contexts/"+h+"/load", `{"path":"missing.obj"}`)
		e.do(t, "POST", "/contexts/"+h+"/load", fmt.Sprintf(`{"path":%q}`, filepath.Join(e.dir, "tri.obj")))

		req := httptest.NewRequest("GET", "/contexts/history?limit=5", nil)
		resp, err := e.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var records []history.ImportRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
		require.Len(t, records, 2)
		assert.True(t, records[0].Success)
		assert.False(t, records[1].Success)
		assert.Equal(t, h, records[0].Handle)
	})
}

func TestHandleSessionHistory(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		e := setupTestApp(t, nil, bridge.Options{})
		h := e.create(t)
		resp, _ := e.do(t, "GET", "/contexts/"+h+"/history", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Enabled", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		store := history.NewStore(db)
		require.NoError(t, store.Migrate())

		e := setupTestApp(t, store, bridge.Options{})
		mine := e.create(t)
		other := e.create(t)
		tri := fmt.Sprintf(`{"path":%q}`, filepath.Join(e.dir, "tri.obj"))
		e.do(t, "POST", "/contexts/"+mine+"/load", tri)
		e.do(t, "POST", "/contexts/"+other+"/load", tri)
		e.do(t, "POST", "/contexts/"+mine+"/load", `{"path":"missing.obj"}`)

		resp, _ := e.do(t, "DELETE", "/contexts/"+mine, "")
		require.Equal(t, 200, resp.StatusCode)

		resp, err = e.app.Test(httptest.NewRequest("GET", "/contexts/"+mine+"/history", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var records []history.ImportRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
		require.Len(t, records, 2)
		assert.True(t, records[0].Success)
		assert.False(t, records[1].Success)
		for _, r := range records {
			assert.Equal(t, mine, r.Handle)
		}

		resp, _ = e.do(t, "GET", "/contexts/abc/history", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestLoader(t *testing.T) {
	log := zap.NewNop()
	reg, err := bridge.NewRegistry(bridge.Options{
		Engine: obj.NewFactory(),
		Hub:    logger.NewHub(func() (*zap.Logger, error) { return log, nil }, log),
	})
	require.NoError(t, err)

	feature := NewFeature(reg, nil, log, 0)
	assert.Equal(t, "contexts", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
