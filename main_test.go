package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"biorhythms-server/config"
	"biorhythms-server/di"
	"biorhythms-server/plotter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "store:\n" +
		"  backend: badger\n" +
		"  badger:\n" +
		"    path: " + filepath.Join(dir, "data") + "\n" +
		"logging:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "biorhythms dev")
}

func TestBirthDateCmd_Lifecycle(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "--config", cfg, "birthdate", "get")
	require.NoError(t, err)
	assert.Equal(t, "not set\n", out)

	out, err = run(t, "--config", cfg, "birthdate", "set", "1990-07-04")
	require.NoError(t, err)
	assert.Equal(t, "1990-07-04\n", out)

	out, err = run(t, "--config", cfg, "birthdate", "get")
	require.NoError(t, err)
	assert.Equal(t, "1990-07-04\n", out)

	_, err = run(t, "--config", cfg, "birthdate", "clear")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "birthdate", "get")
	require.NoError(t, err)
	assert.Equal(t, "not set\n", out)
}

func TestBirthDateCmd_Rejects(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, "--config", cfg, "birthdate", "set", "07/04/1990")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "birthdate", "set", "9999-01-01")
	assert.ErrorContains(t, err, "in the future")
}

func TestReadoutCmd(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "readout", "--birth", "2000-01-01", "--center", "2000-01-01")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2000-01-01 (born 2000-01-01)", lines[0])
	assert.Contains(t, lines[1], "physical")
	assert.Contains(t, lines[2], "emotional")
	assert.Contains(t, lines[3], "intellectual")
	for _, l := range lines[1:] {
		assert.True(t, strings.HasSuffix(l, " 0%"), l)
	}
}

func TestReadoutCmd_NoBirthDate(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "readout")
	assert.ErrorContains(t, err, "birth date not set")
}

func TestRenderCmd(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()

	for _, name := range []string{"chart.png", "chart.svg", "chart.html"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			_, err := run(t, "--config", cfg, "render", "--birth", "1990-07-04", "--out", path)
			require.NoError(t, err)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestRenderCmd_Ops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.json")
	_, err := run(t, "--config", writeConfig(t), "render",
		"--birth", "1990-07-04", "--center", "2024-03-15",
		"--span", "2", "--width", "300", "--height", "200", "--out", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec plotter.Recorder
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, 300.0, rec.Width)
	assert.Len(t, rec.OfKind(plotter.OP_POLYLINE), 3)
	assert.Len(t, rec.OfKind(plotter.OP_POLYLINE)[0].Points, 5)

	texts := rec.OfKind(plotter.OP_TEXT)
	require.Len(t, texts, 3)
	assert.Equal(t, "13 Mar", texts[0].Text)
	assert.Equal(t, "15 Mar", texts[1].Text)
	assert.Equal(t, "17 Mar", texts[2].Text)
}

func TestRenderCmd_Errors(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()

	_, err := run(t, "--config", cfg, "render", "--birth", "1990-07-04", "--out", filepath.Join(dir, "chart.gif"))
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "render", "--birth", "1990-07-04", "--span", "-1", "--out", filepath.Join(dir, "chart.png"))
	assert.Error(t, err)
}

func TestStoreOverride(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "--store", "etcd", "version")
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestRemoteMode(t *testing.T) {
	c, err := di.NewContainer(context.Background(), &config.Config{
		Store: config.StoreConfig{Backend: config.STORE_MEMORY},
		Chart: config.ChartConfig{Span: 15, Width: 400, Height: 200, MaxSpan: 60, MaxSize: 2000},
		Cache: config.CacheConfig{MaxEntries: 8, PurgeIntervalMinutes: 60},
	})
	require.NoError(t, err)
	defer c.Close()
	c.Router.RegisterRoutes()
	srv := httptest.NewServer(c.MuxRouter)
	defer srv.Close()

	cfg := writeConfig(t)
	remote := func(args ...string) (string, error) {
		return run(t, append([]string{"--config", cfg, "--server", srv.URL + "/"}, args...)...)
	}

	out, err := remote("birthdate", "get")
	require.NoError(t, err)
	assert.Equal(t, "not set\n", out)

	_, err = remote("birthdate", "set", "2000-01-01")
	require.NoError(t, err)

	d, ok, err := c.SettingsDao.GetBirthDate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2000-01-01", d.String())

	out, err = remote("readout", "--center", "2000-01-01")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2000-01-01 (born 2000-01-01)\n"), out)

	path := filepath.Join(t.TempDir(), "chart.svg")
	_, err = remote("render", "--span", "3", "--out", path)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")

	_, err = remote("birthdate", "set", "9999-01-01")
	assert.ErrorContains(t, err, "in the future")

	_, err = remote("birthdate", "clear")
	require.NoError(t, err)
	_, ok, err = c.SettingsDao.GetBirthDate()
	require.NoError(t, err)
	assert.False(t, ok)
}
