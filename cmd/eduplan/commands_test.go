package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/config"
	"github.com/jonathan/eduplan/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag variable between in-process runs
func resetFlags() {
	configPath, storePath, databaseURL, logFile, modelName = "", "", "", "", ""
	verbose = false
	methodology = "TRADITIONAL"
	servePort, serveCORSOrigin, servePrintTimeout, serveSpeech = 0, "", 0, false
	showJSON = false
	autofillPlan = false
	exportOut, printOut, printHTML, printTimeoutFlag = "", "", false, 0
	narrateDryRun = false
}

// run executes the CLI in-process against store with the oracle disabled
func run(t *testing.T, store string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EDUPLAN_STORE", "")
	t.Setenv("EDUPLAN_LOG_FILE", "")
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--store", store}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func storeFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "plan.json")
}

func showState(t *testing.T, store string) planner.View {
	t.Helper()
	out, err := run(t, store, "", "show", "--json")
	require.NoError(t, err)
	var view planner.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func TestShow_Defaults(t *testing.T) {
	store := storeFile(t)

	out, err := run(t, store, "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN TRADICIONAL CORPORATIVA")
	assert.Contains(t, out, "Resumen Ejecutivo")

	view := showState(t, store)
	assert.Equal(t, "TRADITIONAL", string(view.Methodology))
	assert.Equal(t, "EDIT", string(view.ViewMode))
}

func TestShow_Lean(t *testing.T) {
	out, err := run(t, storeFile(t), "", "--methodology", "canvas", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Propuesta de Valor")
}

func TestShow_InvalidMethodology(t *testing.T) {
	_, err := run(t, storeFile(t), "", "--methodology", "waterfall", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown methodology")
}

func TestSet_PersistsAcrossRuns(t *testing.T) {
	store := storeFile(t)

	_, err := run(t, store, "", "set", "idea", "Academia de robótica para niños")
	require.NoError(t, err)
	_, err = run(t, store, "", "set", "field", "businessName", "RoboKids")
	require.NoError(t, err)
	_, err = run(t, store, "Un resumen\nen dos líneas\n", "set", "section", "1", "-")
	require.NoError(t, err)

	view := showState(t, store)
	assert.Equal(t, "Academia de robótica para niños", view.Idea)
	assert.Equal(t, "RoboKids", view.Profile.BusinessName)
	assert.Equal(t, "Un resumen\nen dos líneas", view.Contents["1"])
	assert.True(t, view.Ready("2"))

	_, err = os.Stat(store)
	assert.NoError(t, err)
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown field", args: []string{"set", "field", "nickname", "x"}, want: "unknown profile field"},
		{name: "unknown section", args: []string{"set", "section", "99", "x"}, want: "unknown section"},
		{name: "profile section", args: []string{"set", "section", "2", "x"}, want: "company profile"},
		{name: "missing value", args: []string{"set", "idea"}, want: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, storeFile(t), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExplain_Fallback(t *testing.T) {
	out, err := run(t, storeFile(t), "", "explain", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "ANÁLISIS")
	assert.NotEmpty(t, strings.TrimSpace(out))

	_, err = run(t, storeFile(t), "", "explain", "L1")
	assert.ErrorIs(t, err, planner.ErrUnknownSection)
}

func TestRefine_FallsBackWithoutKey(t *testing.T) {
	store := storeFile(t)

	out, err := run(t, store, "", "refine")
	require.NoError(t, err)
	assert.Equal(t, advisor.IdeaFallback, strings.TrimSpace(out))
	assert.Equal(t, advisor.IdeaFallback, showState(t, store).Idea)
}

func TestFillField_Errors(t *testing.T) {
	store := storeFile(t)

	_, err := run(t, store, "", "fill-field", "nickname")
	require.Error(t, err)

	_, err = run(t, store, "", "set", "idea", "   ")
	require.NoError(t, err)
	_, err = run(t, store, "", "fill-field", "adn")
	assert.ErrorIs(t, err, planner.ErrIdeaRequired)

	_, err = run(t, store, "", "set", "idea", "Cafetería de especialidad")
	require.NoError(t, err)
	_, err = run(t, store, "", "fill-field", "adn")
	assert.ErrorIs(t, err, planner.ErrNoResult)
}

func TestAutofill_WithoutKey(t *testing.T) {
	store := storeFile(t)
	_, err := run(t, store, "", "set", "idea", "Cafetería de especialidad")
	require.NoError(t, err)

	_, err = run(t, store, "", "autofill", "--plan")
	assert.ErrorIs(t, err, planner.ErrNoResult)
}

func TestExport_Stdout(t *testing.T) {
	store := storeFile(t)
	_, err := run(t, store, "", "set", "idea", "Taller de cerámica")
	require.NoError(t, err)
	_, err = run(t, store, "", "set", "section", "1", "Resumen del taller")
	require.NoError(t, err)

	out, err := run(t, store, "", "export", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Taller de cerámica")
	assert.Contains(t, out, "Resumen del taller")
}

func TestExport_File(t *testing.T) {
	store := storeFile(t)
	target := filepath.Join(t.TempDir(), "plan.txt")

	_, err := run(t, store, "", "export", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPrint_HTML(t *testing.T) {
	store := storeFile(t)
	_, err := run(t, store, "", "set", "field", "businessName", "RoboKids")
	require.NoError(t, err)

	out, err := run(t, store, "", "print", "--html", "--out", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>"))
	assert.Contains(t, out, "RoboKids")
}

func TestNarrate_DryRun(t *testing.T) {
	store := storeFile(t)
	_, err := run(t, store, "", "set", "field", "businessName", "RoboKids")
	require.NoError(t, err)

	out, err := run(t, store, "", "narrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan de Negocios para RoboKids.")
	assert.Contains(t, out, "Identidad Corporativa.")
}

func TestLoadConfig_Layering(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "eduplan.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"port": 9000, "model": "file-model", "store_path": "`+filepath.Join(dir, "file.json")+`"}`), 0644))

	t.Setenv("EDUPLAN_MODEL", "env-model")
	t.Setenv("EDUPLAN_PORT", "7000")
	t.Setenv("EDUPLAN_STORE", "")
	resetFlags()
	configPath = cfgFile
	storePath = filepath.Join(dir, "flag.json")

	cfg, err := loadConfig(rootCmd, config.Config{})
	require.NoError(t, err)
	assert.Equal(t, storePath, cfg.StorePath)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "file-model", cfg.Model)
	resetFlags()
}
