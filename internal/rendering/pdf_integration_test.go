//go:build integration

package rendering

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("Skipping: no Chrome/Chromium found")
}

func TestPrintPDF(t *testing.T) {
	requireChrome(t)

	html, err := RenderHTML(BuildDocument(Plan{Methodology: catalog.Lean}, time.Now()))
	require.NoError(t, err)

	pdf, err := PrintPDF(context.Background(), html, 0, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
