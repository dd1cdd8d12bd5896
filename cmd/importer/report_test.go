package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"profileviews/internal/service"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, []service.SnapshotResult{
		{Name: "20251123132822.json", Imported: 12},
		{Name: "20251124090000.json", Imported: 3, Err: errors.New("edge 3: boom")},
	})

	assert.Equal(t,
		"20251123132822.json: 12 records imported\n"+
			"20251124090000.json: 3 records imported, failed: edge 3: boom\n"+
			"15 records imported\n",
		buf.String())
}

func TestConcurrencyOr(t *testing.T) {
	assert.Equal(t, 4, concurrencyOr(4, 2))
	assert.Equal(t, 2, concurrencyOr(0, 2))
	assert.Equal(t, 2, concurrencyOr(-1, 2))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["file"])
	assert.True(t, names["dir"])
	assert.True(t, names["archived"])
}
