package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "Capacitac…", truncate("Capacitación RCP 2024", 10))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-11-05", formatDate(time.Date(2024, 11, 5, 18, 0, 0, 0, time.UTC)))
}

func TestDraftKey(t *testing.T) {
	draftUser = ""
	assert.Equal(t, "post-nuevo", draftKey("post-nuevo"))

	draftUser = "u1"
	t.Cleanup(func() { draftUser = "" })
	assert.Equal(t, "u1.post-nuevo", draftKey("post-nuevo"))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"posts", "list"},
		{"legal-posts", "bulk"},
		{"casos", "select-page"},
		{"staff", "create"},
		{"drafts", "watch"},
	} {
		cmd, _, err := rootCmd.Find(path)
		assert.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
