package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSinkWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "corpus.json")

	sink := NewFileSink(zap.NewNop())
	require.NoError(t, sink.Write(path, Corpus{Slug: "ก", Language: "th"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Corpus
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "ก", decoded.Slug)
	require.Equal(t, "th", decoded.Language)
}

func TestFileSinkFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	sink := NewFileSink(zap.NewNop())
	err := sink.Write(filepath.Join(blocker, "corpus.json"), Corpus{})
	require.Error(t, err)
}
