package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/slidetext/cmd/slidetext/opts"
	"github.com/walteh/slidetext/pkg/deck"
)

// writeTestDeck writes a two-slide YAML deck and returns root options
// pointing at it.
func writeTestDeck(t *testing.T) *opts.RootOpts {
	t.Helper()
	deckPath := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(deckPath, []byte(`
cursor: 1
slides:
  - shapes:
      - name: Title 1
        paragraphs:
          - runs:
              - text: "hello "
              - text: PERSON
                format: {b: "1"}
  - shapes:
      - name: Body 1
        paragraphs:
          - runs:
              - text: second slide
`), 0o644), "write deck file")

	output := ""
	return &opts.RootOpts{DeckPath: &deckPath, OutputPath: &output}
}

func TestTextCmdAllSlides(t *testing.T) {
	ro := writeTestDeck(t)

	buf := &bytes.Buffer{}
	cmd := NewTextCmd(ro)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()), "text should succeed")
	out := buf.String()
	assert.Contains(t, out, "[slide 1]", "first slide header")
	assert.Contains(t, out, "hello PERSON", "chunked paragraph prints as one string")
	assert.Contains(t, out, "[slide 2]", "second slide header")
	assert.Contains(t, out, "second slide", "second slide text")
}

func TestTextCmdSingleSlide(t *testing.T) {
	ro := writeTestDeck(t)

	buf := &bytes.Buffer{}
	cmd := NewTextCmd(ro)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--slide", "2"})

	require.NoError(t, cmd.ExecuteContext(context.Background()), "text should succeed")
	out := buf.String()
	assert.Contains(t, out, "[slide 2]", "requested slide printed")
	assert.NotContains(t, out, "[slide 1]", "other slides omitted")
}

func TestTextCmdSlideOutOfRange(t *testing.T) {
	ro := writeTestDeck(t)

	cmd := NewTextCmd(ro)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--slide", "5"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err, "slide 5 of 2 should fail")
	assert.True(t, errors.Is(err, deck.ErrSlideIndexOutOfRange), "error should be ErrSlideIndexOutOfRange")
}
