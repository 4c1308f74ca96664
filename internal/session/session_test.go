package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/custlens-cli/internal/table"
)

func base(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New([]string{"First Name", "Email", "Company"}, [][]string{
		{"Ana", "ana@acme.com", "Acme"},
		{"Bo", "bo@globex.com", "Globex"},
		{"Cy", "cy@initech.io", "Initech"},
	})
	require.NoError(t, err)
	return tb
}

func TestEditsNeverMutateBase(t *testing.T) {
	b := base(t)
	snapshot := b.Rows()
	s := New(b)
	require.NotEmpty(t, s.ID)

	_, err := s.Set(0, "Company", "Acme Corp")
	require.NoError(t, err)
	_, err = s.Delete(1)
	require.NoError(t, err)
	cur, err := s.Append(map[string]string{"First Name": "Di", "Email": "di@hooli.com"})
	require.NoError(t, err)

	assert.Equal(t, snapshot, b.Rows())
	assert.Same(t, b, s.Base())
	assert.Equal(t, [][]string{
		{"Ana", "ana@acme.com", "Acme Corp"},
		{"Cy", "cy@initech.io", "Initech"},
		{"Di", "di@hooli.com", ""},
	}, cur.Rows())

	hist := s.History()
	require.Len(t, hist, 3)
	assert.Equal(t, OpSet, hist[0].Op)
	assert.NotEqual(t, hist[0].ID, hist[1].ID)
}

func TestEmailValidation(t *testing.T) {
	s := New(base(t))

	_, err := s.Set(1, "Email", "not-an-email")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Row)
	assert.Equal(t, "Email", ve.Column)

	_, err = s.Append(map[string]string{"First Name": "Zoe", "Email": "zoe@nowhere"})
	require.True(t, errors.As(err, &ve))

	// clearing an email is allowed
	_, err = s.Set(1, "Email", "")
	require.NoError(t, err)
	assert.Len(t, s.History(), 1)
}

func TestRowOutOfRange(t *testing.T) {
	s := New(base(t))
	_, err := s.Delete(3)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
	_, err = s.Set(-1, "Company", "x")
	assert.ErrorIs(t, err, ErrRowOutOfRange)
	_, err = s.Set(0, "Phone", "x")
	assert.Error(t, err)
	assert.Empty(t, s.History())
}

func TestReset(t *testing.T) {
	b := base(t)
	s := New(b)
	_, err := s.Delete(0)
	require.NoError(t, err)
	s.Reset()
	assert.True(t, s.Table().Equal(b))
	assert.Empty(t, s.History())
}

func TestApplyAllIsAllOrNothing(t *testing.T) {
	b := base(t)
	s := New(b)
	_, err := s.ApplyAll([]Edit{
		{Op: OpDelete, Row: 0},
		{Op: OpSet, Row: 0, Column: "Email", Value: "broken"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edit 2 (set)")
	assert.True(t, s.Table().Equal(b))
	assert.Empty(t, s.History())

	out, err := s.ApplyAll([]Edit{{Op: OpDelete, Row: 0}, {Op: OpDelete, Row: 0}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, "Cy", out.Row(0).Value("First Name"))
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edits.yaml")
	script := `edits:
  - op: set
    row: 0
    column: Email
    value: ana@acme.org
  - op: delete
    row: 2
  - op: append
    values:
      First Name: Zoe
      Email: zoe@initech.io
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	edits, err := LoadScript(path)
	require.NoError(t, err)
	require.Len(t, edits, 3)
	assert.Equal(t, "Zoe", edits[2].Values["First Name"])

	s := New(base(t))
	out, err := s.ApplyAll(edits)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, "ana@acme.org", out.Row(0).Value("Email"))
	assert.Equal(t, "Zoe", out.Row(2).Value("First Name"))
}

func TestParseScriptRejectsUnknownOp(t *testing.T) {
	_, err := ParseScript([]byte("edits:\n  - op: rename\n"))
	assert.ErrorContains(t, err, `unknown op "rename"`)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
