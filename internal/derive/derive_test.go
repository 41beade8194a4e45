package derive_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/gcrt/internal/derive"
)

func fixtureDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "testdata", "fixture")
}

func TestCandidatesFindsMarkedStructOnly(t *testing.T) {
	pkg, err := derive.Load(fixtureDir(t))
	require.NoError(t, err)

	names := derive.Candidates(pkg)
	assert.Equal(t, []string{"pair"}, names)
}

func TestGenerateEmitsForwardingMethods(t *testing.T) {
	pkg, err := derive.Load(fixtureDir(t))
	require.NoError(t, err)

	src, diags, err := derive.Generate(pkg, derive.Candidates(pkg))
	require.NoError(t, err)
	require.Len(t, diags, 1, "the scalar N field carries no Gc edges and should be reported, not silently dropped")
	assert.Contains(t, diags[0].Message, "pair.N")

	out := string(src)
	assert.Contains(t, out, "func (p *pair) Trace()")
	assert.Contains(t, out, "p.A.Trace()")
	assert.Contains(t, out, "p.B.Trace()")
	assert.Contains(t, out, "p.next.Trace()", "an unexported Gc field must still be traced since generated code lives in the same package")
	assert.Contains(t, out, "func (p *pair) RootChildren()")
	assert.Contains(t, out, "p.A.Root()")
	assert.Contains(t, out, "p.A.RootChildren()")
	assert.Contains(t, out, "p.next.Root()")
	assert.Contains(t, out, "p.next.RootChildren()")
	assert.Contains(t, out, "func (p *pair) DerootChildren()")
}

func TestGenerateIsIdempotent(t *testing.T) {
	pkg, err := derive.Load(fixtureDir(t))
	require.NoError(t, err)

	names := derive.Candidates(pkg)
	first, _, err := derive.Generate(pkg, names)
	require.NoError(t, err)
	second, _, err := derive.Generate(pkg, names)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerateUnknownTypeErrors(t *testing.T) {
	pkg, err := derive.Load(fixtureDir(t))
	require.NoError(t, err)

	_, _, err = derive.Generate(pkg, []string{"doesNotExist"})
	assert.Error(t, err)
}
