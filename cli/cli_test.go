package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nmodel"
)

func TestStartEvaluating(t *testing.T) {
	expectedOutputs := map[string]EvalCmd{
		"(Num Vertices > 2) => true (true)\n": {
			Expr: "Num Vertices > 2",
			Vars: []string{"Num Vertices=3"},
		},
		"(Version >= 20.2.0.7) => false (false)\n": {
			Expr: "Version >= 20.2.0.7",
			Vars: []string{"Version = 10.0.1.0"},
		},
		"Has Normals => <invalid> (false)\n": {
			Expr: "Has Normals",
		},
	}
	for expected, cmd := range expectedOutputs {
		w := bytes.Buffer{}
		require.NoError(t, StartEvaluating(&w, cmd))
		assert.Equal(t, expected, w.String())
	}
}

func TestStartEvaluating_Errors(t *testing.T) {
	w := bytes.Buffer{}
	err := StartEvaluating(&w, EvalCmd{Expr: "(a == 1"})
	assert.True(t, errors.Is(err, nexpr.ErrUnbalancedParentheses))

	err = StartEvaluating(&w, EvalCmd{Expr: "a", Vars: []string{"a"}})
	assert.Error(t, err)
	assert.Empty(t, w.String())
}

func TestStartPacking(t *testing.T) {
	w := bytes.Buffer{}
	require.NoError(t, StartPacking(&w, VersionCmd{Versions: []string{"20.2.0.7", "4.0.0.2"}}))
	assert.Equal(t, "20.2.0.7\t0x14020007\t20.2.0.7\n4.0.0.2\t0x04000002\t4.0.0.2\n", w.String())

	assert.Error(t, StartPacking(&w, VersionCmd{Versions: []string{"abc"}}))
}

func TestBuildDemo(t *testing.T) {
	logger, hook := test.NewNullLogger()
	doc, err := BuildDemo(DemoCmd{Shapes: 2}, logger)
	require.NoError(t, err)

	assert.Equal(t, 4, doc.BlockCount())
	assert.Equal(t, []int32{2, 3}, doc.BlockLinks(0))
	assert.Equal(t, []int{2, 3}, doc.ReferencedBy(1))
	assert.Equal(t, "Shape 1", nitem.Get[string](doc.BlockField(doc.Block(3), "Name")))
	assert.Empty(t, doc.Messages())
	assert.Empty(t, hook.AllEntries())

	_, err = BuildDemo(DemoCmd{FileVersion: "junk"}, logger)
	assert.True(t, errors.Is(err, nmodel.ErrInvalidVersion))
}

func TestStartDemo(t *testing.T) {
	w := bytes.Buffer{}
	require.NoError(t, StartDemo(&w, DemoCmd{FileVersion: "20.0.0.5", Shapes: 1}))

	out := w.String()
	assert.Contains(t, out, `"version": "20.0.0.5"`)
	assert.Contains(t, out, `"type": "BSFadeNode"`)
	assert.Contains(t, out, `"Name": "Scene Root"`)
	assert.Contains(t, out, `"Data": 1`)
}

func TestStartDumping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.nif")
	demo := bytes.Buffer{}
	require.NoError(t, StartDemo(&demo, DemoCmd{FileVersion: "10.0.1.0", Shapes: 3, Out: path}))

	dumped := bytes.Buffer{}
	require.NoError(t, StartDumping(&dumped, DumpCmd{Path: path}))
	assert.Equal(t, demo.String(), dumped.String())
	assert.Contains(t, dumped.String(), `"version": "10.0.1.0"`)

	assert.Error(t, StartDumping(&dumped, DumpCmd{Path: filepath.Join(t.TempDir(), "missing.nif")}))
}
