package cli

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metawizard/pkg/config"
	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/prompt/prompttest"
	"github.com/goliatone/go-metawizard/pkg/testsupport"
)

func execute(t *testing.T, driver prompt.Driver, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := &App{Out: &out, Err: &out}
	if driver != nil {
		app.Driver = func(io.Writer) prompt.Driver { return driver }
	}
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, nil, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"run", "inspect", "schema"} {
		assert.Contains(t, out, sub)
	}
}

func TestVersionFlag(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, nil, "schema", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"DecisionRecord"`)
	assert.Contains(t, out, `"HyperparameterRecord"`)

	out, err = execute(t, nil, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi:")

	_, err = execute(t, nil, "schema", "--format", "xml")
	require.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1,Flag\n1,2.5,True\n3,4,False\n")

	out, err := execute(t, nil, "inspect", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "3 columns, 2 rows")
	assert.Contains(t, out, "X1")
	assert.Contains(t, out, "float64")
	assert.Contains(t, out, "bool")

	out, err = execute(t, nil, "inspect", "--data", data, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Y"`)
	assert.Contains(t, out, `"rows": 2`)
}

func TestInspectRequiresData(t *testing.T) {
	_, err := execute(t, nil, "inspect")
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1\n1,2\n")
	out := t.TempDir()

	driver := &prompttest.Driver{
		Selects:  []int{0, 0, 0, 0, 0, 0},
		Multi:    [][]int{{0}, {0}},
		Inputs:   []string{"", "", ""},
		Confirms: []bool{false},
	}
	stdout, err := execute(t, driver, "run", "--data", data, "--out", out)
	require.NoError(t, err)
	require.True(t, driver.Exhausted(), "asked: %v", driver.Asked())

	assert.Contains(t, stdout, "done")
	assert.Contains(t, stdout, "X1")

	decisions := testsupport.MustReadFile(t, filepath.Join(out, "decisions.csv"))
	assert.True(t, strings.HasPrefix(decisions, "Column,Level 1"), decisions)
	assert.Contains(t, decisions, "X1,True,False,False,False,False,False")

	hyperCSV := testsupport.MustReadFile(t, filepath.Join(out, "setup_hyper.csv"))
	assert.Contains(t, hyperCSV, "['Poisson'],Single,BIC,,240000,100,80,0,100")
}

func TestRunCommandHTMLFormat(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1\n1,2\n")
	out := t.TempDir()

	driver := &prompttest.Driver{
		Selects:  []int{0, 0, 0, 0, 0, 0},
		Multi:    [][]int{{0}, {0}},
		Inputs:   []string{"", "", ""},
		Confirms: []bool{false},
	}
	_, err := execute(t, driver, "run", "--data", data, "--out", out, "--format", "html", "--summary=false")
	require.NoError(t, err)

	html := testsupport.MustReadFile(t, filepath.Join(out, "decisions.html"))
	assert.Contains(t, html, "X1")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1\n1,2\n")

	_, err := execute(t, &prompttest.Driver{}, "run", "--data", data, "--format", "xlsx")
	require.Error(t, err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1\n1,2\n")
	cfgPath := testsupport.WriteDataset(t, "config.yaml", "split_policy: loose\n")

	_, err := execute(t, &prompttest.Driver{}, "run", "--data", data, "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrConfig), "got %v", err)
}

func TestRunAbortReported(t *testing.T) {
	data := testsupport.WriteDataset(t, "data.csv", "Y,X1\n1,2\n")

	out, err := execute(t, &prompttest.Driver{}, "run", "--data", data, "--out", t.TempDir())
	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.Contains(t, out, "aborted")
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError(errors.New("boom")), "Error: boom")
}
