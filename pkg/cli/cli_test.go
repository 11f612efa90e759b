package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/cli"
)

func run(args ...string) error {
	return cli.Run(context.Background(), append([]string{"bcplanner"}, args...), "test")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	path := writeFile(t, "scoring.toml", `
mode = "step_table"

[[revenue_loss]]
threshold = 0
score = 0

[[revenue_loss]]
threshold = 50000
score = 3

[weights]
safety = 2
`)
	gt.NoError(t, run("validate", "--scoring-config", path))
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	path := writeFile(t, "scoring.toml", "[tiers]\ngold = 1.0\nsilver = 2.0\n")
	gt.Value(t, run("validate", "--scoring-config", path)).NotNil()
}

func TestRun_ValidateCommand_MissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.toml")
	gt.Value(t, run("validate", "--scoring-config", path)).NotNil()
}

func TestRun_ImportAndReport(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "bcp.db")
	output := filepath.Join(dir, "plan.pdf")

	input := writeFile(t, "processes.csv", "name,owner,it_applications,facilities\n"+
		"Payroll,Finance,ERP;Bank portal,HQ\n"+
		"Order intake,Sales,CRM,\n")

	gt.NoError(t, run("import",
		"--owner", "owner-1",
		"--input", input,
		"--repository-backend", "sqlite",
		"--sql-dsn", dsn,
	)).Required()

	gt.NoError(t, run("report",
		"--owner", "owner-1",
		"--output", output,
		"--repository-backend", "sqlite",
		"--sql-dsn", dsn,
	)).Required()

	data, err := os.ReadFile(output)
	gt.NoError(t, err).Required()
	gt.Value(t, string(data[:5])).Equal("%PDF-")
}

func TestRun_ImportCommand_JSON(t *testing.T) {
	input := writeFile(t, "processes.json", `[{"name":"Payroll","people":"Alice;Bob"}]`)
	gt.NoError(t, run("import",
		"--owner", "owner-1",
		"--input", input,
		"--repository-backend", "memory",
	))
}

func TestRun_ImportCommand_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		input := writeFile(t, "processes.txt", "name\nPayroll\n")
		gt.Value(t, run("import",
			"--owner", "owner-1",
			"--input", input,
			"--format", "xml",
			"--repository-backend", "memory",
		)).NotNil()
	})

	t.Run("missing file", func(t *testing.T) {
		gt.Value(t, run("import",
			"--owner", "owner-1",
			"--input", filepath.Join(t.TempDir(), "none.csv"),
			"--repository-backend", "memory",
		)).NotNil()
	})

	t.Run("row without name", func(t *testing.T) {
		input := writeFile(t, "processes.csv", "name,owner\n,Finance\n")
		gt.Value(t, run("import",
			"--owner", "owner-1",
			"--input", input,
			"--repository-backend", "memory",
		)).NotNil()
	})
}

func TestRun_ReportCommand_RequiresOwner(t *testing.T) {
	gt.Value(t, run("report", "--repository-backend", "memory")).NotNil()
}
