package cli_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/cli"
)

func TestGetIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig()
	gt.Array(t, cfg.Collections).Length(1).Required()

	col := cfg.Collections[0]
	gt.Value(t, col.Name).Equal("rto_rpo_analyses")
	gt.Array(t, col.Indexes).Length(1).Required()

	var paths []string
	for _, f := range col.Indexes[0].Fields {
		paths = append(paths, f.Path)
	}
	gt.Value(t, paths).Equal([]string{"business_process_id", "type", "metric"})
}

func TestImportFormat(t *testing.T) {
	for _, tc := range []struct {
		input, format, want string
	}{
		{"bps.json", "", "json"},
		{"BPS.JSON", "", "json"},
		{"bps.csv", "", "csv"},
		{"-", "", "csv"},
		{"-", "JSON", "json"},
		{"bps.json", "csv", "csv"},
	} {
		got, err := cli.ImportFormat(tc.input, tc.format)
		gt.NoError(t, err)
		gt.Value(t, got).Equal(tc.want)
	}

	_, err := cli.ImportFormat("bps.csv", "yaml")
	gt.Value(t, err).NotNil()
}

func TestCollectionNames(t *testing.T) {
	gt.Value(t, cli.CollectionNames(cli.GetIndexConfig())).Equal([]string{"rto_rpo_analyses"})
}
