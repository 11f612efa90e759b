package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/cli/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Import file formats
const (
	formatCSV  = "csv"
	formatJSON = "json"
)

func cmdImport() *cli.Command {
	var owner string
	var input string
	var format string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Owner ID the imported business processes belong to",
			Required:    true,
			Sources:     cli.EnvVars("BCPLANNER_OWNER"),
			Destination: &owner,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "CSV or JSON file to import ('-' reads stdin)",
			Required:    true,
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Input format [csv|json]; guessed from the file extension when omitted",
			Destination: &format,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Bulk import business processes from CSV or JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			records, err := readImportRecords(ctx, input, format)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, "repository", repo)

			uc := usecase.New(repo)
			result, err := uc.BusinessProcess.Import(ctx, model.OwnerID(owner), records)
			if err != nil {
				var created []model.BusinessProcessID
				if result != nil {
					for _, bp := range result.Created {
						created = append(created, bp.ID)
					}
				}
				return goerr.Wrap(err, "failed to import business processes",
					goerr.V("input", input), goerr.V("created", created))
			}

			logging.Default().Info("Import completed",
				"input", input,
				"created", len(result.Created),
				"skipped", result.Skipped,
			)
			return nil
		},
	}
}

func importFormat(input, format string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(input), ".json") {
			return formatJSON, nil
		}
		return formatCSV, nil
	}
	switch f := strings.ToLower(format); f {
	case formatCSV, formatJSON:
		return f, nil
	default:
		return "", goerr.Wrap(config.ErrInvalidConfig, "unknown import format", goerr.V("format", format))
	}
}

func readImportRecords(ctx context.Context, input, format string) ([]usecase.ImportRecord, error) {
	f, err := importFormat(input, format)
	if err != nil {
		return nil, err
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		// #nosec G304 - path is provided by CLI flag
		file, err := os.Open(input)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open import file", goerr.V("input", input))
		}
		defer safe.Close(ctx, "import file", file)
		r = file
	}

	if f == formatJSON {
		return usecase.ParseImportJSON(r)
	}
	return usecase.ParseImportCSV(r)
}
