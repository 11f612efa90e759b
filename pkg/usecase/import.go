package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// ImportRecord is one flat row of a bulk import. Dependency columns hold items
// separated by semicolons or newlines.
type ImportRecord struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Owner          string `json:"owner"`
	People         string `json:"people"`
	ITApplications string `json:"itApplications"`
	Devices        string `json:"devices"`
	Facilities     string `json:"facilities"`
	Suppliers      string `json:"suppliers"`
}

// IsEmpty reports whether every column of the record is blank
func (r ImportRecord) IsEmpty() bool {
	for _, v := range []string{r.Name, r.Description, r.Owner, r.People, r.ITApplications, r.Devices, r.Facilities, r.Suppliers} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (r ImportRecord) toInput() BusinessProcessInput {
	return BusinessProcessInput{
		Name:        r.Name,
		Description: r.Description,
		Owner:       r.Owner,
		Dependencies: model.Dependencies{
			People:         splitItems(r.People),
			ITApplications: splitItems(r.ITApplications),
			Devices:        splitItems(r.Devices),
			Facilities:     splitItems(r.Facilities),
			Suppliers:      splitItems(r.Suppliers),
		},
	}
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Created []*model.BusinessProcess `json:"created"`
	Skipped int                      `json:"skipped"`
}

// Import creates one business process per non-empty record. A record with
// other columns set but no name is rejected before anything is written.
// Creation is not transactional: when the store fails midway, the processes
// already written stay stored and are returned in the result alongside the
// error.
func (uc *BusinessProcessUseCase) Import(ctx context.Context, owner model.OwnerID, records []ImportRecord) (*ImportResult, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	result := &ImportResult{Created: []*model.BusinessProcess{}}
	inputs := make([]BusinessProcessInput, 0, len(records))
	for i, r := range records {
		if r.IsEmpty() {
			result.Skipped++
			continue
		}
		in := r.toInput()
		if err := in.validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid import record", goerr.V("row", i+1))
		}
		inputs = append(inputs, in)
	}

	for _, in := range inputs {
		bp, err := uc.Create(ctx, owner, in)
		if err != nil {
			return result, err
		}
		result.Created = append(result.Created, bp)
	}

	logging.From(ctx).Info("business processes imported",
		"owner_id", owner,
		"created", len(result.Created),
		"skipped", result.Skipped,
	)
	return result, nil
}

// ParseImportJSON decodes a JSON array of import records
func ParseImportJSON(r io.Reader) ([]ImportRecord, error) {
	var records []ImportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, goerr.Wrap(classify(ErrValidation, err), "failed to decode import records")
	}
	return records, nil
}

var importColumns = map[string]func(*ImportRecord, string){
	"name":            func(r *ImportRecord, v string) { r.Name = v },
	"description":     func(r *ImportRecord, v string) { r.Description = v },
	"owner":           func(r *ImportRecord, v string) { r.Owner = v },
	"people":          func(r *ImportRecord, v string) { r.People = v },
	"it_applications": func(r *ImportRecord, v string) { r.ITApplications = v },
	"itapplications":  func(r *ImportRecord, v string) { r.ITApplications = v },
	"devices":         func(r *ImportRecord, v string) { r.Devices = v },
	"facilities":      func(r *ImportRecord, v string) { r.Facilities = v },
	"suppliers":       func(r *ImportRecord, v string) { r.Suppliers = v },
}

// ParseImportCSV decodes CSV with a header row. Header names are matched
// case-insensitively; unknown columns are ignored.
func ParseImportCSV(r io.Reader) ([]ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []ImportRecord{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(classify(ErrValidation, err), "failed to read CSV header")
	}

	setters := make([]func(*ImportRecord, string), len(header))
	known := false
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		key = strings.ReplaceAll(key, " ", "_")
		if set, ok := importColumns[key]; ok {
			setters[i] = set
			known = true
		}
	}
	if !known {
		return nil, goerr.Wrap(ErrValidation, "CSV header has no known columns", goerr.V("header", header))
	}

	var records []ImportRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(classify(ErrValidation, err), "failed to read CSV row", goerr.V("line", line))
		}

		var rec ImportRecord
		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(v))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func splitItems(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '\n'
	})
}
