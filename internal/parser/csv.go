package parser

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/machine-dashboard/backend/internal/models"
)

// Required header names of the activity CSV.
const (
	ColumnMachineID = "MachineID"
	ColumnState     = "State"
	ColumnStartTime = "Start Time"
	ColumnEndTime   = "End Time"
)

var requiredColumns = []string{ColumnMachineID, ColumnState, ColumnStartTime, ColumnEndTime}

var (
	// ErrEmptyFile is returned when the CSV has no header row.
	ErrEmptyFile = errors.New("activity log is empty")
	// ErrMissingColumns is returned when a required header is absent.
	ErrMissingColumns = errors.New("activity log is missing required columns")
)

const utf8BOM = "\ufeff"

// ActivityCSVParser handles machine activity CSV files.
// Format: header row with at least "MachineID,State,Start Time,End Time".
type ActivityCSVParser struct{}

func NewActivityCSVParser() *ActivityCSVParser {
	return &ActivityCSVParser{}
}

func (p *ActivityCSVParser) Name() string {
	return "activity_csv"
}

// CanParse checks that the first line of the file carries all required headers.
func (p *ActivityCSVParser) CanParse(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	r := csv.NewReader(bufio.NewReader(file))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return false, nil
	}
	_, missing := indexColumns(header)
	return len(missing) == 0, nil
}

// Parse loads the whole file.
func (p *ActivityCSVParser) Parse(filePath string) (*models.ActivityTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening activity log %s", filePath)
	}
	defer file.Close()

	table, err := p.ParseReader(file, filePath)
	if err != nil {
		return nil, errors.WithMessage(err, filePath)
	}
	return table, nil
}

// ParseReader loads records from r. source is only used for labelling.
func (p *ActivityCSVParser) ParseReader(r io.Reader, source string) (*models.ActivityTable, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	cols, missing := indexColumns(header)
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingColumns, "header has no %s", strings.Join(missing, ", "))
	}

	table := models.NewActivityTable(source)
	labels := newLabelIntern()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading activity rows")
		}
		line, _ := cr.FieldPos(0)

		rec := models.ActivityRecord{
			MachineID: labels.Intern(strings.TrimSpace(row[cols[ColumnMachineID]])),
			State:     labels.Intern(strings.TrimSpace(row[cols[ColumnState]])),
			StartRaw:  strings.Clone(row[cols[ColumnStartTime]]),
			EndRaw:    strings.Clone(row[cols[ColumnEndTime]]),
			Line:      line,
		}

		if ts, err := ParseTimestamp(rec.StartRaw); err == nil {
			rec.Start = ts
		} else {
			table.ParseErrors = append(table.ParseErrors, models.ParseError{
				Line: line, Content: rec.StartRaw, Reason: "invalid Start Time: " + err.Error(),
			})
		}
		if ts, err := ParseTimestamp(rec.EndRaw); err == nil {
			rec.End = ts
		} else {
			table.ParseErrors = append(table.ParseErrors, models.ParseError{
				Line: line, Content: rec.EndRaw, Reason: "invalid End Time: " + err.Error(),
			})
		}

		table.Records = append(table.Records, rec)
		table.TimeRange = extendRange(table.TimeRange, rec)
	}

	return table, nil
}

// indexColumns maps required header names to their positions.
func indexColumns(header []string) (map[string]int, []string) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return cols, missing
}

func extendRange(tr *models.TimeRange, rec models.ActivityRecord) *models.TimeRange {
	if !rec.Valid() {
		return tr
	}
	if tr == nil {
		return &models.TimeRange{Start: rec.Start, End: rec.End}
	}
	if rec.Start.Before(tr.Start) {
		tr.Start = rec.Start
	}
	if rec.End.After(tr.End) {
		tr.End = rec.End
	}
	return tr
}
