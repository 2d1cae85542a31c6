package validator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/record"
	"github.com/vacrashmap/crashcheck/internal/schema"
)

// Row-level finding messages. Range bounds are formatted from the schema
// constants so the text always names the range that was checked.
var (
	msgLatInvalid = "invalid latitude value"
	msgLatRange   = fmt.Sprintf("latitude out of range [%g, %g]", schema.LatMin, schema.LatMax)
	msgLatRegion  = fmt.Sprintf("latitude outside Virginia range [%g, %g]", schema.RegionLatMin, schema.RegionLatMax)

	msgLonInvalid = "invalid longitude value"
	msgLonRange   = fmt.Sprintf("longitude out of range [%g, %g]", schema.LonMin, schema.LonMax)
	msgLonRegion  = fmt.Sprintf("longitude outside Virginia range [%g, %g]", schema.RegionLonMin, schema.RegionLonMax)

	msgProbInvalid = "invalid probability value"
	msgProbRange   = fmt.Sprintf("probability out of range [%g, %g]", schema.ProbabilityMin, schema.ProbabilityMax)

	msgHourInvalid = "invalid hour value"
	msgHourRange   = fmt.Sprintf("hour out of range [%d, %d]", schema.HourMin, schema.HourMax)
)

// Validator checks CSV data against the crash-prediction schema. It holds
// no state between runs; validating the same file twice produces the same
// findings.
type Validator struct {
	clock clockwork.Clock
}

// New returns a Validator using the real clock.
func New() *Validator {
	return &Validator{clock: clockwork.NewRealClock()}
}

// NewWithClock returns a Validator that reads time from clk.
func NewWithClock(clk clockwork.Clock) *Validator {
	return &Validator{clock: clk}
}

// ValidateFile opens and validates the CSV file at path.
//
// A file that does not exist or cannot be opened is returned as an error
// with no report: nothing was read, so there are no findings to report.
// Every other validation outcome lives in the returned Report.
func (v *Validator) ValidateFile(path string) (*Report, error) {
	slog.Info("validating CSV file", "path", path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	report, err := v.Validate(f)
	if err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}
	report.Path = path
	return report, nil
}

// Validate reads CSV data from r and checks every row against the schema.
//
// The error return is reserved for reads that fail partway through the
// file. In that case any findings collected so far are discarded: the file
// could not be fully inspected, so a partial report would be misleading.
func (v *Validator) Validate(r io.Reader) (*Report, error) {
	start := v.clock.Now()
	report := &Report{StartedAt: start}

	rd := record.NewReader(r)
	header, err := rd.Header()
	if errors.Is(err, errors.ErrNoHeader) {
		report.addError(0, "", "no header row found", "")
		report.Duration = v.clock.Since(start)
		return report, nil
	}
	if err != nil {
		return nil, err
	}

	report.Columns = header
	if missing := schema.Missing(header); len(missing) > 0 {
		report.addError(0, "", "missing required columns: "+strings.Join(missing, ", "), "")
	}

	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		report.Rows++

		nErrs, nWarns := len(report.Errors), len(report.Warnings)
		checkRow(report, rec)
		if len(report.Errors) > nErrs || len(report.Warnings) > nWarns {
			slog.Debug("row has findings",
				"row", rec.Row,
				"errors", len(report.Errors)-nErrs,
				"warnings", len(report.Warnings)-nWarns,
			)
		}
	}

	report.Passed = len(report.Errors) == 0
	report.Duration = v.clock.Since(start)

	slog.Info("validation finished",
		"rows", report.Rows,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"passed", report.Passed,
	)
	return report, nil
}

// checkRow applies all four field checks. Each check is independent: one
// field failing never skips the checks on the remaining fields.
func checkRow(report *Report, rec *record.Record) {
	checkLatitude(report, rec)
	checkLongitude(report, rec)
	checkProbability(report, rec)
	checkHour(report, rec)
}

// checkLatitude parses the lat column and applies the global and regional
// range checks. Both checks run on every parsed value: a latitude can be
// out of the global range and outside the Virginia box at the same time,
// and each finding is recorded separately.
func checkLatitude(report *Report, rec *record.Record) {
	raw, ok := rec.Field(schema.ColLatitude)
	if !ok {
		report.addError(rec.Row, schema.ColLatitude, msgLatInvalid, "")
		return
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		report.addError(rec.Row, schema.ColLatitude, msgLatInvalid, raw)
		return
	}
	// Range tests are written negated so NaN counts as out of range.
	if !(lat >= schema.LatMin && lat <= schema.LatMax) {
		report.addError(rec.Row, schema.ColLatitude, msgLatRange, raw)
	}
	if !(lat >= schema.RegionLatMin && lat <= schema.RegionLatMax) {
		report.addWarning(rec.Row, schema.ColLatitude, msgLatRegion, raw)
	}
}

// checkLongitude mirrors checkLatitude for the lon column.
func checkLongitude(report *Report, rec *record.Record) {
	raw, ok := rec.Field(schema.ColLongitude)
	if !ok {
		report.addError(rec.Row, schema.ColLongitude, msgLonInvalid, "")
		return
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		report.addError(rec.Row, schema.ColLongitude, msgLonInvalid, raw)
		return
	}
	if !(lon >= schema.LonMin && lon <= schema.LonMax) {
		report.addError(rec.Row, schema.ColLongitude, msgLonRange, raw)
	}
	if !(lon >= schema.RegionLonMin && lon <= schema.RegionLonMax) {
		report.addWarning(rec.Row, schema.ColLongitude, msgLonRegion, raw)
	}
}

// checkProbability parses the probability column and applies the [0, 1]
// range check. There is no regional tier for probabilities.
func checkProbability(report *Report, rec *record.Record) {
	raw, ok := rec.Field(schema.ColProbability)
	if !ok {
		report.addError(rec.Row, schema.ColProbability, msgProbInvalid, "")
		return
	}
	prob, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		report.addError(rec.Row, schema.ColProbability, msgProbInvalid, raw)
		return
	}
	if !(prob >= schema.ProbabilityMin && prob <= schema.ProbabilityMax) {
		report.addError(rec.Row, schema.ColProbability, msgProbRange, raw)
	}
}

// checkHour requires an integral hour of day. Fractional text such as
// "5.5" fails the parse even though it would parse as a float.
func checkHour(report *Report, rec *record.Record) {
	raw, ok := rec.Field(schema.ColHour)
	if !ok {
		report.addError(rec.Row, schema.ColHour, msgHourInvalid, "")
		return
	}
	hour, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		report.addError(rec.Row, schema.ColHour, msgHourInvalid, raw)
		return
	}
	if hour < schema.HourMin || hour > schema.HourMax {
		report.addError(rec.Row, schema.ColHour, msgHourRange, raw)
	}
}
