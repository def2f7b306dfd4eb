package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// Column names as they appear in the CSV header.
const (
	ColProvider     = "Provider Name"
	ColProgram      = "Program Name"
	ColDay          = "Day of the week"
	ColStart        = "Start time"
	ColEnd          = "End time"
	ColCategory     = "Interest Category"
	ColMinAge       = "Min Age"
	ColMaxAge       = "Max Age"
	ColAddress      = "Address"
	ColProgramType  = "Program Type"
	ColGradeLevel   = "Grade_Level"
	ColCost         = "Cost"
	ColCostPerClass = "Cost Per Class"
	ColEnrollment   = "Enrollment Type"
	ColWebsite      = "Website"
	ColPhone        = "Contact Phone"
	ColPickup       = "School Pickup From"
	ColStartDate    = "Start date"
	ColEndDate      = "End date"
)

// RequiredColumns must be present in every catalog file.
var RequiredColumns = []string{ColProvider, ColProgram, ColDay, ColStart, ColEnd, ColCategory}

const (
	defaultMinAge = 0
	defaultMaxAge = 99
)

var dateLayouts = []string{"1/2/2006", "1/2/06", "2006-01-02"}

// Catalog is an immutable, ordered list of programs.
type Catalog struct {
	programs []model.Program
	byID     map[string]int
}

// New wraps programs in a Catalog. The slice must not be modified afterwards.
func New(programs []model.Program) *Catalog {
	c := &Catalog{programs: programs, byID: make(map[string]int, len(programs))}
	for i, p := range programs {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Programs returns the programs in file order. Callers must not modify it.
func (c *Catalog) Programs() []model.Program { return c.programs }

// Len returns the number of programs.
func (c *Catalog) Len() int { return len(c.programs) }

// Program looks a program up by ID.
func (c *Catalog) Program(id string) (model.Program, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Program{}, false
	}
	return c.programs[i], true
}

// LoadFile reads a catalog from a CSV file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Load reads a catalog from CSV.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ColumnsError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[h] = i
	}
	if _, ok := cols[ColGradeLevel]; !ok {
		if i, ok := cols["Grade Level"]; ok {
			cols[ColGradeLevel] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &ColumnsError{Missing: missing}
	}

	var programs []model.Program
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Row: line, Err: err}
		}
		if blankRecord(rec) {
			continue
		}
		p, err := parseRow(row{cols: cols, rec: rec, line: line})
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return New(programs), nil
}

type row struct {
	cols map[string]int
	rec  []string
	line int
}

func (r row) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) fail(col, value string, err error) error {
	return &RowError{Row: r.line, Column: col, Value: value, Err: err}
}

func parseRow(r row) (model.Program, error) {
	p := model.Program{
		Name:             r.get(ColProgram),
		ProviderName:     r.get(ColProvider),
		Categories:       model.ParseTagSet(r.get(ColCategory)),
		GradeLevels:      model.ParseTagSet(r.get(ColGradeLevel)),
		Address:          r.get(ColAddress),
		EnrollmentType:   r.get(ColEnrollment),
		Website:          r.get(ColWebsite),
		ContactPhone:     r.get(ColPhone),
		SchoolPickupFrom: r.get(ColPickup),
		MinAge:           defaultMinAge,
		MaxAge:           defaultMaxAge,
	}
	if p.Name == "" {
		return p, r.fail(ColProgram, "", errors.New("required"))
	}
	if p.ProviderName == "" {
		return p, r.fail(ColProvider, "", errors.New("required"))
	}

	var err error
	if p.Day, err = model.ParseWeekday(r.get(ColDay)); err != nil {
		return p, r.fail(ColDay, r.get(ColDay), err)
	}
	if p.Start, err = timeofday.ParseStrict(r.get(ColStart)); err != nil {
		return p, r.fail(ColStart, r.get(ColStart), err)
	}
	if p.End, err = timeofday.ParseStrict(r.get(ColEnd)); err != nil {
		return p, r.fail(ColEnd, r.get(ColEnd), err)
	}
	if p.Start >= p.End {
		return p, r.fail(ColEnd, r.get(ColEnd), fmt.Errorf("must be after start time %s", timeofday.Format(p.Start)))
	}
	if v := r.get(ColMinAge); v != "" {
		if p.MinAge, err = strconv.ParseFloat(v, 64); err != nil {
			return p, r.fail(ColMinAge, v, err)
		}
	}
	if v := r.get(ColMaxAge); v != "" {
		if p.MaxAge, err = strconv.ParseFloat(v, 64); err != nil {
			return p, r.fail(ColMaxAge, v, err)
		}
	}
	if p.MinAge > p.MaxAge {
		return p, r.fail(ColMaxAge, r.get(ColMaxAge), fmt.Errorf("below min age %g", p.MinAge))
	}
	if v := r.get(ColProgramType); v != "" {
		if p.ProgramType, err = model.ParseProgramType(v); err != nil {
			return p, r.fail(ColProgramType, v, err)
		}
	}
	if p.Cost, err = parseCost(r.get(ColCost)); err != nil {
		return p, r.fail(ColCost, r.get(ColCost), err)
	}
	if p.CostPerClass, err = parseCost(r.get(ColCostPerClass)); err != nil {
		return p, r.fail(ColCostPerClass, r.get(ColCostPerClass), err)
	}
	if p.StartDate, err = parseDate(r.get(ColStartDate)); err != nil {
		return p, r.fail(ColStartDate, r.get(ColStartDate), err)
	}
	if p.EndDate, err = parseDate(r.get(ColEndDate)); err != nil {
		return p, r.fail(ColEndDate, r.get(ColEndDate), err)
	}
	p.ID = model.ProgramID(p.Name, p.ProviderName, p.Day, p.Start)
	return p, nil
}

// parseCost accepts "$1,250.00" style amounts. Blank means unknown.
func parseCost(s string) (*float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("not a number")
	}
	return &v, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("dates must be MM/DD/YYYY, M/D/YY or YYYY-MM-DD")
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
