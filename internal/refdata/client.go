// Package refdata loads the registration form's reference data
// (teachers, departments, courses) from remote CSV files, and downloads
// the constancia database workbook. Remote static files are the only
// storage this application has.
package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// File names under the reference data base URL.
const (
	teachersFile    = "docentes.csv"
	departmentsFile = "departamentos.csv"
	coursesFile     = "cursos.csv"
)

// Client fetches reference data over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL. A nil httpClient
// falls back to a client with a sane timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		http:    httpClient,
	}
}

// Teachers downloads and parses docentes.csv.
func (c *Client) Teachers(ctx context.Context) ([]Teacher, error) {
	rows, err := c.fetchCSV(ctx, teachersFile)
	if err != nil {
		return nil, err
	}
	teachers := make([]Teacher, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row.get("id"))
		if err != nil {
			return nil, fmt.Errorf("parse reference data %s row %d: bad id %q", teachersFile, i+2, row.get("id"))
		}
		deptID, err := strconv.Atoi(row.get("departmentId"))
		if err != nil {
			return nil, fmt.Errorf("parse reference data %s row %d: bad departmentId %q", teachersFile, i+2, row.get("departmentId"))
		}
		teachers = append(teachers, Teacher{
			ID:           id,
			Name:         row.get("name"),
			CURP:         row.get("curp"),
			Email:        row.get("email"),
			DepartmentID: deptID,
		})
	}
	return teachers, nil
}

// Departments downloads and parses departamentos.csv.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	rows, err := c.fetchCSV(ctx, departmentsFile)
	if err != nil {
		return nil, err
	}
	departments := make([]Department, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row.get("id"))
		if err != nil {
			return nil, fmt.Errorf("parse reference data %s row %d: bad id %q", departmentsFile, i+2, row.get("id"))
		}
		departments = append(departments, Department{ID: id, Name: row.get("name")})
	}
	return departments, nil
}

// Courses downloads and parses cursos.csv.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	rows, err := c.fetchCSV(ctx, coursesFile)
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row.get("id"))
		if err != nil {
			return nil, fmt.Errorf("parse reference data %s row %d: bad id %q", coursesFile, i+2, row.get("id"))
		}
		courses = append(courses, Course{
			ID:   id,
			Name: row.get("name"),
			Schedule: Schedule{
				Day:       row.get("day"),
				StartTime: row.get("startTime"),
				EndTime:   row.get("endTime"),
				Date:      row.get("date"),
			},
		})
	}
	return courses, nil
}

// csvRow is one data row with case-insensitive header access.
type csvRow struct {
	headers []string
	values  []string
}

func (r csvRow) get(name string) string {
	for i, h := range r.headers {
		if strings.EqualFold(strings.TrimSpace(h), name) && i < len(r.values) {
			return strings.TrimSpace(r.values[i])
		}
	}
	return ""
}

// fetchCSV downloads one file and splits it into header-keyed rows.
// Short rows are tolerated (missing cells read as empty); files with
// fewer than two lines yield no rows.
func (c *Client) fetchCSV(ctx context.Context, name string) ([]csvRow, error) {
	body, err := c.download(ctx, c.baseURL+name)
	if err != nil {
		return nil, fmt.Errorf("fetch reference data %s: %w", name, err)
	}
	defer body.Close()

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse reference data %s: %w", name, err)
	}
	if len(all) < 2 {
		return nil, nil
	}

	headers := all[0]
	rows := make([]csvRow, 0, len(all)-1)
	for _, values := range all[1:] {
		if isBlankRow(values) {
			continue
		}
		rows = append(rows, csvRow{headers: headers, values: values})
	}
	return rows, nil
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// DownloadWorkbook fetches the constancia database workbook. A
// cache-busting query parameter forces the origin to serve the current
// file instead of a stale CDN copy.
func (c *Client) DownloadWorkbook(ctx context.Context, url string) ([]byte, error) {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	body, err := c.download(ctx, fmt.Sprintf("%s%sv=%d", url, sep, time.Now().UnixMilli()))
	if err != nil {
		return nil, fmt.Errorf("fetch database workbook: %w", err)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
