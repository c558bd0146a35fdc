// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/NVIDIA/backbar/pkg/errors"
)

const utf8BOM = "\ufeff"

// table is a header-indexed CSV reader.
type table struct {
	path    string
	file    *os.File
	reader  *csv.Reader
	columns map[string]int
	line    int
}

// openTable opens path and reads its header row. Every name in required must
// be a header column.
func openTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "input table not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to open input table", err,
			map[string]any{"path": path})
	}

	br := bufio.NewReader(f)
	if bom, _ := br.Peek(len(utf8BOM)); bytes.Equal(bom, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	t := &table{path: path, file: f, reader: r}

	header, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "input table is empty",
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read table header", err,
			map[string]any{"path": path})
	}
	t.line = 1

	t.columns = make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := t.columns[h]; !dup {
			t.columns[h] = i
		}
	}

	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			f.Close()
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("table is missing required column %q", col),
				map[string]any{"path": path, "header": header})
		}
	}

	return t, nil
}

// next returns the next data row, or io.EOF.
func (t *table) next() (row, error) {
	rec, err := t.reader.Read()
	if err == io.EOF {
		return row{}, io.EOF
	}
	t.line++
	if err != nil {
		return row{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "malformed table row", err,
			map[string]any{"path": t.path, "line": t.line})
	}
	return row{t: t, rec: rec, line: t.line}, nil
}

func (t *table) Close() error {
	return t.file.Close()
}

type row struct {
	t    *table
	rec  []string
	line int
}

// get returns the raw value of column col. Missing trailing fields read as "".
func (r row) get(col string) string {
	i, ok := r.t.columns[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return r.rec[i]
}

// name returns column col as a normalized name.
func (r row) name(col string) string {
	return normalizeName(r.get(col))
}

// flag reports whether column col holds the literal "TRUE".
func (r row) flag(col string) bool {
	return r.get(col) == boolTrue
}

// normalizeName trims and NFC-normalizes a name so that the same ingredient
// typed in two tables compares equal.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
