// Copyright 2024 The Hierconfig Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders an unused.Analyze result as CSV, JSON, or a
// Markdown table, grounded in original_source/hier_config/reporting.py.
// CSV/JSON use stdlib encoding/csv and encoding/json; Markdown uses
// github.com/jedib0t/go-pretty/v6/table the way
// Sumatoshi-tech-codefang/internal/analyzers/common/formatter.go builds
// its collection tables.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/netconfd/hierconfig/unused"
)

// Row is the flat, serializable shape of one unused.Finding, independent
// of tree.Node so report never has to import tree itself beyond what
// unused.Finding already carries.
type Row struct {
	ObjectType string `json:"object_type"`
	Name       string `json:"name"`
	Removal    string `json:"removal"`
}

// Rows converts Analyze's findings into Row values.
func Rows(findings []unused.Finding) []Row {
	out := make([]Row, len(findings))
	for i, f := range findings {
		out[i] = Row{ObjectType: f.ObjectType, Name: f.Name, Removal: f.Removal}
	}
	return out
}

// CSV writes rows as CSV with a header line: object_type,name,removal.
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"object_type", "name", "removal"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.ObjectType, r.Name, r.Removal}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON marshals rows as an indented JSON array.
func JSON(rows []Row) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

// Markdown renders rows as a Markdown table via go-pretty, with a
// trailing "Total: N findings" footer.
func Markdown(rows []Row) string {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"Object Type", "Name", "Removal"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.ObjectType, r.Name, r.Removal})
	}
	tbl.AppendFooter(table.Row{"", "", "Total: " + strconv.Itoa(len(rows)) + " findings"})
	tbl.SetStyle(table.StyleLight)
	return tbl.RenderMarkdown()
}
