// Package table は列名付きの表形式データを提供する。
// パイプラインは学習時と同じ列名・列順の表を入力として受け取る。
package table

import (
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Kind は列の型
type Kind int

const (
	// Numeric は数値列
	Numeric Kind = iota
	// Categorical は文字列カテゴリ列
	Categorical
)

func (k Kind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column は1つの名前付き列
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// Len は列の行数を返す
func (c *Column) Len() int {
	if c.Kind == Categorical {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// Table は列の順序を保持する表
type Table struct {
	rows    int
	columns []*Column
	index   map[string]int
}

// New は行数 rows の空の表を作成する
func New(rows int) *Table {
	return &Table{rows: rows, index: make(map[string]int)}
}

// AddNumeric は数値列を末尾に追加する
func (t *Table) AddNumeric(name string, values ...float64) error {
	return t.add(&Column{Name: name, Kind: Numeric, Floats: values})
}

// AddCategorical はカテゴリ列を末尾に追加する
func (t *Table) AddCategorical(name string, values ...string) error {
	return t.add(&Column{Name: name, Kind: Categorical, Strings: values})
}

func (t *Table) add(c *Column) error {
	if _, dup := t.index[c.Name]; dup {
		return errors.NewValidationError("column", "duplicate column name", c.Name)
	}
	if c.Len() != t.rows {
		return errors.NewDimensionError("Table.Add("+c.Name+")", t.rows, c.Len(), 0)
	}
	t.index[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}

// Rows は行数を返す
func (t *Table) Rows() int { return t.rows }

// Names は列名を追加順に返す
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column は名前で列を取得する
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Numeric は指定した数値列を n_rows × len(names) の行列として返す
func (t *Table) Numeric(names []string) (*mat.Dense, error) {
	if t.rows == 0 || len(names) == 0 {
		return nil, errors.NewModelError("Table.Numeric", "empty selection", errors.ErrEmptyData)
	}
	out := mat.NewDense(t.rows, len(names), nil)
	for j, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, errors.NewValidationError("column", "missing from input table", name)
		}
		if c.Kind != Numeric {
			return nil, errors.NewValidationError(name, "expected a numeric column", c.Kind.String())
		}
		for i, v := range c.Floats {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// Row は i 行目を列名→値の map として返す（表示用）
func (t *Table) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(t.columns))
	for _, c := range t.columns {
		if c.Kind == Categorical {
			row[c.Name] = c.Strings[i]
		} else {
			row[c.Name] = c.Floats[i]
		}
	}
	return row
}
