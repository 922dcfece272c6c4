package receipt

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithholdingClass classifies a charge for withholding-tax purposes. The
// class is assigned once when the row is created from a template and stored
// as data; it is never re-derived from the (editable) label text.
type WithholdingClass string

const (
	WithholdingClassNone          WithholdingClass = ""
	WithholdingClassBrokerage     WithholdingClass = "brokerage"
	WithholdingClassHauling       WithholdingClass = "hauling"
	WithholdingClassDocumentation WithholdingClass = "documentation"
)

// DefaultPercent returns the withholding percentage applied to rows of this
// class when no explicit percentage has been set.
func (c WithholdingClass) DefaultPercent() decimal.Decimal {
	switch c {
	case WithholdingClassBrokerage:
		return decimal.NewFromInt(20)
	case WithholdingClassHauling, WithholdingClassDocumentation:
		return decimal.NewFromInt(2)
	default:
		return decimal.Zero
	}
}

// Valid reports whether the class is one of the known values.
func (c WithholdingClass) Valid() bool {
	switch c {
	case WithholdingClassNone, WithholdingClassBrokerage, WithholdingClassHauling, WithholdingClassDocumentation:
		return true
	}
	return false
}

// ChildRow is a nested line item under a parent row. It deliberately has no
// Children field: a child contributes its value to the parent's withholding
// base and to the grand total but is never withholding-taxed on its own, and
// nesting stops at one level.
type ChildRow struct {
	ID               string          `json:"id"`
	Label            string          `json:"label"`
	Value            decimal.Decimal `json:"value"`
	WithholdingChild bool            `json:"withholding_child,omitempty"`
}

// Row is a single line item in a receipt group.
type Row struct {
	ID                 string           `json:"id"`
	Label              string           `json:"label"`
	Value              decimal.Decimal  `json:"value"`
	IsChild            bool             `json:"is_child,omitempty"`
	WithholdingParent  bool             `json:"withholding_parent,omitempty"`
	WithholdingPercent *decimal.Decimal `json:"withholding_percent,omitempty"`
	WithholdingClass   WithholdingClass `json:"withholding_class,omitempty"`
	Children           []ChildRow       `json:"children,omitempty"`
}

// Group is a labeled bucket of line items. A group with zero rows is valid
// and contributes nothing to totals.
type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// coerceValue turns a raw JSON token into a decimal amount, degrading to
// zero for anything malformed (null, empty string, garbage text).
func coerceValue(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseMoney(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return MoneyFromFloat(f)
	}
	return decimal.Zero
}

// UnmarshalJSON accepts amounts as numbers or strings and never fails on a
// malformed value; bad input becomes zero.
func (r *Row) UnmarshalJSON(data []byte) error {
	type alias Row
	aux := struct {
		*alias
		Value json.RawMessage `json:"value"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Value = coerceValue(aux.Value)
	return nil
}

// UnmarshalJSON mirrors Row.UnmarshalJSON for child rows.
func (c *ChildRow) UnmarshalJSON(data []byte) error {
	type alias ChildRow
	aux := struct {
		*alias
		Value json.RawMessage `json:"value"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = coerceValue(aux.Value)
	return nil
}

// Total returns the row's own value plus the values of its children.
func (r Row) Total() decimal.Decimal {
	total := r.Value
	for _, child := range r.Children {
		total = total.Add(child.Value)
	}
	return total
}

// Percent returns the withholding percentage that applies to this row: the
// explicit override when set, otherwise the class default.
func (r Row) Percent() decimal.Decimal {
	if r.WithholdingPercent != nil {
		return *r.WithholdingPercent
	}
	return r.WithholdingClass.DefaultPercent()
}

// NewRow creates a plain (non-withholding) line item.
func NewRow(label string, value decimal.Decimal) Row {
	return Row{
		ID:    uuid.NewString(),
		Label: label,
		Value: value,
	}
}

// NewWithholdingRow creates a withholding-bearing line item of the given
// class. The class fixes the default percentage at creation time.
func NewWithholdingRow(label string, value decimal.Decimal, class WithholdingClass) Row {
	return Row{
		ID:                uuid.NewString(),
		Label:             label,
		Value:             value,
		WithholdingParent: true,
		WithholdingClass:  class,
	}
}

// NewChildRow creates a nested line item for attachment under a parent row.
func NewChildRow(label string, value decimal.Decimal) ChildRow {
	return ChildRow{
		ID:               uuid.NewString(),
		Label:            label,
		Value:            value,
		WithholdingChild: true,
	}
}

// NewGroup creates an empty group.
func NewGroup(title string) Group {
	return Group{
		ID:    uuid.NewString(),
		Title: title,
		Rows:  []Row{},
	}
}

// CloneGroups deep-copies a group tree. Mutation helpers operate on clones so
// every edit yields a fresh snapshot and callers never observe a partially
// mutated tree.
func CloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		rows := make([]Row, len(g.Rows))
		for j, r := range g.Rows {
			row := r
			if r.WithholdingPercent != nil {
				p := *r.WithholdingPercent
				row.WithholdingPercent = &p
			}
			if r.Children != nil {
				row.Children = append([]ChildRow(nil), r.Children...)
			}
			rows[j] = row
		}
		out[i] = Group{ID: g.ID, Title: g.Title, Rows: rows}
	}
	return out
}

// AddGroup appends a new empty group and returns the new snapshot.
func AddGroup(groups []Group, title string) []Group {
	out := CloneGroups(groups)
	return append(out, NewGroup(title))
}

// RenameGroup retitles the group with the given id.
func RenameGroup(groups []Group, groupID, title string) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID == groupID {
			out[i].Title = title
			break
		}
	}
	return out
}

// DeleteGroup removes the group with the given id along with all its rows
// and their children.
func DeleteGroup(groups []Group, groupID string) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID == groupID {
			return append(out[:i], out[i+1:]...)
		}
	}
	return out
}

// AddRow appends a row to the group with the given id.
func AddRow(groups []Group, groupID string, row Row) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID == groupID {
			out[i].Rows = append(out[i].Rows, row)
			break
		}
	}
	return out
}

// UpdateRow replaces the row with a matching id inside the given group.
func UpdateRow(groups []Group, groupID string, row Row) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Rows {
			if out[i].Rows[j].ID == row.ID {
				out[i].Rows[j] = row
				break
			}
		}
		break
	}
	return out
}

// DeleteRow removes a row (and its children, which live inside it) from the
// given group.
func DeleteRow(groups []Group, groupID, rowID string) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Rows {
			if out[i].Rows[j].ID == rowID {
				out[i].Rows = append(out[i].Rows[:j], out[i].Rows[j+1:]...)
				break
			}
		}
		break
	}
	return out
}

// AddChild attaches a child row under the given parent row.
func AddChild(groups []Group, groupID, rowID string, child ChildRow) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Rows {
			if out[i].Rows[j].ID == rowID {
				out[i].Rows[j].Children = append(out[i].Rows[j].Children, child)
				break
			}
		}
		break
	}
	return out
}

// RemoveChild detaches a child row from its parent.
func RemoveChild(groups []Group, groupID, rowID, childID string) []Group {
	out := CloneGroups(groups)
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Rows {
			if out[i].Rows[j].ID != rowID {
				continue
			}
			children := out[i].Rows[j].Children
			for k := range children {
				if children[k].ID == childID {
					out[i].Rows[j].Children = append(children[:k], children[k+1:]...)
					break
				}
			}
			break
		}
		break
	}
	return out
}
