package receipt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowUnmarshalCoercesValues(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"number value", `{"id":"r1","label":"Trucking","value":1500}`, "1500"},
		{"string value", `{"id":"r1","label":"Trucking","value":"1,500.00"}`, "1500"},
		{"currency string", `{"id":"r1","label":"Trucking","value":"PHP 350"}`, "350"},
		{"garbage string", `{"id":"r1","label":"Trucking","value":"n/a"}`, "0"},
		{"null value", `{"id":"r1","label":"Trucking","value":null}`, "0"},
		{"missing value", `{"id":"r1","label":"Trucking"}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row Row
			require.NoError(t, json.Unmarshal([]byte(tt.json), &row))
			assert.True(t, row.Value.Equal(d(tt.want)), "value = %s, want %s", row.Value, tt.want)
		})
	}
}

func TestRowUnmarshalKeepsFlags(t *testing.T) {
	raw := `{
		"id": "r1",
		"label": "Brokerage fee",
		"value": "500",
		"withholding_parent": true,
		"withholding_class": "brokerage",
		"children": [{"id":"c1","label":"Storage","value":"50","withholding_child":true}]
	}`

	var row Row
	require.NoError(t, json.Unmarshal([]byte(raw), &row))

	assert.True(t, row.WithholdingParent)
	assert.Equal(t, WithholdingClassBrokerage, row.WithholdingClass)
	require.Len(t, row.Children, 1)
	assert.True(t, row.Children[0].Value.Equal(d("50")))
	assert.True(t, row.Children[0].WithholdingChild)
}

func TestCloneGroupsIsIndependent(t *testing.T) {
	pct := d("5")
	row := NewWithholdingRow("Brokerage fee", d("500"), WithholdingClassBrokerage)
	row.WithholdingPercent = &pct
	row.Children = []ChildRow{NewChildRow("Storage", d("50"))}

	g := NewGroup("Charges")
	g.Rows = append(g.Rows, row)
	original := []Group{g}

	cloned := CloneGroups(original)
	cloned[0].Rows[0].Value = d("999")
	*cloned[0].Rows[0].WithholdingPercent = d("1")
	cloned[0].Rows[0].Children[0].Value = d("999")

	assert.True(t, original[0].Rows[0].Value.Equal(d("500")))
	assert.True(t, original[0].Rows[0].WithholdingPercent.Equal(d("5")))
	assert.True(t, original[0].Rows[0].Children[0].Value.Equal(d("50")))
}

func TestAddAndRenameGroup(t *testing.T) {
	groups := AddGroup(nil, "Freight Charges")
	require.Len(t, groups, 1)
	assert.Equal(t, "Freight Charges", groups[0].Title)
	assert.NotEmpty(t, groups[0].ID)

	renamed := RenameGroup(groups, groups[0].ID, "Fees")
	assert.Equal(t, "Fees", renamed[0].Title)
	// Original snapshot untouched
	assert.Equal(t, "Freight Charges", groups[0].Title)
}

// Deleting a group drops its rows and children from totals in the same step.
func TestDeleteGroupRemovesItsRowsFromTotals(t *testing.T) {
	keep := NewGroup("Keep")
	keep.Rows = append(keep.Rows, NewRow("Trucking", d("1000")))

	parent := NewWithholdingRow("Hauling", d("200"), WithholdingClassHauling)
	parent.Children = []ChildRow{NewChildRow("Fuel surcharge", d("100"))}
	drop := NewGroup("Drop")
	drop.Rows = append(drop.Rows, parent)

	groups := []Group{keep, drop}
	assert.True(t, ComputeTotals(groups).GrandTotal.Equal(d("1300")))

	after := DeleteGroup(groups, drop.ID)
	require.Len(t, after, 1)
	assert.True(t, ComputeTotals(after).GrandTotal.Equal(d("1000")))
}

func TestRowMutations(t *testing.T) {
	g := NewGroup("Charges")
	groups := []Group{g}

	row := NewRow("Trucking", d("1000"))
	groups = AddRow(groups, g.ID, row)
	require.Len(t, groups[0].Rows, 1)

	row.Value = d("1200")
	groups = UpdateRow(groups, g.ID, row)
	assert.True(t, groups[0].Rows[0].Value.Equal(d("1200")))

	groups = DeleteRow(groups, g.ID, row.ID)
	assert.Empty(t, groups[0].Rows)
}

func TestChildMutations(t *testing.T) {
	g := NewGroup("Charges")
	parent := NewWithholdingRow("Hauling", d("200"), WithholdingClassHauling)
	g.Rows = append(g.Rows, parent)
	groups := []Group{g}

	child := NewChildRow("Fuel surcharge", d("100"))
	groups = AddChild(groups, g.ID, parent.ID, child)
	require.Len(t, groups[0].Rows[0].Children, 1)
	assert.True(t, ComputeTotals(groups).GrandTotal.Equal(d("300")))

	groups = RemoveChild(groups, g.ID, parent.ID, child.ID)
	assert.Empty(t, groups[0].Rows[0].Children)
	assert.True(t, ComputeTotals(groups).GrandTotal.Equal(d("200")))
}

func TestMutationsIgnoreUnknownIDs(t *testing.T) {
	g := NewGroup("Charges")
	g.Rows = append(g.Rows, NewRow("Trucking", d("1000")))
	groups := []Group{g}

	assert.Len(t, DeleteGroup(groups, "missing"), 1)
	assert.Len(t, DeleteRow(groups, g.ID, "missing")[0].Rows, 1)
	assert.Len(t, AddRow(groups, "missing", NewRow("x", d("1")))[0].Rows, 1)
}
