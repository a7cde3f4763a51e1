// README: Order numbering, row building and color cycle tests.
package sheets

import (
	"testing"

	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
)

func TestNextOrderNumber(t *testing.T) {
	tests := []struct {
		name   string
		column [][]interface{}
		want   int64
	}{
		{"empty ledger", nil, 1},
		{"header only", [][]interface{}{{"رقم الطلب"}}, 1},
		{"sequential", [][]interface{}{{"رقم الطلب"}, {"1"}, {"2"}, {"3"}}, 4},
		{"gap in numbering", [][]interface{}{{"رقم الطلب"}, {"1"}, {"7"}, {"3"}}, 8},
		{"junk cells skipped", [][]interface{}{{"رقم الطلب"}, {"abc"}, {"5"}, {""}}, 6},
		{"blank rows skipped", [][]interface{}{{"رقم الطلب"}, {}, {"2"}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextOrderNumber(tt.column); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOrderColorCycles(t *testing.T) {
	if orderColor(1) != orderColor(7) {
		t.Fatal("colors must repeat every 6 orders")
	}
	if orderColor(1) == orderColor(2) {
		t.Fatal("adjacent orders must differ in color")
	}
}

func TestOrderRows(t *testing.T) {
	order := &chat.ExtractedOrder{
		Items: []chat.LineItem{
			{Category: "كهرباء", Item: "سلك", Spec1: "نحاس", Qty: "5", Unit: "لفة"},
			{Category: "سباكة", Item: "ماسورة", Qty: "2", Unit: "قطعة"},
		},
		Address: "عمان",
	}
	ident := agent.Identity{Name: "أحمد", Phone: "0512345678"}

	rows := orderRows(order, "ملخص", ident, 9, "2026-09-01_120000")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want one per item", len(rows))
	}
	first := rows[0]
	if len(first) != rowColumns {
		t.Fatalf("row has %d columns, want %d", len(first), rowColumns)
	}
	if first[0] != int64(9) || first[2] != "أحمد" || first[3] != "0512345678" {
		t.Fatalf("identity columns wrong: %v", first)
	}
	if first[5] != "سلك نحاس" {
		t.Fatalf("description = %q", first[5])
	}
	if rows[1][5] != "ماسورة" {
		t.Fatalf("spec-less description = %q", rows[1][5])
	}
	if first[9] != statusNew || first[10] != "عمان" {
		t.Fatalf("status/address columns wrong: %v", first)
	}
}

func TestItemDescriptionSkipsEmptySpecs(t *testing.T) {
	it := chat.LineItem{Item: "سلك", Spec2: "أحمر"}
	if got := itemDescription(it); got != "سلك أحمر" {
		t.Fatalf("got %q", got)
	}
}
