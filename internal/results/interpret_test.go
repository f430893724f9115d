package results

import (
	"testing"
)

func TestInterpretTextFields(t *testing.T) {
	res := Interpret([]byte(`{"user_text":"hi","bot_text":"hello"}`))
	if res.UserText != "hi" {
		t.Fatalf("expected user text hi, got %q", res.UserText)
	}
	if res.AgentText != "hello" {
		t.Fatalf("expected agent text hello, got %q", res.AgentText)
	}
	if res.Panel != nil {
		t.Fatalf("expected no panel update, got %+v", res.Panel)
	}
}

func TestInterpretEmptyObject(t *testing.T) {
	res := Interpret([]byte(`{}`))
	if res.UserText != "" || res.AgentText != "" || res.Panel != nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestInterpretIsTotal(t *testing.T) {
	inputs := []string{
		``,
		`not-json`,
		`[1,2,3]`,
		`"just a string"`,
		`null`,
		`{"user_text":42,"bot_text":{"nested":true}}`,
		`{"type":"orders"}`,
		`{"type":"orders","items":{}}`,
		`{"type":"orders","items":"nope"}`,
		`{"type":["orders"],"items":[{"order_id":"A1"}]}`,
	}
	for _, input := range inputs {
		res := Interpret([]byte(input))
		if res.UserText != "" || res.AgentText != "" || res.Panel != nil {
			t.Fatalf("input %q: expected degraded empty result, got %+v", input, res)
		}
	}
}

func TestInterpretUnknownTagIsNoPanel(t *testing.T) {
	res := Interpret([]byte(`{"bot_text":"ok","type":"invoices","items":[{"id":"x"}]}`))
	if res.Panel != nil {
		t.Fatalf("expected unknown tag to yield no panel, got %+v", res.Panel)
	}
	if res.AgentText != "ok" {
		t.Fatalf("expected agent text to survive unknown tag, got %q", res.AgentText)
	}
}

func TestInterpretTagWithoutEntriesIsNoPanel(t *testing.T) {
	for _, input := range []string{
		`{"type":"products","items":[]}`,
		`{"type":"products","items":[1,"two",null]}`,
		`{"type":"orders","items":null}`,
	} {
		if res := Interpret([]byte(input)); res.Panel != nil {
			t.Fatalf("input %s: expected no panel, got %+v", input, res.Panel)
		}
	}
}

func TestInterpretOrders(t *testing.T) {
	raw := `{"type":"orders","items":[{"order_id":"A1","order_date":"2024-01-01T00:00:00Z","products":[{"product_name":"X"},{"product_name":"Y"}],"order_status":"Shipped"}]}`
	res := Interpret([]byte(raw))
	if res.Panel == nil {
		t.Fatalf("expected orders panel")
	}
	if res.Panel.Kind != KindOrders {
		t.Fatalf("expected kind orders, got %q", res.Panel.Kind)
	}
	orders := res.Panel.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	order := orders[0]
	if order.ID != "A1" {
		t.Fatalf("unexpected order id %q", order.ID)
	}
	if order.Summary() != "X" {
		t.Fatalf("expected summary to show first line item only, got %q", order.Summary())
	}
	if len(order.LineItems) != 2 {
		t.Fatalf("expected both line items kept, got %d", len(order.LineItems))
	}
	if order.DisplayDate() != "2024-01-01" {
		t.Fatalf("unexpected display date %q", order.DisplayDate())
	}
	if StageOf(order.Status) != 1 {
		t.Fatalf("expected stage 1, got %d", StageOf(order.Status))
	}
}

func TestInterpretOrderDefaults(t *testing.T) {
	raw := `{"type":"orders","items":[{"order_id":1042,"products":"bad","order_status":"Return Requested"}]}`
	res := Interpret([]byte(raw))
	if res.Panel == nil {
		t.Fatalf("expected orders panel")
	}
	order := res.Panel.Orders()[0]
	if order.ID != "1042" {
		t.Fatalf("expected numeric id rendered as text, got %q", order.ID)
	}
	if order.Summary() != "Unknown Product" {
		t.Fatalf("unexpected summary %q", order.Summary())
	}
	if order.DisplayDate() != "N/A" {
		t.Fatalf("unexpected display date %q", order.DisplayDate())
	}
	if order.Status.Known() {
		t.Fatalf("did not expect %q to be a known status", order.Status)
	}
	if StageOf(order.Status) != 0 {
		t.Fatalf("expected unknown status at stage 0")
	}
}

func TestInterpretProducts(t *testing.T) {
	raw := `{"bot_text":"Found some.","type":"products","items":[
		{"product_id":"P1","product_name":"Trail Shoe","description":"Grippy","price":89.5},
		{"product_id":"P2","product_name":"Rain Shell","description":"Light","price":"120.00"}
	]}`
	res := Interpret([]byte(raw))
	if res.Panel == nil || res.Panel.Kind != KindProducts {
		t.Fatalf("expected products panel, got %+v", res.Panel)
	}
	products := res.Panel.Products()
	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	if products[0].Price != "89.5" {
		t.Fatalf("expected raw numeric price, got %q", products[0].Price)
	}
	if products[1].Price != "120.00" {
		t.Fatalf("expected string price kept verbatim, got %q", products[1].Price)
	}
	if products[1].Name != "Rain Shell" || products[1].Description != "Light" || products[1].ID != "P2" {
		t.Fatalf("unexpected product projection %+v", products[1])
	}
	if res.Panel.Orders() != nil {
		t.Fatalf("expected no order entries in a products panel")
	}
}

func TestPanelCloneDetachesLineItems(t *testing.T) {
	panel := PanelState{Kind: KindOrders, Entries: []Entry{
		OrderEntry{ID: "A1", LineItems: []LineItem{{ProductName: "X"}}},
	}}
	clone := panel.Clone()
	clone.Entries[0].(OrderEntry).LineItems[0].ProductName = "changed"
	if panel.Orders()[0].Summary() != "X" {
		t.Fatalf("expected original panel untouched by clone mutation")
	}
}
