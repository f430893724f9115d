package results

import (
	"github.com/tidwall/gjson"
)

// Interpret decodes an agent response body. It never fails: anything it
// cannot read is treated as absent.
func Interpret(raw []byte) TurnResult {
	if !gjson.ValidBytes(raw) {
		return TurnResult{}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return TurnResult{}
	}
	return TurnResult{
		UserText:  stringField(doc, "user_text"),
		AgentText: stringField(doc, "bot_text"),
		Panel:     interpretPanel(doc),
	}
}

func interpretPanel(doc gjson.Result) *PanelState {
	tag := doc.Get("type")
	if tag.Type != gjson.String {
		return nil
	}
	items := doc.Get("items")
	if !items.IsArray() {
		return nil
	}

	var entries []Entry
	switch PanelKind(tag.Str) {
	case KindOrders:
		items.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				entries = append(entries, projectOrder(item))
			}
			return true
		})
	case KindProducts:
		items.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				entries = append(entries, projectProduct(item))
			}
			return true
		})
	default:
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return &PanelState{Kind: PanelKind(tag.Str), Entries: entries}
}

func projectOrder(item gjson.Result) OrderEntry {
	order := OrderEntry{
		ID:     scalarField(item, "order_id"),
		Date:   stringField(item, "order_date"),
		Status: StatusLabel(stringField(item, "order_status")),
	}
	products := item.Get("products")
	if products.IsArray() {
		products.ForEach(func(_, line gjson.Result) bool {
			if line.IsObject() {
				order.LineItems = append(order.LineItems, LineItem{
					ProductID:   scalarField(line, "product_id"),
					ProductName: stringField(line, "product_name"),
				})
			}
			return true
		})
	}
	return order
}

func projectProduct(item gjson.Result) ProductEntry {
	return ProductEntry{
		ID:          scalarField(item, "product_id"),
		Name:        stringField(item, "product_name"),
		Description: stringField(item, "description"),
		Price:       scalarField(item, "price"),
	}
}

func stringField(obj gjson.Result, key string) string {
	value := obj.Get(key)
	if value.Type != gjson.String {
		return ""
	}
	return value.Str
}

// scalarField accepts numbers as well as strings; ids and prices arrive as
// either depending on how the agent serialized its tables.
func scalarField(obj gjson.Result, key string) string {
	value := obj.Get(key)
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Number:
		return value.Raw
	default:
		return ""
	}
}
