package results

// PanelKind discriminates which entry variant a panel holds.
type PanelKind string

const (
	KindNone     PanelKind = ""
	KindOrders   PanelKind = "orders"
	KindProducts PanelKind = "products"
)

// Entry is one row of the results panel. It is implemented only by
// ProductEntry and OrderEntry.
type Entry interface {
	kind() PanelKind
}

type ProductEntry struct {
	ID          string
	Name        string
	Description string
	Price       string
}

func (ProductEntry) kind() PanelKind { return KindProducts }

type LineItem struct {
	ProductID   string
	ProductName string
}

type OrderEntry struct {
	ID        string
	Date      string
	LineItems []LineItem
	Status    StatusLabel
}

func (OrderEntry) kind() PanelKind { return KindOrders }

// Summary names the shipment by its first line item only.
func (o OrderEntry) Summary() string {
	if len(o.LineItems) == 0 || o.LineItems[0].ProductName == "" {
		return "Unknown Product"
	}
	return o.LineItems[0].ProductName
}

// DisplayDate trims an ISO timestamp down to its date part.
func (o OrderEntry) DisplayDate() string {
	if o.Date == "" {
		return "N/A"
	}
	for i := 0; i < len(o.Date); i++ {
		if o.Date[i] == 'T' {
			return o.Date[:i]
		}
	}
	return o.Date
}

// PanelState is replaced wholesale; Kind decides the variant found in Entries.
type PanelState struct {
	Kind    PanelKind
	Entries []Entry
}

func (p PanelState) Empty() bool {
	return p.Kind == KindNone || len(p.Entries) == 0
}

// Clone returns a copy that shares no slices with p.
func (p PanelState) Clone() PanelState {
	out := PanelState{Kind: p.Kind}
	if p.Entries == nil {
		return out
	}
	out.Entries = make([]Entry, len(p.Entries))
	for i, entry := range p.Entries {
		if order, ok := entry.(OrderEntry); ok {
			order.LineItems = append([]LineItem(nil), order.LineItems...)
			entry = order
		}
		out.Entries[i] = entry
	}
	return out
}

// Orders returns the order entries of an orders panel, nil otherwise.
func (p PanelState) Orders() []OrderEntry {
	if p.Kind != KindOrders {
		return nil
	}
	out := make([]OrderEntry, 0, len(p.Entries))
	for _, entry := range p.Entries {
		if order, ok := entry.(OrderEntry); ok {
			out = append(out, order)
		}
	}
	return out
}

// Products returns the product entries of a products panel, nil otherwise.
func (p PanelState) Products() []ProductEntry {
	if p.Kind != KindProducts {
		return nil
	}
	out := make([]ProductEntry, 0, len(p.Entries))
	for _, entry := range p.Entries {
		if product, ok := entry.(ProductEntry); ok {
			out = append(out, product)
		}
	}
	return out
}

// TurnResult is the decoded outcome of one agent response. Empty text
// fields mean the agent sent nothing usable; a nil Panel means no update.
type TurnResult struct {
	UserText  string
	AgentText string
	Panel     *PanelState
}
