package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids      []int64  `json:"ids,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// UpdateOrderModel carries the mutable fields of an order. Nil fields are
// left untouched. Monetary fields are never recomputed on update.
type UpdateOrderModel struct {
	Status *Status `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}
