package model

type ItemSaved struct {
	Name    string
	Restock bool
	NewQty  int
}

func (e ItemSaved) Type() string { return "ItemSaved" }

type ItemRestocked struct {
	Name   string
	Added  int
	NewQty int
}

func (e ItemRestocked) Type() string { return "ItemRestocked" }

type ItemEdited struct {
	OldName string
	NewName string
}

func (e ItemEdited) Type() string { return "ItemEdited" }

type ItemDeleted struct {
	Name    string
	Removed int
}

func (e ItemDeleted) Type() string { return "ItemDeleted" }

type OrderPlaced struct {
	Customer      string
	Item          string
	Qty           int
	StockDeducted bool
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderCompleted struct {
	Index int
}

func (e OrderCompleted) Type() string { return "OrderCompleted" }
