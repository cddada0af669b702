// Package entity gives the records the web tier reasons about a typed shape. Fields the backend
// sends but these structs don't name are ignored.
package entity

import (
	"encoding/json"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/decoder"
)

// Decode converts a backend record into T.
func Decode[T any](r apiv1.Record) (T, error) {
	return decoder.DecodeMap[T](r)
}

// Ref is a foreign key that is a plain id string, or the joined document when the read asked for
// joinForeignKeys.
type Ref struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}

	type joined Ref
	var j joined
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}

	*r = Ref(j)
	return nil
}

type Customer struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type Product struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode"`
	BuyingPrice  float64 `json:"buyingPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        float64 `json:"stock"`
	ReorderLevel float64 `json:"reorderStockLevel"`
	Category     Ref     `json:"category"`
}

type Debt struct {
	ID       string  `json:"_id"`
	Type     string  `json:"type"`
	Amount   float64 `json:"totalAmount"`
	Paid     float64 `json:"paidAmount"`
	Customer Ref     `json:"customer"`
	Supplier Ref     `json:"supplier"`
	Sale     Ref     `json:"sale"`
	Purchase Ref     `json:"purchase"`
}

type Transaction struct {
	ID            string  `json:"_id"`
	Type          string  `json:"type"`
	Impact        string  `json:"impact"`
	Amount        float64 `json:"amount"`
	Account       Ref     `json:"account"`
	SecondAccount Ref     `json:"secondAccount"`
}

type Truck struct {
	ID          string  `json:"_id"`
	PlateNumber string  `json:"plateNumber"`
	Capacity    float64 `json:"capacity"`
	Driver      Ref     `json:"driver"`
}
