package models

type Coin struct {
	ID     int64  `db:"id" json:"id"`
	Symbol string `db:"symbol" json:"symbol"`
	Name   string `db:"name" json:"name"`
}
