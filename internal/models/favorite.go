package models

import "time"

type Favorite struct {
	ID      int64     `db:"id" json:"id"`
	UserID  int64     `db:"user_id" json:"user_id"`
	CoinID  int64     `db:"coin_id" json:"coin_id"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}

// FavoriteView — избранное вместе с данными монеты, в таком виде отдаётся клиенту.
type FavoriteView struct {
	ID      int64     `db:"id" json:"id"`
	Symbol  string    `db:"symbol" json:"symbol"`
	Name    string    `db:"name" json:"name"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}
