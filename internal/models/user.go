package models

import "database/sql"

// User описывает пользователя. Избранное ссылается на него только логически.
type User struct {
	ID       int64          `db:"id" json:"id"`
	Username sql.NullString `db:"username" json:"-"`
	Email    sql.NullString `db:"email" json:"-"`
}
