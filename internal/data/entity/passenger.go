package entity

type Passenger struct {
	Base
	FullName string  `db:"full_name"`
	Email    *string `db:"email"`
	Phone    string  `db:"phone"` // unique, dedup key
}
