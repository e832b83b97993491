package entity

type Notification struct {
	BaseSimple
	UserType string `db:"user_type"` // "passenger", "admin", "conductor"
	UserID   string `db:"user_id"`
	Title    string `db:"title"`
	Message  string `db:"message"`
	IsRead   bool   `db:"is_read"`
}
