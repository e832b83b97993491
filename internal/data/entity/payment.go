package entity

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

const PaymentMethodCash = "Cash"

type Payment struct {
	Base
	BookingID     int64         `db:"booking_id"`
	Amount        int64         `db:"amount"`
	Method        string        `db:"method"`
	TransactionID *string       `db:"transaction_id"`
	Status        PaymentStatus `db:"status"`
}
