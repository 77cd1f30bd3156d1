package filter

// Logical field names understood by the store executors.
const (
	FieldID            = "id"
	FieldCreatedAt     = "createdAt"
	FieldCustomerID    = "customerId"
	FieldCurrentStatus = "currentStatus"
	FieldTotalPrice    = "totalPrice"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldKind          = "kind"
)
