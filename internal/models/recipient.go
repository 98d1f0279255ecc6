package models

// Recipient field names as they appear in the recipients file.
const (
	FieldEmail           = "email"
	FieldName            = "name"
	FieldTripName        = "trip_name"
	FieldTripDate        = "trip_date"
	FieldTripCost        = "trip_cost"
	FieldTripDescription = "trip_description"
)

// RecipientFields lists every required field in the order validation reports
// them when missing.
var RecipientFields = []string{
	FieldEmail,
	FieldName,
	FieldTripName,
	FieldTripDate,
	FieldTripCost,
	FieldTripDescription,
}

// RawRecipient is a single undecoded entry from the recipients file. Values
// keep their JSON shape (numbers arrive as json.Number) until validation
// coerces them.
type RawRecipient map[string]any

// Has reports whether the field is present, regardless of its value.
func (r RawRecipient) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Recipient is a roster entry that passed validation and is ready to render.
type Recipient struct {
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	TripName        string  `json:"trip_name"`
	TripDate        string  `json:"trip_date"`
	TripCost        float64 `json:"trip_cost"`
	TripDescription string  `json:"trip_description"`
}
