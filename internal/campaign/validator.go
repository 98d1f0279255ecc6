package campaign

import (
	"strings"

	"github.com/allpackers/campaign/internal/models"
	"github.com/allpackers/campaign/internal/util"
)

// MissingFieldsError reports recipient records lacking required keys. The
// error text doubles as the failure reason recorded in the run summary.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing fields: " + strings.Join(e.Fields, ", ")
}

// InvalidCostError reports trip_cost values that fail to parse. Value holds
// the raw cost as it appeared in the recipients file.
type InvalidCostError struct {
	Value string
}

func (e *InvalidCostError) Error() string {
	return "Invalid trip_cost: " + e.Value
}

// ValidateRecipient checks a raw record for the required fields and coerces
// trip_cost into a decimal amount. Fields are checked for presence only;
// empty strings pass, matching the roster contract that authors fill every
// key. The canonical field order drives the order missing fields are
// reported.
func ValidateRecipient(raw models.RawRecipient) (models.Recipient, error) {
	var missing []string
	for _, field := range models.RecipientFields {
		if !raw.Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return models.Recipient{}, &MissingFieldsError{Fields: missing}
	}

	cost, err := util.ParseCost(raw[models.FieldTripCost])
	if err != nil {
		return models.Recipient{}, &InvalidCostError{Value: util.Stringify(raw[models.FieldTripCost])}
	}

	return models.Recipient{
		Email:           util.Stringify(raw[models.FieldEmail]),
		Name:            util.Stringify(raw[models.FieldName]),
		TripName:        util.Stringify(raw[models.FieldTripName]),
		TripDate:        util.Stringify(raw[models.FieldTripDate]),
		TripCost:        cost,
		TripDescription: util.Stringify(raw[models.FieldTripDescription]),
	}, nil
}

// RecipientLabels derives the name and email used when reporting a failure
// for a record that never passed validation. Absent keys fall back to
// "Unknown"; present but empty values stay as they are.
func RecipientLabels(raw models.RawRecipient) (name, email string) {
	name, email = "Unknown", "Unknown"
	if value, ok := raw[models.FieldName]; ok {
		name = util.Stringify(value)
	}
	if value, ok := raw[models.FieldEmail]; ok {
		email = util.Stringify(value)
	}
	return name, email
}
