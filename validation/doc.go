// Package validation checks widget values and outbound mail parameters.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Params struct {
//	    From string `json:"from" validate:"required,email"`
//	    To   string `json:"to" validate:"email_list"`
//	}
//	err := validation.Validate(params)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Bounds("slider", min, max).
//	    Range("slider", value, min, max).
//	    Err()
package validation
