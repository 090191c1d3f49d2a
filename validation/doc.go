// Package validation provides input validation for ssekit configuration.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Endpoint string `validate:"required,url"`
//	}
//	err := validation.ValidateStruct(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(interval > 0, "stall_interval", "must be positive")
//	err := v.Error()
package validation
