package models

// ReasonCode identifies why a customization was rejected
type ReasonCode string

const (
	ReasonUnknownProduct     ReasonCode = "unknown_product"
	ReasonWordRequired       ReasonCode = "word_required"
	ReasonWordLength         ReasonCode = "word_length"
	ReasonInvalidCharacters  ReasonCode = "invalid_characters"
	ReasonInvalidLetterColor ReasonCode = "invalid_letter_color"
	ReasonCharmsNotSupported ReasonCode = "charms_not_supported"
	ReasonInvalidCharm       ReasonCode = "invalid_charm"
	ReasonInvalidSize        ReasonCode = "invalid_size"
)

// GenericFailureMessage is shown for failures the shopper cannot fix by editing a field
const GenericFailureMessage = "Something went wrong. Please try again."

// Field returns the request field a reason refers to, or "" for generic failures
func (r ReasonCode) Field() string {
	switch r {
	case ReasonWordRequired, ReasonWordLength, ReasonInvalidCharacters:
		return "word"
	case ReasonInvalidLetterColor:
		return "letterColorId"
	case ReasonCharmsNotSupported, ReasonInvalidCharm:
		return "selectedCharmIds"
	case ReasonInvalidSize:
		return "size"
	}
	return ""
}

// ValidationResult is either Valid with a normalized customization or Invalid with a reason
type ValidationResult struct {
	Valid      bool                    `json:"valid"`
	Normalized NormalizedCustomization `json:"normalized,omitempty"`
	Reason     ReasonCode              `json:"reason,omitempty"`
	Message    string                  `json:"message,omitempty"`
}

// Valid builds a passing result
func Valid(n NormalizedCustomization) ValidationResult {
	return ValidationResult{Valid: true, Normalized: n}
}

// Invalid builds a failing result
func Invalid(reason ReasonCode, message string) ValidationResult {
	return ValidationResult{Reason: reason, Message: message}
}

// UserMessage returns the message shown to the shopper.
// Unknown products get the generic message; field errors keep their specific text.
func (v ValidationResult) UserMessage() string {
	if v.Valid {
		return ""
	}
	if v.Reason == ReasonUnknownProduct || v.Message == "" {
		return GenericFailureMessage
	}
	return v.Message
}

// ValidationErrorResponse is the body returned for an Invalid result
type ValidationErrorResponse struct {
	Success bool       `json:"success"`
	Reason  ReasonCode `json:"reason"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
}
