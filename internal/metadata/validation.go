package metadata

// ValidationParams holds the fields of a Validation element. Nil means unset.
type ValidationParams struct {
	ValidateOnMatch            *bool
	BackgroundValidation       *bool
	BackgroundValidationMillis *int64
	UseFastFail                *bool
	Expressions                map[string]string
}

// Validation configures connection validation for a connection definition.
type Validation struct {
	expressionHolder
	validateOnMatch            *bool
	backgroundValidation       *bool
	backgroundValidationMillis *int64
	useFastFail                *bool
}

// NewValidation validates p and returns a Validation.
func NewValidation(p ValidationParams) (*Validation, error) {
	if p.BackgroundValidationMillis != nil && *p.BackgroundValidationMillis < 0 {
		return nil, validationErr(ErrNegativeValue, elemValidation, elemBackgroundValidationMillis,
			"background-validation-millis must be non-negative, got %d", *p.BackgroundValidationMillis)
	}
	return &Validation{
		expressionHolder:           expressionHolder{copyMap(p.Expressions)},
		validateOnMatch:            copyPtr(p.ValidateOnMatch),
		backgroundValidation:       copyPtr(p.BackgroundValidation),
		backgroundValidationMillis: copyPtr(p.BackgroundValidationMillis),
		useFastFail:                copyPtr(p.UseFastFail),
	}, nil
}

func (v *Validation) ValidateOnMatch() *bool             { return copyPtr(v.validateOnMatch) }
func (v *Validation) BackgroundValidation() *bool        { return copyPtr(v.backgroundValidation) }
func (v *Validation) BackgroundValidationMillis() *int64 { return copyPtr(v.backgroundValidationMillis) }
func (v *Validation) UseFastFail() *bool                 { return copyPtr(v.useFastFail) }

// Params copies the state of v.
func (v *Validation) Params() ValidationParams {
	return ValidationParams{
		ValidateOnMatch:            copyPtr(v.validateOnMatch),
		BackgroundValidation:       copyPtr(v.backgroundValidation),
		BackgroundValidationMillis: copyPtr(v.backgroundValidationMillis),
		UseFastFail:                copyPtr(v.useFastFail),
		Expressions:                copyMap(v.expressions),
	}
}
