package metadata

// RecoveryParams holds the fields of a Recovery element.
type RecoveryParams struct {
	Credential  *Credential
	Plugin      *Extension
	NoRecovery  *bool
	Expressions map[string]string
}

// Recovery configures XA transaction recovery for a connection definition.
type Recovery struct {
	expressionHolder
	credential *Credential
	plugin     *Extension
	noRecovery *bool
}

// NewRecovery returns a Recovery. All fields are optional.
func NewRecovery(p RecoveryParams) (*Recovery, error) {
	return &Recovery{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		credential:       p.Credential,
		plugin:           p.Plugin,
		noRecovery:       copyPtr(p.NoRecovery),
	}, nil
}

func (r *Recovery) Credential() *Credential { return r.credential }
func (r *Recovery) Plugin() *Extension      { return r.plugin }

// NoRecovery returns the flag and whether it was set.
func (r *Recovery) NoRecovery() (bool, bool) {
	if r.noRecovery == nil {
		return false, false
	}
	return *r.noRecovery, true
}

// Params copies the state of r.
func (r *Recovery) Params() RecoveryParams {
	return RecoveryParams{
		Credential:  r.credential,
		Plugin:      r.plugin,
		NoRecovery:  copyPtr(r.noRecovery),
		Expressions: copyMap(r.expressions),
	}
}
