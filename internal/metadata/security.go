package metadata

// SecurityParams holds the fields of a Security element. Exactly one of the
// three modes must be set.
type SecurityParams struct {
	SecurityDomain               string
	SecurityDomainAndApplication string
	Application                  bool
	Expressions                  map[string]string
}

// Security selects how connections of a connection definition authenticate.
type Security struct {
	expressionHolder
	securityDomain               string
	securityDomainAndApplication string
	application                  bool
}

// NewSecurity validates p and returns a Security.
func NewSecurity(p SecurityParams) (*Security, error) {
	set := 0
	if !isBlank(p.SecurityDomain) {
		set++
	}
	if !isBlank(p.SecurityDomainAndApplication) {
		set++
	}
	if p.Application {
		set++
	}
	switch {
	case set == 0:
		return nil, validationErr(ErrMissingRequired, elemSecurity, "",
			"one of security-domain, security-domain-and-application or application is required")
	case set > 1:
		return nil, validationErr(ErrInconsistent, elemSecurity, "",
			"only one of security-domain, security-domain-and-application or application may be set")
	}
	return &Security{
		expressionHolder:             expressionHolder{copyMap(p.Expressions)},
		securityDomain:               p.SecurityDomain,
		securityDomainAndApplication: p.SecurityDomainAndApplication,
		application:                  p.Application,
	}, nil
}

func (s *Security) SecurityDomain() string               { return s.securityDomain }
func (s *Security) SecurityDomainAndApplication() string { return s.securityDomainAndApplication }
func (s *Security) IsApplication() bool                  { return s.application }

// Params copies the state of s.
func (s *Security) Params() SecurityParams {
	return SecurityParams{
		SecurityDomain:               s.securityDomain,
		SecurityDomainAndApplication: s.securityDomainAndApplication,
		Application:                  s.application,
		Expressions:                  copyMap(s.expressions),
	}
}

// CredentialParams holds the fields of a recovery Credential.
type CredentialParams struct {
	UserName       string
	Password       string
	SecurityDomain string
	Expressions    map[string]string
}

// Credential authenticates the recovery connection, either through a
// security domain or a user name and password.
type Credential struct {
	expressionHolder
	userName       string
	password       string
	securityDomain string
}

// NewCredential validates p and returns a Credential.
func NewCredential(p CredentialParams) (*Credential, error) {
	hasDomain := !isBlank(p.SecurityDomain)
	hasUser := !isBlank(p.UserName)
	switch {
	case hasDomain && (hasUser || p.Password != ""):
		return nil, validationErr(ErrInconsistent, elemRecoverCredential, "",
			"security-domain cannot be combined with user-name or password")
	case !hasDomain && !hasUser:
		return nil, validationErr(ErrMissingRequired, elemRecoverCredential, "",
			"either security-domain or user-name is required")
	}
	return &Credential{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		userName:         p.UserName,
		password:         p.Password,
		securityDomain:   p.SecurityDomain,
	}, nil
}

func (c *Credential) UserName() string       { return c.userName }
func (c *Credential) Password() string       { return c.password }
func (c *Credential) SecurityDomain() string { return c.securityDomain }

// Params copies the state of c.
func (c *Credential) Params() CredentialParams {
	return CredentialParams{
		UserName:       c.userName,
		Password:       c.password,
		SecurityDomain: c.securityDomain,
		Expressions:    copyMap(c.expressions),
	}
}
