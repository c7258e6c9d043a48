package metadata

// Element names.
const (
	elemIronJacamar           = "ironjacamar"
	elemResourceAdapters      = "resource-adapters"
	elemResourceAdapter       = "resource-adapter"
	elemArchive               = "archive"
	elemBeanValidationGroups  = "bean-validation-groups"
	elemBeanValidationGroup   = "bean-validation-group"
	elemBootstrapContext      = "bootstrap-context"
	elemTransactionSupport    = "transaction-support"
	elemConfigProperty        = "config-property"
	elemConnectionDefinitions = "connection-definitions"
	elemConnectionDefinition  = "connection-definition"
	elemAdminObjects          = "admin-objects"
	elemAdminObject           = "admin-object"

	elemPool            = "pool"
	elemXaPool          = "xa-pool"
	elemMinPoolSize     = "min-pool-size"
	elemInitialPoolSize = "initial-pool-size"
	elemMaxPoolSize     = "max-pool-size"
	elemPrefill         = "prefill"
	elemUseStrictMin    = "use-strict-min"
	elemFlushStrategy   = "flush-strategy"
	elemCapacity        = "capacity"
	elemIncrementer     = "incrementer"
	elemDecrementer     = "decrementer"

	elemIsSameRMOverride  = "is-same-rm-override"
	elemInterleaving      = "interleaving"
	elemNoTxSeparatePools = "no-tx-separate-pools"
	elemPadXid            = "pad-xid"
	elemWrapXaResource    = "wrap-xa-resource"

	elemSecurity                     = "security"
	elemApplication                  = "application"
	elemSecurityDomain               = "security-domain"
	elemSecurityDomainAndApplication = "security-domain-and-application"

	elemRecovery          = "recovery"
	elemRecoverCredential = "recover-credential"
	elemRecoverPlugin     = "recover-plugin"
	elemUserName          = "user-name"
	elemPassword          = "password"

	elemTimeout                   = "timeout"
	elemBlockingTimeoutMillis     = "blocking-timeout-millis"
	elemIdleTimeoutMinutes        = "idle-timeout-minutes"
	elemAllocationRetry           = "allocation-retry"
	elemAllocationRetryWaitMillis = "allocation-retry-wait-millis"
	elemXaResourceTimeout         = "xa-resource-timeout"

	elemValidation                 = "validation"
	elemValidateOnMatch            = "validate-on-match"
	elemBackgroundValidation       = "background-validation"
	elemBackgroundValidationMillis = "background-validation-millis"
	elemUseFastFail                = "use-fast-fail"
)

// Attribute names.
const (
	attrID             = "id"
	attrPoolName       = "pool-name"
	attrClassName      = "class-name"
	attrJndiName       = "jndi-name"
	attrEnabled        = "enabled"
	attrUseJavaContext = "use-java-context"
	attrUseCcm         = "use-ccm"
	attrSharable       = "sharable"
	attrEnlistment     = "enlistment"
	attrConnectable    = "connectable"
	attrTracking       = "tracking"
	attrName           = "name"
	attrType           = "type"
	attrJanitor        = "janitor"
	attrModuleName     = "module-name"
	attrModuleSlot     = "module-slot"
	attrNoRecovery     = "no-recovery"
	attrVersion        = "version"

	attrSchemaLocation = "schemaLocation"
)
