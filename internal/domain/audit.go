package domain

// AuditContext identifies the actor on whose behalf mutations are issued.
// It is threaded from configuration (or an authentication collaborator) down
// to the store boundary instead of being hardcoded at call sites.
type AuditContext struct {
	Actor string
}
