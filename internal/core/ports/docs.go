// Package ports declares the contracts the application core needs from the
// outside world: repositories for each aggregate, the unit of work that binds
// them to one transaction, and password hashing.
//
// The *Schema variables describe, per resource, which fields list queries can
// filter and sort on; storage adapters translate querybuilder.Query values with them.
package ports
