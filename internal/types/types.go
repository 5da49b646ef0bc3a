// README: Common identifier type used across modules.
package types

// ID identifies an entity (location node, driver, rider, trip, operation).
// Entities reference each other by ID rather than by pointer so that
// snapshot/restore and deletion/recreation stay simple map operations.
type ID string
