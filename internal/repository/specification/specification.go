package specification

import "gorm.io/gorm"

// Specification is a composable query predicate. Repositories chain
// any number of them onto a GORM query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
