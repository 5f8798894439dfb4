package services

import "gorm.io/gorm"

// Page bounds a listing query. A zero Limit means unbounded; the HTTP
// layer always supplies one.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(dbq *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		dbq = dbq.Limit(p.Limit)
	}
	if p.Offset > 0 {
		dbq = dbq.Offset(p.Offset)
	}
	return dbq
}
