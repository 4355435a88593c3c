// Package models contains GORM-specific persistence models that map to the
// catalog store tables. Domain entries stay free of ORM tags; models convert
// to them with ToDomain.
package models
