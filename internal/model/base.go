package model

import "github.com/google/uuid"

// asignarID fills an empty primary key with a time-ordered UUIDv7 so that
// ordering by id follows insertion order on every dialect.
func asignarID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}
	v, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = v
	return nil
}
