package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CarRef is a reference to a car that is either a bare id or a hydrated Car.
// On the wire it is a JSON string or a JSON object.
type CarRef struct {
	id  string
	car *Car
}

// RefID returns a reference holding only the car id.
func RefID(id string) CarRef {
	return CarRef{id: id}
}

// RefCar returns a reference hydrated with the full car.
func RefCar(car Car) CarRef {
	return CarRef{id: car.ID, car: &car}
}

// ID returns the referenced car id.
func (r CarRef) ID() string {
	if r.car != nil {
		return r.car.ID
	}
	return r.id
}

// Car returns the hydrated car, if any.
func (r CarRef) Car() (Car, bool) {
	if r.car == nil {
		return Car{}, false
	}
	return *r.car, true
}

// Hydrated reports whether the reference carries full car data.
func (r CarRef) Hydrated() bool {
	return r.car != nil
}

// IsZero reports whether the reference points at nothing.
func (r CarRef) IsZero() bool {
	return r.car == nil && r.id == ""
}

func (r CarRef) MarshalJSON() ([]byte, error) {
	if r.car != nil {
		return json.Marshal(r.car)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *CarRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = CarRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = CarRef{id: id}
		return nil
	case len(data) > 0 && data[0] == '{':
		var car Car
		if err := json.Unmarshal(data, &car); err != nil {
			return err
		}
		*r = CarRef{id: car.ID, car: &car}
		return nil
	default:
		return fmt.Errorf("car reference must be a string or an object, got %s", data)
	}
}
