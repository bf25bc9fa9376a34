// Package models defines shared data types
package models

import "time"

// Anchor is a named observer position inside the airport, such as a
// security checkpoint or check-in hall.
type Anchor struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Terminal string  `json:"terminal"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Floor    *int    `json:"floor,omitempty"`
}

// ShuttleVehicle is a live ground-transport vehicle position
type ShuttleVehicle struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Route     string    `json:"route,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Bearing   float64   `json:"bearing"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceAlert is an active ground-transport disruption
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes"`
	Stops       []string `json:"stops,omitempty"`
	Header      string   `json:"header"`
	Description string   `json:"description"`
}
