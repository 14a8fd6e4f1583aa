package models

// WindowResponse is the JSON shape of a window snapshot.
type WindowResponse struct {
	Capacity int `json:"capacity"`
	Length   int `json:"length"`
	Series
}

// StatusResponse is the last reported status plus per-kind counters.
type StatusResponse struct {
	Last   *Status            `json:"last"`
	Counts map[StatusKind]int `json:"counts"`
}
