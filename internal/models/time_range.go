package models

// TimeRange is a historical request as typed by an operator. Start and Stop
// go straight into the Flux range() clause, e.g. RFC3339 times or "-1h".
type TimeRange struct {
	Start string `json:"start" yaml:"start"`
	Stop  string `json:"stop" yaml:"stop"`
}
