package repository

import "time"

var testSettings = Settings{
	Bucket:           "monitoring",
	Measurement:      "monitoring",
	TemperatureField: "temperature",
	HumidityField:    "humidity",
	LookBack:         60 * time.Second,
	Timeout:          2 * time.Second,
}

const plainCSV = `,result,table,_start,_stop,_time,_value,_field,_measurement
,_result,0,2024-05-01T09:59:01Z,2024-05-01T10:00:01Z,2024-05-01T10:00:01Z,22.5,temperature,monitoring
,_result,1,2024-05-01T09:59:01Z,2024-05-01T10:00:01Z,2024-05-01T10:00:01Z,60,humidity,monitoring
`
