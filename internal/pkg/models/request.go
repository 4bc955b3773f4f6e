package models

// Request represents a ride request produced by the demand generator
type Request struct {
	ID          int64    `json:"id"`
	RequestTime int64    `json:"request_time"` // unix seconds
	TripTime    float64  `json:"trip_time"`    // seconds
	Origin      Location `json:"origin"`
	Destination Location `json:"destination"`
	Fare        float64  `json:"fare"`
}

// RequestDTO is used for database operations to flatten the nested Location structs
type RequestDTO struct {
	ID                   int64   `db:"id"`
	RequestTime          int64   `db:"request_time"`
	TripTime             float64 `db:"trip_time"`
	OriginLongitude      float64 `db:"origin_longitude"`
	OriginLatitude       float64 `db:"origin_latitude"`
	DestinationLongitude float64 `db:"destination_longitude"`
	DestinationLatitude  float64 `db:"destination_latitude"`
	Fare                 float64 `db:"fare"`
}

// ToRequest converts a RequestDTO to a Request
func (d *RequestDTO) ToRequest() Request {
	return Request{
		ID:          d.ID,
		RequestTime: d.RequestTime,
		TripTime:    d.TripTime,
		Origin: Location{
			Latitude:  d.OriginLatitude,
			Longitude: d.OriginLongitude,
		},
		Destination: Location{
			Latitude:  d.DestinationLatitude,
			Longitude: d.DestinationLongitude,
		},
		Fare: d.Fare,
	}
}
