package constants

// Event subjects, shared by the NATS and NSQ sinks
const (
	SubjectVehicle  = "fleetsim.vehicle"
	SubjectCustomer = "fleetsim.customer"
	SubjectSummary  = "fleetsim.summary"
	SubjectScore    = "fleetsim.score"
)
