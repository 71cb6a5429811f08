package prtg

// Status is the raw PRTG sensor status code
type Status int

// Status codes the reporter queries for
const (
	StatusUnknown          Status = 1
	StatusDown             Status = 5
	StatusDownAcknowledged Status = 13
	StatusDownPartial      Status = 14
)

// ReportedStatuses is the filter_status set sent with every query
var ReportedStatuses = []Status{
	StatusUnknown,
	StatusDown,
	StatusDownAcknowledged,
	StatusDownPartial,
}

// Sensor is one row of the PRTG sensor table
type Sensor struct {
	ObjID     int    `json:"objid"`
	ParentID  int    `json:"parentid"`
	Probe     string `json:"probe"`
	Group     string `json:"group"`
	Device    string `json:"device"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	StatusRaw Status `json:"status_raw"`
}

// tableResponse is the JSON body of /api/table.json?content=sensors
type tableResponse struct {
	Version  string    `json:"prtg-version"`
	TreeSize int       `json:"treesize"`
	Sensors  *[]Sensor `json:"sensors"`
}
