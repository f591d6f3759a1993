package catalog

import "github.com/Domenick1991/metroticket/internal/domain"

var redLine = []domain.Station{
	{ID: "ccs-airport", Name: "CCS AIRPORT", Status: domain.StationStatusOpen},
	{ID: "amausi", Name: "AMAUSI", Status: domain.StationStatusOpen},
	{ID: "transport-nagar", Name: "TRANSPORT NAGAR", Status: domain.StationStatusOpen},
	{ID: "krishna-nagar", Name: "KRISHNA NAGAR", Status: domain.StationStatusOpen},
	{ID: "singar-nagar", Name: "SINGAR NAGAR", Status: domain.StationStatusOpen},
	{ID: "alambagh", Name: "ALAMBAGH", Status: domain.StationStatusOpen},
	{ID: "alambagh-bus-stand", Name: "ALAMBAGH BUS STAND", Status: domain.StationStatusOpen},
	{ID: "mawaiya", Name: "MAWAIYA", Status: domain.StationStatusOpen},
	{ID: "durgapuri", Name: "DURGAPURI", Status: domain.StationStatusOpen},
	{ID: "charbagh", Name: "CHARBAGH", Status: domain.StationStatusOpen},
	{ID: "hussainganj", Name: "HUSSAINGANJ", Status: domain.StationStatusOpen},
	{ID: "sachivalaya", Name: "SACHIVALAYA", Status: domain.StationStatusOpen},
	{ID: "hazratganj", Name: "HAZRATGANJ", Status: domain.StationStatusOpen},
	{ID: "kd-singh-babu-stadium", Name: "KD SINGH BABU STADIUM", Status: domain.StationStatusOpen},
	{ID: "vishvavidyalaya", Name: "VISHVAVIDYALAYA", Status: domain.StationStatusOpen},
	{ID: "it-college", Name: "IT COLLEGE", Status: domain.StationStatusOpen},
	{ID: "badshah-nagar", Name: "BADSHAH NAGAR", Status: domain.StationStatusOpen},
	{ID: "lekhraj-market", Name: "LEKHRAJ MARKET", Status: domain.StationStatusOpen},
	{ID: "bhootnath-market", Name: "BHOOTNATH MARKET", Status: domain.StationStatusOpen},
	{ID: "indira-nagar", Name: "INDIRA NAGAR", Status: domain.StationStatusOpen},
	{ID: "munshipulia", Name: "MUNSHIPULIA", Status: domain.StationStatusOpen},
}

// LucknowRedLine returns the Red Line from CCS AIRPORT to MUNSHIPULIA.
func LucknowRedLine() *Catalog {
	return MustNew(redLine)
}
