package refdata

// Teacher is one row of docentes.csv.
type Teacher struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CURP         string `json:"curp,omitempty"`
	Email        string `json:"email,omitempty"`
	DepartmentID int    `json:"departmentId"`
}

// Department is one row of departamentos.csv.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Schedule is a single course session: a calendar date plus same-day
// clock times. Sessions never cross midnight.
type Schedule struct {
	Day       string `json:"day"`       // "Lunes" .. "Sábado"
	StartTime string `json:"startTime"` // "HH:mm"
	EndTime   string `json:"endTime"`   // "HH:mm"
	Date      string `json:"date"`      // "YYYY-MM-DD"
}

// Course is one row of cursos.csv.
type Course struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Schedule Schedule `json:"schedule"`
}
