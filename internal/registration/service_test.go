package registration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DA-itd/constancias/internal/refdata"
)

// captureNotifier records the last confirmation it was handed.
type captureNotifier struct {
	last Confirmation
	err  error
}

func (n *captureNotifier) Notify(_ context.Context, c Confirmation) error {
	n.last = c
	return n.err
}

func refDataServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string]string{
		"docentes.csv": "id,name,curp,email,departmentId\n" +
			"1,GARCIA LOPEZ ANA,,ana@itdurango.edu.mx,1\n",
		"departamentos.csv": "id,name\n1,SISTEMAS Y COMPUTACIÓN\n2,CIENCIAS BÁSICAS\n",
		"cursos.csv": "id,name,day,startTime,endTime,date\n" +
			"10,DOCKER BÁSICO,Lunes,16:00,18:00,2025-06-16\n" +
			"11,GO INTERMEDIO,Lunes,17:00,19:00,2025-06-16\n" +
			"12,REDES,Martes,16:00,18:00,2025-06-17\n" +
			"13,BASES DE DATOS,Miércoles,16:00,18:00,2025-06-18\n" +
			"14,SEGURIDAD,Jueves,16:00,18:00,2025-06-19\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func loadedService(t *testing.T, notifier Notifier) *Service {
	t.Helper()
	srv := refDataServer(t)
	svc := NewService(refdata.NewClient(srv.URL, srv.Client()), notifier)
	if err := svc.LoadReferenceData(context.Background()); err != nil {
		t.Fatalf("LoadReferenceData: %v", err)
	}
	return svc
}

func validSubmission() Submission {
	return Submission{
		Name:         "garcia lopez ana",
		Email:        "ana@itdurango.edu.mx",
		DepartmentID: 1,
		CourseIDs:    []int{10, 12},
	}
}

func TestRegister(t *testing.T) {
	notifier := &captureNotifier{}
	svc := loadedService(t, notifier)

	conf, err := svc.Register(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if conf.ID == "" {
		t.Error("confirmation must carry an id")
	}
	if conf.Name != "GARCIA LOPEZ ANA" {
		t.Errorf("name = %q, want upper-cased", conf.Name)
	}
	if conf.Department != "SISTEMAS Y COMPUTACIÓN" {
		t.Errorf("department = %q", conf.Department)
	}
	if len(conf.Courses) != 2 {
		t.Errorf("courses = %d, want 2", len(conf.Courses))
	}
	if notifier.last.ID != conf.ID {
		t.Error("notifier was not handed the confirmation")
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	svc := loadedService(t, &captureNotifier{})

	tests := []struct {
		name       string
		mutate     func(*Submission)
		wantSubstr string
	}{
		{"missing name", func(s *Submission) { s.Name = "  " }, "required field name"},
		{"missing email", func(s *Submission) { s.Email = "" }, "required field email"},
		{"missing department", func(s *Submission) { s.DepartmentID = 0 }, "required field departmentId"},
		{"malformed curp", func(s *Submission) { s.CURP = "NOT-A-CURP" }, "invalid curp"},
		{"no courses", func(s *Submission) { s.CourseIDs = nil }, "no courses selected"},
		{"unknown department", func(s *Submission) { s.DepartmentID = 99 }, "unknown department id 99"},
		{"unknown course", func(s *Submission) { s.CourseIDs = []int{999} }, "unknown course id 999"},
		{"duplicate course", func(s *Submission) { s.CourseIDs = []int{10, 10} }, "already selected"},
		{"schedule conflict", func(s *Submission) { s.CourseIDs = []int{10, 11} }, "schedule conflict"},
		{"over the limit", func(s *Submission) { s.CourseIDs = []int{10, 12, 13, 14} }, "selection limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			_, err := svc.Register(context.Background(), sub)
			if err == nil || !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestRegister_ValidCURPAccepted(t *testing.T) {
	svc := loadedService(t, &captureNotifier{})
	sub := validSubmission()
	sub.CURP = "gala800101mdgrpn01" // lower case input is normalized

	conf, err := svc.Register(context.Background(), sub)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if conf.CURP != "GALA800101MDGRPN01" {
		t.Errorf("curp = %q, want upper-cased", conf.CURP)
	}
}

func TestRegister_NotifyFailureDoesNotReject(t *testing.T) {
	notifier := &captureNotifier{err: errors.New("smtp down")}
	svc := loadedService(t, notifier)

	conf, err := svc.Register(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if conf.ID == "" {
		t.Error("registration must succeed despite notify failure")
	}
}

func TestLoadReferenceData_AllOrNothing(t *testing.T) {
	// cursos.csv is missing, so nothing may load.
	files := map[string]string{
		"docentes.csv":      "id,name,curp,email,departmentId\n1,ANA,,a@b.mx,1\n",
		"departamentos.csv": "id,name\n1,SISTEMAS\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc := NewService(refdata.NewClient(srv.URL, srv.Client()), &captureNotifier{})
	if err := svc.LoadReferenceData(context.Background()); err == nil {
		t.Fatal("expected an error with cursos.csv missing")
	}
	if svc.Loaded() {
		t.Error("partial load must not mark the service loaded")
	}
	if len(svc.Teachers()) != 0 {
		t.Error("partial load must not retain any list")
	}
}
