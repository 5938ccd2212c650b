package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Errorf("expected %d, got %d", code, he.Code)
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Maria","age":40,"phone":"1199","rg":"123","cpf":""}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/patients", body), rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Name != "Maria" || p.Age != 40 {
		t.Errorf("unexpected patient %+v", p)
	}
	if p.CPF != nil {
		t.Errorf("expected empty cpf to be dropped, got %q", *p.CPF)
	}
}

func TestHandler_CreatePatient_BadRequest(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/patients", `{"phone":"1"}`), httptest.NewRecorder())
	expectHTTPError(t, h.CreatePatient(c), http.StatusBadRequest)
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()

	p := &Patient{Name: "Jane", Phone: "1"}
	h.svc.CreatePatient(context.Background(), p)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	expectHTTPError(t, h.GetPatient(c), http.StatusNotFound)
}

func TestHandler_GetPatient_InvalidID(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	expectHTTPError(t, h.GetPatient(c), http.StatusBadRequest)
}

func TestHandler_ListPatients(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()
	h.svc.CreatePatient(ctx, &Patient{Name: "Ana", Phone: "1"})
	h.svc.CreatePatient(ctx, &Patient{Name: "Bruno", Phone: "2"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/patients?name=an&limit=10", nil), rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []Patient `json:"data"`
		Total int       `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Name != "Ana" {
		t.Errorf("unexpected list response %+v", resp)
	}
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, e := newTestHandler()
	p := &Patient{Name: "Ana", Phone: "1"}
	h.svc.CreatePatient(context.Background(), p)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"name":"Ana Maria","phone":"2","payments_current":true}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.svc.GetPatient(context.Background(), p.ID)
	if got.Name != "Ana Maria" || !got.PaymentsCurrent {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestHandler_UpdatePatient_NotFound(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"name":"X","phone":"1"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	expectHTTPError(t, h.UpdatePatient(c), http.StatusNotFound)
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()
	p := &Patient{Name: "Ana", Phone: "1"}
	h.svc.CreatePatient(context.Background(), p)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_SetPaymentsCurrent(t *testing.T) {
	h, e := newTestHandler()
	p := &Patient{Name: "Ana", Phone: "1"}
	h.svc.CreatePatient(context.Background(), p)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"payments_current":true}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.SetPaymentsCurrent(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Patient
	json.Unmarshal(rec.Body.Bytes(), &got)
	if !got.PaymentsCurrent {
		t.Error("expected payments_current true in response")
	}
}

func TestHandler_SetPaymentsCurrent_MissingField(t *testing.T) {
	h, e := newTestHandler()
	p := &Patient{Name: "Ana", Phone: "1"}
	h.svc.CreatePatient(context.Background(), p)

	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	expectHTTPError(t, h.SetPaymentsCurrent(c), http.StatusBadRequest)
}

func TestHandler_CreateDoctor_DefaultsAvailable(t *testing.T) {
	h, e := newTestHandler()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/doctors", `{"name":"Dr. Lima","specialty":"Pediatria","license":"CRM-9"}`), rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if !d.Available {
		t.Error("expected new doctor to default to available")
	}
}

func TestHandler_ListDoctors_AvailableFilter(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()
	h.svc.CreateDoctor(ctx, &Doctor{Name: "A", Specialty: "x", License: "1", Available: true})
	h.svc.CreateDoctor(ctx, &Doctor{Name: "B", Specialty: "x", License: "2"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/doctors?available=true", nil), rec)
	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("expected 1 available doctor, got %d", resp.Total)
	}
}

func TestHandler_SetDoctorAvailability(t *testing.T) {
	h, e := newTestHandler()
	d := &Doctor{Name: "A", Specialty: "x", License: "1", Available: true}
	h.svc.CreateDoctor(context.Background(), d)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"available":false}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.SetDoctorAvailability(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := h.svc.CountAvailableDoctors(context.Background())
	if n != 0 {
		t.Errorf("expected 0 available doctors, got %d", n)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler()
	h.RegisterRoutes(e.Group("/api/v1"))

	want := map[string]bool{}
	for _, k := range []string{
		"GET /api/v1/patients",
		"PUT /api/v1/patients/:id/payments-current",
		"PUT /api/v1/doctors/:id/availability",
		"DELETE /api/v1/doctors/:id",
	} {
		want[k] = false
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("route %s not registered", k)
		}
	}
}
