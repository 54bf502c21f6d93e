package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/assist-dashboard/internal/api/dto"
	"github.com/spec-kit/assist-dashboard/internal/config"
	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/service"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.DashboardConfig{CacheTTLSeconds: 15, RefreshSeconds: 15, MaxUploadMB: 4}
	loader := ingest.NewLoader(cfg.CacheTTL(), nil, zap.NewNop())
	dashboardService := service.NewDashboardService(nil, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
			"code":    domainErr.Code,
			"message": domainErr.Message,
			"details": domainErr.Details,
		}})
	})
	dashboard := NewDashboardHandler(loader, dashboardService, cfg)
	export := NewExportHandler(loader, dashboardService, cfg)
	app.Post("/api/dashboard", dashboard.Render)
	app.Post("/api/export", export.Export)
	return app
}

func multipartBody(t *testing.T, filename, contents string, fields map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(contents)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for field, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(field, value); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

const sampleCSV = "Status,Setor,Data,Cliente\nAberta,TI,01/03/2024,Ana\nConcluída,RH,15/02/2024,Bruno\nAberta,TI,20/02/2024,Carla\n"

func postDashboard(t *testing.T, app *fiber.App, path, filename, contents string, fields map[string][]string) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, filename, contents, fields)
	req := httptest.NewRequest(fiber.MethodPost, path, body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestDashboardEndToEnd(t *testing.T) {
	app := testApp(t)
	resp := postDashboard(t, app, "/api/dashboard", "chamados.csv", sampleCSV, map[string][]string{
		"status":          {"Aberta"},
		"all_status":      {"false"},
		"department":      {"TI"},
		"all_departments": {"false"},
		"period":          {"all"},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var payload dto.DashboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Meta.FilteredRows != 2 || payload.Meta.TotalRows != 3 {
		t.Fatalf("unexpected meta: %+v", payload.Meta)
	}
	if payload.Meta.StatusColumn != "Status" || payload.Meta.DepartmentColumn != "Setor" {
		t.Fatalf("unexpected detected roles: %+v", payload.Meta)
	}
	if len(payload.StatusCards) != 1 || payload.StatusCards[0][0].Label != "Aberta" || payload.StatusCards[0][0].Count != 2 {
		t.Fatalf("unexpected cards: %+v", payload.StatusCards)
	}
	if payload.Charts.StatusDonut == nil {
		t.Fatal("expected a status donut config")
	}
	if len(payload.Table.Rows) != 2 {
		t.Fatalf("expected 2 table rows, got %d", len(payload.Table.Rows))
	}
}

func TestDashboardDefaultsToSelectAll(t *testing.T) {
	app := testApp(t)
	resp := postDashboard(t, app, "/api/dashboard", "chamados.csv", sampleCSV, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var payload dto.DashboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Meta.FilteredRows != 3 {
		t.Fatalf("expected every row with no explicit filters, got %d", payload.Meta.FilteredRows)
	}
}

func TestDashboardMissingStatusColumn(t *testing.T) {
	app := testApp(t)
	resp := postDashboard(t, app, "/api/dashboard", "chamados.csv", "Cliente,Produto\nAna,Notebook\n", nil)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("STATUS_COLUMN_NOT_FOUND")) {
		t.Fatalf("expected the configuration error code, got %s", body)
	}
	if !bytes.Contains(body, []byte("Produto")) {
		t.Fatalf("expected the available columns in the payload, got %s", body)
	}
}

func TestDashboardMissingFilePart(t *testing.T) {
	app := testApp(t)
	resp := postDashboard(t, app, "/api/dashboard", "", "", map[string][]string{"period": {"all"}})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExportEndToEnd(t *testing.T) {
	app := testApp(t)
	resp := postDashboard(t, app, "/api/export", "chamados.csv", sampleCSV, map[string][]string{
		"status":     {"Aberta"},
		"all_status": {"false"},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if disposition := resp.Header.Get(fiber.HeaderContentDisposition); !bytes.Contains([]byte(disposition), []byte("assistencia_")) {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("expected a UTF-8 byte-order mark")
	}
	if !bytes.Contains(body, []byte("Ana")) || bytes.Contains(body, []byte("Bruno")) {
		t.Fatalf("expected only the filtered rows, got %s", body)
	}
}
