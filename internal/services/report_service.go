package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/fixtures"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/storage"
)

//go:embed templates/reports/*.html
var reportTemplates embed.FS

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

// ReportService renders printable documents
type ReportService struct {
	contracts *ContractService
	storage   *storage.LocalStorage
	now       func() time.Time
}

func NewReportService(contracts *ContractService, storage *storage.LocalStorage) *ReportService {
	return &ReportService{contracts: contracts, storage: storage, now: time.Now}
}

type contractSheetData struct {
	Contract       models.ContractResponse
	Summary        roster.PaymentSummary
	CustomerPhoto  template.URL
	GuarantorPhoto template.URL
	GeneratedAt    string
}

// ContractSheetHTML renders the contract sheet as HTML. Stored photos are inlined as data URIs.
func (s *ReportService) ContractSheetHTML(ctx context.Context, id string) ([]byte, *models.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data := contractSheetData{
		Contract:       contract.ToResponse(),
		Summary:        roster.Summarize(contract.Installments),
		CustomerPhoto:  s.inlinePhoto(contract.Customer),
		GuarantorPhoto: s.inlinePhoto(contract.Guarantor),
		GeneratedAt:    s.now().Format("2006-01-02 15:04"),
	}

	html, err := renderTemplate("contract_sheet.html", data)
	if err != nil {
		return nil, nil, err
	}
	return html, contract, nil
}

// ContractSheetPDF converts the contract sheet to PDF. Requires the wkhtmltopdf binary.
func (s *ReportService) ContractSheetPDF(ctx context.Context, id string) (*ExportFile, error) {
	html, contract, err := s.ContractSheetHTML(ctx, id)
	if err != nil {
		return nil, err
	}

	buf, err := htmlToPDF(html)
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    fmt.Sprintf("contract_%s.pdf", safeFilename(contract.ContractNumber)),
		ContentType: contentTypes[FormatPDF],
	}, nil
}

func (s *ReportService) inlinePhoto(p models.Person) template.URL {
	if !p.HasPhoto() || s.storage == nil {
		return ""
	}
	path, err := s.storage.GetFullPath(*p.PhotoPath)
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return template.URL(fixtures.EncodeDataURI(storage.ContentType(path), data))
}

func renderTemplate(name string, data interface{}) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(reportTemplates, "templates/reports/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func htmlToPDF(html []byte) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
