// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// ErrDisabled is returned when PDF generation is switched off
var ErrDisabled = errors.New("pdf generation disabled")

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// GenerateInvoice generates a PDF invoice for an order confirmation
func (s *Service) GenerateInvoice(conf *order.Confirmation) (*bytes.Buffer, error) {
	if !s.config.External.PDF.Enabled {
		return nil, ErrDisabled
	}

	htmlContent, err := s.RenderHTML(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(s.config.External.PDF.DPI)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderHTML renders the invoice page that GenerateInvoice converts
func (s *Service) RenderHTML(conf *order.Confirmation) (string, error) {
	number := conf.OrderNumber
	if number == "" {
		number = "PENDING"
	}

	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", number),
		InvoiceDate:   s.now().Format("January 2, 2006"),
		Delivery:      conf.EstimatedDelivery.Format("January 2, 2006"),
		Order:         conf,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.BaseURL,
		},
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   string              `json:"invoice_date"`
	Delivery      string              `json:"delivery"`
	Order         *order.Confirmation `json:"order"`
	Company       CompanyInfo         `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .company-info, .invoice-info { flex: 1; }
        .invoice-info { text-align: right; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .items-table .num { text-align: right; width: 80px; }
        .totals { float: right; width: 300px; }
        .totals table { width: 100%; border-collapse: collapse; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; text-align: right; }
        .total-row { font-size: 18px; font-weight: bold; border-top: 2px solid #333 !important; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
            <p>{{.Company.Website}}</p>
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            {{if .Order.OrderNumber}}<p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>{{end}}
            <p><strong>Estimated Delivery:</strong> {{.Delivery}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Ship To:</div>
        <p>{{.Order.Address.Street}}</p>
        {{if .Order.Address.Area}}<p>{{.Order.Address.Area}}</p>{{end}}
        <p>{{.Order.Address.City}}{{if .Order.Address.State}}, {{.Order.Address.State}}{{end}}</p>
        <p>{{.Order.Address.Country}}</p>
        <p>Phone: {{.Order.ContactInfo.Phone}}</p>
        <p>Email: {{.Order.ContactInfo.Email}}</p>
        <p>Payment: {{.Order.PaymentMethod}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Title}}</strong></td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{printf "%.2f" .Price}}</td>
                <td class="num">${{printf "%.2f" .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td>${{printf "%.2f" .Order.Subtotal}}</td></tr>
            <tr><td>Shipping:</td><td>{{.Order.Shipping}}</td></tr>
            <tr class="total-row"><td>Total:</td><td>${{printf "%.2f" .Order.Total}}</td></tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your business!</p>
        <p>If you have any questions about this invoice, please contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
