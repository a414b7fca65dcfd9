package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"checklist-service/internal/model"
	"checklist-service/prometheus"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Checklists"

var exportHeader = []interface{}{
	"Supplier Code", "Supplier Name", "Document Name", "Checked",
	"Created At", "Created By", "Last Updated At", "Last Updated By",
}

// Export renders a project's checklists as an XLSX workbook and returns it
// with a suggested file name.
func (s *ChecklistService) Export(ctx context.Context, projectID string) (*bytes.Buffer, string, error) {
	prometheus.RecordOperation("checklist", "export")

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", err
	}

	buf, err := renderWorkbook(project.Checklists)
	if err != nil {
		return nil, "", fmt.Errorf("render checklist workbook: %w", err)
	}
	return buf, fmt.Sprintf("checklists-%s.xlsx", project.ID), nil
}

func renderWorkbook(checklists []model.Checklist) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "H1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "A", "H", 22); err != nil {
		return nil, err
	}

	for i := range checklists {
		c := &checklists[i]
		supplierName := ""
		if c.ServiceProvider != nil {
			supplierName = c.ServiceProvider.SupplierName
		}
		lastUpdatedAt, lastUpdatedBy := "", ""
		if c.LastUpdatedAt != nil {
			lastUpdatedAt = c.LastUpdatedAt.Format(time.RFC3339)
		}
		if c.LastUpdatedBy != nil {
			lastUpdatedBy = *c.LastUpdatedBy
		}

		row := []interface{}{
			c.SupplierCode, supplierName, c.DocumentName, c.IsChecked,
			c.CreatedAt.Format(time.RFC3339), c.CreatedBy, lastUpdatedAt, lastUpdatedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
