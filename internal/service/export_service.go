package service

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/claustro-app/claustro-api/internal/dto"
)

// ExportService renders workload reports as XLSX workbooks.
type ExportService interface {
	Overcompliance(rows []dto.OvercomplianceRowResponse, startDate, endDate string) (*bytes.Buffer, string, error)
	TeachingOverload(rows []dto.OverloadRowResponse, startDate, endDate string) (*bytes.Buffer, string, error)
	OverloadPay(allocation dto.AllocationResponse, startDate, endDate string) (*bytes.Buffer, string, error)
}

type exportService struct {
	logger zerolog.Logger
}

// NewExportService constructs the export service.
func NewExportService(logger zerolog.Logger) ExportService {
	return &exportService{
		logger: logger.With().Str("component", "export_service").Logger(),
	}
}

func (s *exportService) Overcompliance(rows []dto.OvercomplianceRowResponse, startDate, endDate string) (*bytes.Buffer, string, error) {
	file := excelize.NewFile()
	defer closeWorkbook(file, s.logger)

	const sheet = "Overcompliance"
	if err := renameDefaultSheet(file, sheet); err != nil {
		return nil, "", err
	}

	headers := []interface{}{"Member ID", "Surname", "Name", "Category", "Registered Hours", "Period Norm", "Surplus"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, "", err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		values := []interface{}{
			row.MemberID,
			row.Surname,
			row.Name,
			row.Category,
			row.Registered.InexactFloat64(),
			row.PeriodNorm.InexactFloat64(),
			row.Surplus.InexactFloat64(),
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buffer, exportFileName("overcompliance", startDate, endDate), nil
}

func (s *exportService) TeachingOverload(rows []dto.OverloadRowResponse, startDate, endDate string) (*bytes.Buffer, string, error) {
	file := excelize.NewFile()
	defer closeWorkbook(file, s.logger)

	const sheet = "Teaching Overload"
	if err := renameDefaultSheet(file, sheet); err != nil {
		return nil, "", err
	}

	headers := []interface{}{"Member ID", "Surname", "Name", "Category", "Total Hours", "Pregrad Hours", "Preparation Hours", "Overload Hours"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, "", err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		values := []interface{}{
			row.MemberID,
			row.Surname,
			row.Name,
			row.Category,
			row.TotalHours.InexactFloat64(),
			row.PregradHours.InexactFloat64(),
			row.PreparationHours.InexactFloat64(),
			row.OverloadHours.InexactFloat64(),
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buffer, exportFileName("teaching-overload", startDate, endDate), nil
}

func (s *exportService) OverloadPay(allocation dto.AllocationResponse, startDate, endDate string) (*bytes.Buffer, string, error) {
	file := excelize.NewFile()
	defer closeWorkbook(file, s.logger)

	const sheet = "Overload Pay"
	if err := renameDefaultSheet(file, sheet); err != nil {
		return nil, "", err
	}

	headers := []interface{}{"Member ID", "Surname", "Name", "Category", "Overload Hours", "Coefficient", "Amount"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, "", err
	}

	for i, payment := range allocation.Payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		values := []interface{}{
			payment.MemberID,
			payment.Surname,
			payment.Name,
			payment.Category,
			payment.OverloadHours.InexactFloat64(),
			payment.Coefficient.InexactFloat64(),
			payment.Amount.InexactFloat64(),
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", err
		}
	}

	summaryRow := len(allocation.Payments) + 3
	summary := [][]interface{}{
		{"Fund Available", allocation.Summary.FundAvailable.InexactFloat64()},
		{"Fund Needed", allocation.Summary.FundNeeded.InexactFloat64()},
		{"Funding Ratio", allocation.Summary.FundingRatio.InexactFloat64()},
		{"Total Paid", allocation.Summary.TotalPaid.InexactFloat64()},
	}
	for i, line := range summary {
		cell, err := excelize.CoordinatesToCellName(1, summaryRow+i)
		if err != nil {
			return nil, "", err
		}
		row := line
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buffer, exportFileName("overload-pay", startDate, endDate), nil
}

func renameDefaultSheet(file *excelize.File, name string) error {
	if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
		return err
	}
	index, err := file.GetSheetIndex(name)
	if err != nil {
		return err
	}
	file.SetActiveSheet(index)
	return nil
}

func closeWorkbook(file *excelize.File, logger zerolog.Logger) {
	if err := file.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close workbook")
	}
}

func exportFileName(report, startDate, endDate string) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", report, startDate, endDate)
}
