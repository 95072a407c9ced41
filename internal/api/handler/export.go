package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
	"github.com/vfg2006/finance-automation-api/pkg/log"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	projectionSheet = "Projection"
	historySheet    = "History"
	insightsSheet   = "Insights"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportProjection gera uma planilha XLSX com histórico, projeção e insights
func ExportProjection(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		opts, ok := parseProjectionOptions(w, r)
		if !ok {
			return
		}

		report, err := reporter.GetProjection(r.Context(), businessID, opts)
		if err != nil {
			writeReportError(w, r, err)
			return
		}
		if report.Result.Error != "" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientHistory, report.Result.Error, nil)
			return
		}

		f, err := buildProjectionWorkbook(report)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar planilha de projeção")
			apiErrors.WriteError(w, apiErrors.ErrExportFailed, "Erro ao gerar planilha", nil)
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("projection_%s_%s.xlsx", businessID, time.Now().Format("20060102"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		if err := f.Write(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha de projeção")
		}
	}
}

type workbookSheet struct {
	name string
	rows [][]any
}

func buildProjectionWorkbook(report *domain.ProjectionReport) (*excelize.File, error) {
	return buildWorkbook(projectionSheets(report))
}

func projectionSheets(report *domain.ProjectionReport) []workbookSheet {
	projection := [][]any{{"Month", "Revenue", "Expenses", "Profit", "Profit Margin (%)"}}
	for _, p := range report.Result.Projections {
		projection = append(projection, []any{
			p.Month,
			utils.RoundWithTwoDecimalPlace(p.Revenue),
			utils.RoundWithTwoDecimalPlace(p.Expenses),
			utils.RoundWithTwoDecimalPlace(p.Profit),
			utils.RoundWithTwoDecimalPlace(p.ProfitMargin),
		})
	}
	projection = append(projection,
		[]any{},
		[]any{"Revenue Growth Rate (%)", utils.RoundWithTwoDecimalPlace(report.Result.RevenueGrowthRate * 100)},
		[]any{"Expense Growth Rate (%)", utils.RoundWithTwoDecimalPlace(report.Result.ExpenseGrowthRate * 100)},
		[]any{"Confidence", string(report.Result.Confidence)},
	)

	history := [][]any{{"Month", "Revenue", "Expenses"}}
	for _, h := range report.History {
		history = append(history, []any{h.Month, h.Revenue, h.Expenses})
	}

	insights := [][]any{{"Insight"}}
	for _, insight := range report.Insights {
		insights = append(insights, []any{insight})
	}

	return []workbookSheet{
		{name: projectionSheet, rows: projection},
		{name: historySheet, rows: history},
		{name: insightsSheet, rows: insights},
	}
}

// buildWorkbook cria uma planilha por aba; em caso de erro o arquivo é fechado e nada é retornado
func buildWorkbook(sheets []workbookSheet) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := fillWorkbook(f, sheets); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func fillWorkbook(f *excelize.File, sheets []workbookSheet) error {
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}

		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
