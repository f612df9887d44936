package transfer

import (
	"fmt"
	"io"

	"fintrack/internal/core"

	"github.com/xuri/excelize/v2"
)

const (
	sheetBudgets  = "Budgets"
	sheetExpenses = "Expenses"
	sheetIncomes  = "Incomes"
)

// WriteXLSX writes one worksheet per collection.
func WriteXLSX(w io.Writer, s Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	budgetNames := make(map[string]string, len(s.Data.Budgets))
	for _, b := range s.Data.Budgets {
		budgetNames[b.ID] = b.Name
	}

	budgetRows := make([][]any, 0, len(s.Data.Budgets))
	for _, b := range s.Data.Budgets {
		budgetRows = append(budgetRows, []any{b.ID, b.Name, b.Amount.Float(), b.Icon, b.CreatedAt.Format("2006-01-02 15:04")})
	}
	if err := writeSheet(f, sheetBudgets, []string{"ID", "Name", "Amount", "Icon", "Created"}, budgetRows); err != nil {
		return err
	}

	expenseRows := make([][]any, 0, len(s.Data.Expenses))
	for _, e := range s.Data.Expenses {
		category := core.UncategorizedName
		if name, ok := budgetNames[e.BudgetID]; ok {
			category = name
		}
		expenseRows = append(expenseRows, []any{e.ID, e.Name, e.Amount.Float(), e.BudgetID, category, e.CreatedAt.Format("2006-01-02 15:04")})
	}
	if err := writeSheet(f, sheetExpenses, []string{"ID", "Name", "Amount", "Budget ID", "Budget", "Created"}, expenseRows); err != nil {
		return err
	}

	incomeRows := make([][]any, 0, len(s.Data.Incomes))
	for _, in := range s.Data.Incomes {
		incomeRows = append(incomeRows, []any{in.ID, in.Name, in.Amount.Float(), string(in.Frequency), in.Date.String(), in.Description, in.CreatedAt.Format("2006-01-02 15:04")})
	}
	if err := writeSheet(f, sheetIncomes, []string{"ID", "Name", "Amount", "Frequency", "Date", "Description", "Created"}, incomeRows); err != nil {
		return err
	}

	// NewFile starts with a default "Sheet1".
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(sheetBudgets); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", name, cell, err)
			}
		}
	}
	return nil
}
