package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quizdash/builder-service/internal/repositories"
	"github.com/quizdash/builder-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService dumps saved structures for offline review, either as a
// spreadsheet for non-technical reviewers or as JSON for tooling.
type ExportService interface {
	ExportXLSX(ctx context.Context, filters repositories.StructureFilters) ([]byte, error)
	ExportJSON(ctx context.Context, filters repositories.StructureFilters) ([]byte, error)
}

type exportService struct {
	repo   repositories.StructureRepository
	logger utils.Logger
}

func NewExportService(repo repositories.StructureRepository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportXLSX(ctx context.Context, filters repositories.StructureFilters) ([]byte, error) {
	structures, _, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures for export: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Structures"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Metadata ID", "Type", "Created At", "Structure JSON"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, structure := range structures {
		row := []interface{}{
			structure.ID,
			structure.MetadataID,
			string(structure.BuilderType),
			structure.CreatedAt.Format("2006-01-02 15:04:05"),
			string(structure.Data),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "exported structures to XLSX", "count", len(structures))
	return buf.Bytes(), nil
}

func (s *exportService) ExportJSON(ctx context.Context, filters repositories.StructureFilters) ([]byte, error) {
	structures, _, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures for export: %w", err)
	}

	data, err := json.MarshalIndent(structures, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode structures: %w", err)
	}

	s.logger.InfoContext(ctx, "exported structures to JSON", "count", len(structures))
	return data, nil
}
